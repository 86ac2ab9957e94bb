package filter

var categoryLabels = map[string]string{
	"camisetas":  "Camisetas",
	"moletons":   "Moletons",
	"calcas":     "Calças",
	"acessorios": "Acessórios",
}

var subcategories = map[string][]string{
	"camisetas":  {"oversized", "gola v", "baby look", "básica", "premium", "dry fit"},
	"moletons":   {"com capuz", "sem capuz", "zippado"},
	"calcas":     {"jogger", "jeans", "moletom"},
	"acessorios": {"bones", "meias", "cintos"},
}

func Categories() []string {
	return []string{"camisetas", "moletons", "calcas", "acessorios"}
}

func IsValidCategory(slug string) bool {
	_, ok := categoryLabels[slug]
	return ok
}

func Label(slug string) string {
	return categoryLabels[slug]
}

// Subcategories lists the chips shown for a category; unknown categories have
// none.
func Subcategories(slug string) []string {
	return subcategories[slug]
}
