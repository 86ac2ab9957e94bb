package response

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PlaceholderImage is used whenever the backend returns no usable image field.
const PlaceholderImage = "https://via.placeholder.com/600x400?text=CapiWear"

type Style string

const (
	StyleStreet  Style = "street"
	StyleBasic   Style = "basic"
	StyleSport   Style = "sport"
	StylePremium Style = "premium"
)

func AllStyles() []Style {
	return []Style{StyleStreet, StyleBasic, StyleSport, StylePremium}
}

func (s Style) Valid() bool {
	switch s {
	case StyleStreet, StyleBasic, StyleSport, StylePremium:
		return true
	}
	return false
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	Styles      []Style         `json:"styles"`
}

// UnmarshalJSON normalizes the product at the client boundary: backends have
// shipped the image under imgUrl, imageUrl and image at different times, so
// the candidates are resolved in that order once, here, and nowhere else.
func (p *Product) UnmarshalJSON(data []byte) error {
	type rawProduct struct {
		ID          int64           `json:"id"`
		Name        string          `json:"name"`
		Price       decimal.Decimal `json:"price"`
		ImgUrl      string          `json:"imgUrl"`
		ImageUrl    string          `json:"imageUrl"`
		Image       string          `json:"image"`
		Category    string          `json:"category"`
		Subcategory string          `json:"subcategory"`
		Styles      []Style         `json:"styles"`
	}
	raw := rawProduct{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.ID = raw.ID
	p.Name = raw.Name
	p.Price = raw.Price
	p.Image = firstNonEmpty(raw.ImgUrl, raw.ImageUrl, raw.Image, PlaceholderImage)
	p.Category = raw.Category
	p.Subcategory = raw.Subcategory
	p.Styles = raw.Styles
	return nil
}

func firstNonEmpty(candidates ...string) string {
	for _, s := range candidates {
		if s != "" {
			return s
		}
	}
	return ""
}
