package constants

const (
	AppStorefront = "storefront"

	AppCatalogClient = "catalog-client"
	AppCartStore     = "cart-store"
	AppCheckout      = "checkout"
	AppUserSession   = "user-session"
)
