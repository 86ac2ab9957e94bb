package log

const (
	KeyAppName    = "app"
	KeyTag        = "tag"
	KeyProcess    = "process"
	KeyConfig     = "config"
	KeyRequestID  = "requestId"
	KeyStatusCode = "statusCode"
	KeyURL        = "url"
	KeyQuery      = "query"

	KeyEmail       = "email"
	KeyUserID      = "userId"
	KeyRemember    = "remember"
	KeyProductID   = "productId"
	KeyProductName = "productName"
	KeyQuantity    = "quantity"
	KeyCartCount   = "cartCount"
	KeySubtotal    = "subtotal"
	KeyOrderID     = "orderId"
	KeyFreight     = "freight"
)
