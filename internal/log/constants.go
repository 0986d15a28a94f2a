package log

const (
	KeyAppName        = "app"
	KeyCacheKey       = "cacheKey"
	KeyCartCount      = "cartCount"
	KeyCartTotal      = "cartTotal"
	KeyConfig         = "config"
	KeyEmail          = "email"
	KeyNotificationID = "notificationId"
	KeyOrderID        = "orderId"
	KeyProcess        = "process"
	KeyProductID      = "productId"
	KeyQuantity       = "quantity"
	KeyRequestBody    = "requestBody"
	KeyRequestHeader  = "requestHeader"
	KeyRequestHost    = "host"
	KeyRequestID      = "requestId"
	KeyRequestIp      = "requesterIP"
	KeyRequestMethod  = "requestMethod"
	KeyRequestURI     = "requestURI"
	KeyRequestURL     = "requestURL"
	KeySessionID      = "sessionId"
	KeyShopID         = "shopId"
	KeyTag            = "tag"
	KeyToken          = "token"
	KeyUserID         = "userId"
)
