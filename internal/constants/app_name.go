package constants

const (
	AppMain       = "gerai"
	AppStorefront = "gerai-storefront"
	AppSeller     = "gerai-seller"
	AppAdmin      = "gerai-admin"

	AudienceCustomer = "gerai-customer"

	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"

	// KeyRevokedToken is the cache key marking a bearer token as signed out
	// before its expiry.
	KeyRevokedToken = "revoked-token:%s"
)
