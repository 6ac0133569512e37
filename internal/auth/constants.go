package auth

const (
	ContextKeyActor = "actor"

	headerAuthorization = "Authorization"

	bearerScheme    = "bearer"
	authHeaderParts = 2
)

const (
	msgMissingAuthorization    = "Unauthorized"
	msgInvalidOrExpiredToken   = "Invalid or expired token"
	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgInvalidTokenClaims      = "invalid token claims"
	msgInvalidRoleClaim        = "invalid role claim: %w"
)
