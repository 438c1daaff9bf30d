package types

// TokenClaims is the authenticated principal carried by a validated JWT.
type TokenClaims struct {
	UserID uint
	Email  string
}
