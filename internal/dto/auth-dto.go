package dto

// AuthClaims is what the JWT middleware extracts from a verified token.
type AuthClaims struct {
	UserID string
	Email  string
	Expiry float64
	Iat    float64
}
