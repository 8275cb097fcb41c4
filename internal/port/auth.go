package port

// AccessClaims holds the identity carried by a verified access token.
type AccessClaims struct {
	UserID string
	Email  string
}

// TokenVerifier validates access tokens issued by the account service.
type TokenVerifier interface {
	Verify(token string) (*AccessClaims, error)
}
