package domain

// GrantTypeClientCredentials is the only grant type this service supports.
const GrantTypeClientCredentials = "client_credentials"

// RegisteredClient is an OAuth2 client allowed to request access tokens via
// the client-credentials grant. The set of clients is fixed at process start;
// there is no runtime registration.
type RegisteredClient struct {
	ClientID   string
	SecretHash string // bcrypt hash of the client secret
	Scopes     []string
}

// HasScope reports whether the client was granted the given scope.
func (c RegisteredClient) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
