package middleware

import "github.com/gin-gonic/gin"

// clientIDKey is the key used to store the authenticated client's ID in the
// request context.
const clientIDKey = contextKey("clientID")

// scopesKey is the key used to store the authenticated token's scopes.
const scopesKey = contextKey("scopes")

// GetClientIDFromContext retrieves the authenticated client ID from the
// request context. It returns the client ID and a boolean indicating if it
// was found.
func GetClientIDFromContext(c *gin.Context) (string, bool) {
	clientID, ok := c.Request.Context().Value(clientIDKey).(string)
	if !ok || clientID == "" {
		return "", false
	}
	return clientID, true
}

// GetScopesFromContext retrieves the authenticated token's scopes from the
// request context.
func GetScopesFromContext(c *gin.Context) ([]string, bool) {
	scopes, ok := c.Request.Context().Value(scopesKey).([]string)
	if !ok {
		return nil, false
	}
	return scopes, true
}
