package dto

// TokenRequest carries the form fields of an OAuth2 client-credentials grant
// request against the token endpoint.
type TokenRequest struct {
	GrantType    string `form:"grant_type" binding:"required"`
	ClientID     string `form:"client_id" binding:"required"`
	ClientSecret string `form:"client_secret" binding:"required"`
	Scope        string `form:"scope"` // Optional; space-delimited requested scopes
}

// TokenResponse is the successful token endpoint response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // Always "Bearer"
	ExpiresIn   int64  `json:"expires_in"` // Seconds until expiry
	Scope       string `json:"scope"`      // Space-delimited granted scopes
}
