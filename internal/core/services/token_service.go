package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/purchase_converter_app/internal/apperrors"
	"github.com/SscSPs/purchase_converter_app/internal/core/domain"
	portssvc "github.com/SscSPs/purchase_converter_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_converter_app/internal/dto"
	"github.com/SscSPs/purchase_converter_app/internal/platform/config"
	"github.com/SscSPs/purchase_converter_app/internal/platform/keys"
	"github.com/SscSPs/purchase_converter_app/internal/utils"
	"github.com/google/uuid"
)

// tokenService implements TokenSvcFacade for the client-credentials grant.
// The registered client set is fixed at process start from configuration.
type tokenService struct {
	cfg    *config.Config
	keys   *keys.Provider
	client domain.RegisteredClient
}

// NewTokenService creates a new instance of tokenService. When the config
// carries a plaintext client secret instead of a hash (dev mode), the hash is
// derived once here so validation always goes through bcrypt.
func NewTokenService(cfg *config.Config, keyProvider *keys.Provider) (portssvc.TokenSvcFacade, error) {
	secretHash := cfg.ClientSecretHash
	if secretHash == "" {
		var err error
		secretHash, err = utils.HashClientSecret(cfg.ClientSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to hash configured client secret: %w", err)
		}
	}

	return &tokenService{
		cfg:  cfg,
		keys: keyProvider,
		client: domain.RegisteredClient{
			ClientID:   cfg.ClientID,
			SecretHash: secretHash,
			Scopes:     cfg.ClientScopes,
		},
	}, nil
}

// IssueClientCredentialsToken validates the grant request and returns a
// signed access token response.
func (s *tokenService) IssueClientCredentialsToken(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error) {
	if req.GrantType != domain.GrantTypeClientCredentials {
		return nil, fmt.Errorf("%w: unsupported grant type %q", apperrors.ErrValidation, req.GrantType)
	}

	if req.ClientID != s.client.ClientID || !utils.CheckClientSecretHash(req.ClientSecret, s.client.SecretHash) {
		return nil, fmt.Errorf("%w: invalid client credentials", apperrors.ErrUnauthorized)
	}

	// An empty scope parameter grants everything the client is registered
	// for; an explicit request must be a subset of that.
	scopes := s.client.Scopes
	if req.Scope != "" {
		requested := strings.Fields(req.Scope)
		for _, scope := range requested {
			if !s.client.HasScope(scope) {
				return nil, fmt.Errorf("%w: scope %q not granted to client", apperrors.ErrValidation, scope)
			}
		}
		scopes = requested
	}

	accessToken, err := utils.GenerateJWT(
		s.client.ClientID,
		scopes,
		uuid.NewString(),
		s.keys.Private(),
		s.keys.KeyID(),
		s.cfg.JWTExpiryDuration,
		s.cfg.JWTIssuer,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.cfg.JWTExpiryDuration.Seconds()),
		Scope:       strings.Join(scopes, " "),
	}, nil
}
