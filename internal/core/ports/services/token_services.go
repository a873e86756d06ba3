package services

import (
	"context"

	"github.com/SscSPs/purchase_converter_app/internal/dto"
)

// TokenSvcFacade defines the interface for access token issuance.
type TokenSvcFacade interface {
	// IssueClientCredentialsToken validates a client-credentials grant
	// request and returns a signed access token response. It fails with
	// apperrors.ErrUnauthorized for unknown client id or mismatched secret,
	// and apperrors.ErrValidation for an unsupported grant type or a
	// requested scope the client was not granted.
	IssueClientCredentialsToken(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error)
}
