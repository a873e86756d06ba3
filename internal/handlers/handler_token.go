package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/SscSPs/purchase_converter_app/internal/apperrors"
	portssvc "github.com/SscSPs/purchase_converter_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_converter_app/internal/dto"
	"github.com/SscSPs/purchase_converter_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tokenHandler handles OAuth2 token issuance requests.
type tokenHandler struct {
	tokenService portssvc.TokenSvcFacade
}

// newTokenHandler creates a new tokenHandler.
func newTokenHandler(ts portssvc.TokenSvcFacade) *tokenHandler {
	return &tokenHandler{tokenService: ts}
}

// registerTokenRoutes sets up the public token endpoint with IP rate limiting.
func registerTokenRoutes(r *gin.Engine, tokenService portssvc.TokenSvcFacade) {
	h := newTokenHandler(tokenService)

	// Rate limit: 10 requests per minute per IP, bounding credential guessing
	rate, _ := limiter.NewRateFromFormatted("10-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	r.POST("/oauth/token", middleware.RateLimit(ipLimiter), h.issueToken)
}

// issueToken godoc
// @Summary Issue an access token
// @Description Exchanges OAuth2 client credentials for a signed JWT access token.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param grant_type formData string true "Must be client_credentials"
// @Param client_id formData string true "Client identifier"
// @Param client_secret formData string true "Client secret"
// @Param scope formData string false "Requested scopes (space-delimited)"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /oauth/token [post]
func (h *tokenHandler) issueToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind token request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid Grant Request", "grant_type, client_id and client_secret are required"))
		return
	}

	logger.Info("Received token request", slog.String("client_id", req.ClientID), slog.String("grant_type", req.GrantType))

	resp, err := h.tokenService.IssueClientCredentialsToken(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Warn("Token request rejected", slog.String("client_id", req.ClientID))
			c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Unauthorized", "Invalid client credentials"))
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid grant request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid Grant Request", err.Error()))
		} else {
			logger.Error("Failed to issue token", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Internal Server Error", "Failed to issue token"))
		}
		return
	}

	logger.Info("Access token issued", slog.String("client_id", req.ClientID), slog.String("scope", resp.Scope))
	c.JSON(http.StatusOK, resp)
}
