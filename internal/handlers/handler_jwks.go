package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/purchase_converter_app/internal/dto"
	"github.com/SscSPs/purchase_converter_app/internal/middleware"
	"github.com/SscSPs/purchase_converter_app/internal/platform/keys"
	"github.com/gin-gonic/gin"
)

// jwksHandler publishes the verification key set.
type jwksHandler struct {
	keyProvider *keys.Provider
}

// registerJWKSRoutes sets up the public key-set discovery endpoint.
func registerJWKSRoutes(r *gin.Engine, keyProvider *keys.Provider) {
	h := &jwksHandler{keyProvider: keyProvider}
	r.GET("/.well-known/jwks.json", h.getJWKS)
}

// getJWKS godoc
// @Summary Get the JSON Web Key Set
// @Description Publishes the RSA public key used to verify access token signatures.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} dto.ErrorResponse
// @Router /.well-known/jwks.json [get]
func (h *jwksHandler) getJWKS(c *gin.Context) {
	doc, err := h.keyProvider.JWKS()
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to render JWKS", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Internal Server Error", "Failed to render key set"))
		return
	}
	c.Data(http.StatusOK, "application/json", doc)
}
