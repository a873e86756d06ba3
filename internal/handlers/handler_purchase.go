package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/purchase_converter_app/internal/apperrors"
	portssvc "github.com/SscSPs/purchase_converter_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_converter_app/internal/dto"
	"github.com/SscSPs/purchase_converter_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// purchaseHandler handles HTTP requests related to purchases.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

// newPurchaseHandler creates a new purchaseHandler.
func newPurchaseHandler(ps portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{purchaseService: ps}
}

// registerPurchaseRoutes registers routes related to purchases. Creation and
// conversion require the 'purchase' scope; plain reads only need a valid token.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", middleware.RequireScope("purchase"), h.createPurchase)
		purchases.GET("/:purchaseID", h.getPurchase)
		purchases.GET("/:purchaseID/convert", middleware.RequireScope("purchase"), h.getConvertedPurchase)
	}
}

// createPurchase godoc
// @Summary Record a new purchase
// @Description Records a USD purchase transaction; the amount is stored rounded to 2 decimals (half-up)
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   purchase body dto.CreatePurchaseRequest true "Purchase details"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error with per-field messages"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/purchases [post]
func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Validation Error", "Invalid request format: "+err.Error()))
		return
	}

	txDate, fieldErrors := req.Validate(time.Now())
	if fieldErrors != nil {
		logger.Warn("Purchase request failed validation", slog.Any("field_errors", fieldErrors))
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(http.StatusBadRequest, fieldErrors))
		return
	}

	creatorClientID, ok := middleware.GetClientIDFromContext(c)
	if !ok {
		logger.Error("Client ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Unauthorized", "Authentication required"))
		return
	}

	logger.Info("Received request to create purchase", slog.String("description", req.Description))

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), req.Description, txDate, req.PurchaseAmount, creatorClientID)
	if err != nil {
		logger.Error("Failed to create purchase in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Internal Server Error", "Failed to create purchase"))
		return
	}

	logger.Info("Purchase created successfully", slog.String("purchase_id", purchase.PurchaseID))
	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(purchase))
}

// getPurchase godoc
// @Summary Get a purchase by id
// @Description Retrieves a stored purchase by its identifier
// @Tags purchases
// @Produce  json
// @Param   purchaseID path string true "Purchase ID (UUID)"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/purchases/{purchaseID} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("purchaseID")

	logger = logger.With(slog.String("purchase_id", purchaseID))
	logger.Info("Received request to get purchase")

	purchase, err := h.purchaseService.GetPurchaseByID(c.Request.Context(), purchaseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Purchase not found")
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Not Found", "Purchase not found with id "+purchaseID))
		} else {
			logger.Error("Failed to get purchase from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve purchase"))
		}
		return
	}

	logger.Info("Purchase retrieved successfully")
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// getConvertedPurchase godoc
// @Summary Convert a purchase into a target country's currency
// @Description Converts the purchase amount using the most recent Treasury rate on or before the transaction date, within a 6-month lookback window
// @Tags purchases
// @Produce  json
// @Param   purchaseID path string true "Purchase ID (UUID)"
// @Param   country query string true "Target country name"
// @Success 200 {object} dto.ConvertedPurchaseResponse
// @Failure 400 {object} dto.ErrorResponse "No qualifying rate in the window"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse "Rates provider unavailable"
// @Security BearerAuth
// @Router /api/purchases/{purchaseID}/convert [get]
func (h *purchaseHandler) getConvertedPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("purchaseID")

	country := c.Query("country")
	if country == "" {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(http.StatusBadRequest, map[string]string{
			"country": "Country is required",
		}))
		return
	}

	logger = logger.With(slog.String("purchase_id", purchaseID), slog.String("country", country))
	logger.Info("Received request to convert purchase")

	converted, err := h.purchaseService.GetConvertedPurchase(c.Request.Context(), purchaseID, country)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Purchase not found")
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Not Found", "Purchase not found with id "+purchaseID))
		case errors.Is(err, apperrors.ErrConversionUnavailable):
			logger.Warn("No qualifying exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Currency Conversion Error", err.Error()))
		case errors.Is(err, apperrors.ErrInvalidDate):
			logger.Warn("Invalid transaction date for conversion", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid Date", err.Error()))
		case errors.Is(err, apperrors.ErrExternalService):
			// Dependency fault: distinct from "no data", and provider
			// internals are not leaked to the caller.
			logger.Error("Rates provider failure", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(http.StatusServiceUnavailable, "External Service Error", "Unable to retrieve exchange rate information"))
		default:
			logger.Error("Failed to convert purchase", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred"))
		}
		return
	}

	logger.Info("Purchase converted successfully",
		slog.Any("exchange_rate", converted.ExchangeRate),
		slog.Any("converted_amount", converted.ConvertedAmount),
	)
	c.JSON(http.StatusOK, dto.ToConvertedPurchaseResponse(converted))
}
