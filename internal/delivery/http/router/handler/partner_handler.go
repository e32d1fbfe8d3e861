package handler

import (
	"net/http"

	"wasul/internal/delivery/http/response"
	"wasul/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PartnerHandler holds dependencies for partner key handlers.
type PartnerHandler struct {
	partnerUC usecase.PartnerUsecase
}

// NewPartnerHandler is the constructor for PartnerHandler, injected by Fx.
func NewPartnerHandler(partnerUC usecase.PartnerUsecase) *PartnerHandler {
	return &PartnerHandler{partnerUC: partnerUC}
}

// RequestKeyRequest is the key request payload.
type RequestKeyRequest struct {
	PartnerName string `json:"partner_name" validate:"required"`
}

// RequestKeyResponse is the contract-defined key issuance payload.
type RequestKeyResponse struct {
	Success     bool   `json:"success"`
	PartnerName string `json:"partner_name"`
	APIKey      string `json:"api_key"`
	Message     string `json:"message"`
}

// RequestKey handles partner API key issuance.
func (h *PartnerHandler) RequestKey(c echo.Context) error {
	var req RequestKeyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid key request input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	key, err := h.partnerUC.IssueKey(c.Request().Context(), req.PartnerName)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, RequestKeyResponse{
		Success:     true,
		PartnerName: key.PartnerName,
		APIKey:      key.Key,
		Message:     "API key generated. Keep this secure!",
	})
}
