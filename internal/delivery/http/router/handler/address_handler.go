// Package handler contains the HTTP handlers for the partner API.
package handler

import (
	"log/slog"
	"net/http"

	"wasul/internal/delivery/http/middleware"
	"wasul/internal/delivery/http/response"
	"wasul/internal/domain/service"
	"wasul/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AddressHandler holds dependencies for address-related handlers.
type AddressHandler struct {
	registryUC     usecase.RegistryUsecase
	resolverUC     usecase.ResolverUsecase
	verificationUC usecase.VerificationUsecase
	qrSvc          service.QRCodeService
	logger         *slog.Logger
}

// NewAddressHandler is the constructor for AddressHandler, injected by Fx.
func NewAddressHandler(
	registryUC usecase.RegistryUsecase,
	resolverUC usecase.ResolverUsecase,
	verificationUC usecase.VerificationUsecase,
	qrSvc service.QRCodeService,
	logger *slog.Logger,
) *AddressHandler {
	return &AddressHandler{
		registryUC:     registryUC,
		resolverUC:     resolverUC,
		verificationUC: verificationUC,
		qrSvc:          qrSvc,
		logger:         logger,
	}
}

// RegisterAddressRequest represents the request body for registering an address
type RegisterAddressRequest struct {
	Phone         string  `json:"phone" validate:"required"`
	Latitude      float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude     float64 `json:"longitude" validate:"required,min=-180,max=180"`
	City          string  `json:"city" validate:"required"`
	Area          string  `json:"area" validate:"required"`
	POBox         string  `json:"po_box"`
	DeliveryNotes string  `json:"delivery_notes"`
}

// RegisterAddressResponse is the contract-defined registration payload.
type RegisterAddressResponse struct {
	Success        bool   `json:"success"`
	AddressCode    string `json:"address_code"`
	Message        string `json:"message"`
	GoogleMapsLink string `json:"google_maps_link"`
}

// Register handles the address registration request.
func (h *AddressHandler) Register(c echo.Context) error {
	var req RegisterAddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	address, err := h.registryUC.Register(c.Request().Context(), &usecase.RegisterAddressInput{
		Phone:         req.Phone,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		City:          req.City,
		Area:          req.Area,
		POBox:         req.POBox,
		DeliveryNotes: req.DeliveryNotes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, RegisterAddressResponse{
		Success:        true,
		AddressCode:    address.Code,
		Message:        "Address registered successfully! Use this code when ordering.",
		GoogleMapsLink: address.GoogleMapsLink(),
	})
}

// Lookup handles the partner address lookup request.
func (h *AddressHandler) Lookup(c echo.Context) error {
	apiKey := middleware.APIKeyFromContext(c)
	phone := c.QueryParam("phone")
	code := c.QueryParam("address_code")
	if code == "" {
		code = c.QueryParam("code")
	}

	view, err := h.resolverUC.Lookup(c.Request().Context(), apiKey, phone, code)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, view)
}

// VerifyDeliveryRequest represents the request body for reporting a delivery
type VerifyDeliveryRequest struct {
	AddressCode string `json:"address_code" validate:"required"`
	Success     bool   `json:"success"`
	Feedback    string `json:"feedback"`
}

// VerifyDeliveryResponse is the contract-defined verification payload.
type VerifyDeliveryResponse struct {
	Success              bool   `json:"success"`
	Verified             bool   `json:"verified"`
	SuccessfulDeliveries int    `json:"successful_deliveries"`
	Message              string `json:"message"`
}

// VerifyDelivery handles the delivery outcome report.
func (h *AddressHandler) VerifyDelivery(c echo.Context) error {
	var req VerifyDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	address, err := h.verificationUC.Report(c.Request().Context(), middleware.APIKeyFromContext(c), &usecase.DeliveryReportInput{
		AddressCode: req.AddressCode,
		Success:     req.Success,
		Feedback:    req.Feedback,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, VerifyDeliveryResponse{
		Success:              true,
		Verified:             address.Verified,
		SuccessfulDeliveries: address.SuccessfulDeliveries,
		Message:              "Delivery verification recorded",
	})
}

// AddressQR renders the address's maps link as a PNG QR code, sized for
// door stickers.
func (h *AddressHandler) AddressQR(c echo.Context) error {
	apiKey := middleware.APIKeyFromContext(c)
	code := c.QueryParam("address_code")
	if code == "" {
		code = c.QueryParam("code")
	}

	view, err := h.resolverUC.Lookup(c.Request().Context(), apiKey, "", code)
	if err != nil {
		return errors.WithStack(err)
	}

	png, err := h.qrSvc.GenerateAddressQR(view.GoogleMapsLink)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
