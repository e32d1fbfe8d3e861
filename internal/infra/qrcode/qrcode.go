// Package qrcode renders address QR codes with skip2/go-qrcode.
package qrcode

import (
	"wasul/internal/domain/service"
	"wasul/internal/errors"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateAddressQR renders a PNG QR code pointing at the maps link.
func (s *qrcodeService) GenerateAddressQR(mapsLink string) ([]byte, error) {
	png, err := qrcode.Encode(mapsLink, s.errorCorrectionLevel, s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode QR code")
	}

	return png, nil
}
