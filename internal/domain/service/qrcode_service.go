package service

// QRCodeService defines the interface for QR code rendering. Residents
// print the QR of their maps link on a door sticker so couriers can scan
// instead of typing the code.
type QRCodeService interface {
	// GenerateAddressQR renders a PNG QR code pointing at the given
	// Google Maps link.
	GenerateAddressQR(mapsLink string) ([]byte, error)
}
