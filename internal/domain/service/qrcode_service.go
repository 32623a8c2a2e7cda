package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateListingQR encodes the share link of a listing as a PNG QR code
	GenerateListingQR(productID int64) ([]byte, error)

	// ParseListingQR parses QR code data and returns the product ID
	ParseListingQR(qrData string) (int64, error)
}
