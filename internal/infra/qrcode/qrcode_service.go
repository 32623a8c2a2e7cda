package qrcode

import (
	"fmt"
	"strconv"
	"strings"

	"ecofinds/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a QR code service whose codes link to baseURL/<product id>
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
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
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// GenerateListingQR renders the listing's share link as a PNG
func (s *qrcodeService) GenerateListingQR(productID int64) ([]byte, error) {
	link := s.baseURL + "/" + strconv.FormatInt(productID, 10)

	qrCode, err := qrcode.New(link, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseListingQR extracts the product id from a decoded share link
func (s *qrcodeService) ParseListingQR(qrData string) (int64, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(qrData), s.baseURL+"/")
	if !ok {
		return 0, fmt.Errorf("not a listing link: %s", qrData)
	}

	productID, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || productID <= 0 {
		return 0, fmt.Errorf("invalid product id in listing link: %q", rest)
	}

	return productID, nil
}
