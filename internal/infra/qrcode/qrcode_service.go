// Package qrcode generates the printable check-in codes attached to dispatch
// sheets.
package qrcode

import (
	"encoding/json"
	"fmt"

	"rutero/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData represents the QR code data structure
type QRCodeData struct {
	DispatchID string `json:"dispatch_id"`
	Type       string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
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

// GenerateDispatchQR generates a check-in QR code for a dispatch
func (s *qrcodeService) GenerateDispatchQR(dispatchID uuid.UUID) ([]byte, error) {
	data := QRCodeData{
		DispatchID: dispatchID.String(),
		Type:       "dispatch",
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseDispatchQR parses QR code data and returns the dispatch ID
func (s *qrcodeService) ParseDispatchQR(qrData string) (uuid.UUID, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return uuid.Nil, fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != "dispatch" {
		return uuid.Nil, fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	dispatchID, err := uuid.Parse(data.DispatchID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse dispatch ID: %w", err)
	}

	return dispatchID, nil
}
