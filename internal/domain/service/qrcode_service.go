package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateDispatchQR generates a check-in QR code for a dispatch
	GenerateDispatchQR(dispatchID uuid.UUID) ([]byte, error)

	// ParseDispatchQR parses QR code data and returns the dispatch ID
	ParseDispatchQR(qrData string) (uuid.UUID, error)
}
