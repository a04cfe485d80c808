package services

import (
	"context"
	"fmt"

	"apotek/internal/models"
	"apotek/internal/repositories"

	"github.com/sirupsen/logrus"
)

// PrescriptionService scans uploaded prescriptions and can fill a cart from them.
type PrescriptionService struct {
	scanner repositories.DocumentScanner
	catalog repositories.MedicineRepository
	log     logrus.FieldLogger
}

// NewPrescriptionService creates a new PrescriptionService.
func NewPrescriptionService(scanner repositories.DocumentScanner, catalog repositories.MedicineRepository, log logrus.FieldLogger) *PrescriptionService {
	return &PrescriptionService{scanner: scanner, catalog: catalog, log: log}
}

// Scan runs the document through the scanner.
func (s *PrescriptionService) Scan(ctx context.Context, document []byte) (*models.ScannedPrescription, error) {
	if len(document) == 0 {
		return nil, fmt.Errorf("prescription document is empty")
	}
	return s.scanner.Scan(ctx, document)
}

// ScanIntoCart scans the document and adds every recognised line to the cart, clamped to
// stock. Lines that cannot add a single unit are returned as skipped.
func (s *PrescriptionService) ScanIntoCart(ctx context.Context, store *CartStore, document []byte) (*models.ScannedPrescription, []models.PrescriptionLine, error) {
	scanned, err := s.Scan(ctx, document)
	if err != nil {
		return nil, nil, err
	}

	var skipped []models.PrescriptionLine
	for _, line := range scanned.Lines {
		m, err := s.catalog.GetByID(ctx, line.MedicineID)
		if err != nil {
			s.log.WithError(err).WithField("medicine", line.MedicineID).Warn("scanned medicine not in catalog")
			skipped = append(skipped, line)
			continue
		}
		if !m.InStock() {
			skipped = append(skipped, line)
			continue
		}
		current := store.Quantity(m.ID)
		qty := min(line.Quantity, m.StockQuantity-current)
		if qty <= 0 {
			skipped = append(skipped, line)
			continue
		}
		// AddItem refreshes the line with the live stock before the absolute set.
		if err := store.AddItem(ctx, *m); err != nil {
			return scanned, skipped, err
		}
		if err := store.SetQuantity(ctx, m.ID, current+qty); err != nil {
			return scanned, skipped, err
		}
	}
	return scanned, skipped, nil
}
