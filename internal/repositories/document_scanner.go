package repositories

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"apotek/internal/models"
)

// DocumentScanner extracts medicine lines from an uploaded prescription.
type DocumentScanner interface {
	Scan(ctx context.Context, document []byte) (*models.ScannedPrescription, error)
}

var quantityPattern = regexp.MustCompile(`(?i)\bx\s*(\d+)\b`)

// CatalogScanner recognises catalog medicine names in plain-text prescriptions.
// It stands in for a real OCR service.
type CatalogScanner struct {
	catalog MedicineRepository
}

// NewCatalogScanner creates a scanner that matches against the given catalog.
func NewCatalogScanner(catalog MedicineRepository) *CatalogScanner {
	return &CatalogScanner{catalog: catalog}
}

// Scan matches each document line against the catalog. A trailing "x<N>" sets the quantity.
func (s *CatalogScanner) Scan(ctx context.Context, document []byte) (*models.ScannedPrescription, error) {
	medicines, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog for scanning: %w", err)
	}

	text := string(document)
	result := &models.ScannedPrescription{RawText: text, Lines: []models.PrescriptionLine{}}
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, m := range medicines {
			if m.Name == "" || !strings.Contains(lower, strings.ToLower(m.Name)) {
				continue
			}
			qty := 1
			if match := quantityPattern.FindStringSubmatch(line); match != nil {
				if n, err := strconv.Atoi(match[1]); err == nil && n > 0 {
					qty = n
				}
			}
			result.Lines = append(result.Lines, models.PrescriptionLine{
				MedicineID: m.ID,
				Name:       m.Name,
				Quantity:   qty,
			})
			break
		}
	}
	return result, nil
}
