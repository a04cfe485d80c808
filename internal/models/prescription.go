package models

// PrescriptionLine is a medicine recognised on a scanned prescription.
type PrescriptionLine struct {
	MedicineID string `json:"medicine_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

// ScannedPrescription is the result of running a document through a scanner.
type ScannedPrescription struct {
	Lines   []PrescriptionLine `json:"lines"`
	RawText string             `json:"raw_text,omitempty"`
}
