// Package repository stores prediction documents keyed by patient.
package repository

import (
	"context"

	"github.com/neurotrack/progression/internal/report"
)

// Store is the persistence port for prediction documents. Put overwrites any
// previous document for the same patient; a patient always exposes exactly
// the latest prediction.
type Store interface {
	// Put stores or replaces the document for doc.PatientID.
	Put(ctx context.Context, doc report.Document) error

	// Get returns the stored document for a patient, or ErrNotFound.
	Get(ctx context.Context, patientID string) (report.Document, error)

	// Count returns the number of patients with a stored document.
	Count() int
}
