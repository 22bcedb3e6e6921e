package ports

import (
	"context"

	"github.com/aretw0/vigil/pkg/domain"
)

// ReportStore keeps published reports for reporting collaborators.
// It never stores engine state: reports are derived, write-once snapshots.
type ReportStore interface {
	// Save persists the report under the given ID, replacing any previous one.
	Save(ctx context.Context, reportID string, report *domain.Report) error

	// Load retrieves the report for a given ID.
	// Returns domain.ErrReportNotFound if it does not exist.
	Load(ctx context.Context, reportID string) (*domain.Report, error)

	// Delete removes the report for a given ID.
	Delete(ctx context.Context, reportID string) error

	// List returns the IDs of the stored reports.
	List(ctx context.Context) ([]string, error)
}
