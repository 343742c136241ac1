package service

import (
	"context"
	"time"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

// SnapshotSource yields the current resolved catalog.
// *catalog.Resolver satisfies it.
type SnapshotSource interface {
	Resolve(ctx context.Context) domain.Snapshot
}

// ExportService assembles a flat export of the resolved catalog.
// It exports whatever the public site is currently serving, including the
// static fallback, and reports which one it was.
type ExportService struct {
	snapshots SnapshotSource
}

// NewExportService constructs an ExportService over the given snapshot source.
func NewExportService(snapshots SnapshotSource) *ExportService {
	return &ExportService{snapshots: snapshots}
}

// Export returns one ExportRow per trip in snapshot order, plus the
// provenance of the snapshot. The slice is never nil.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, domain.Provenance) {
	snap := s.snapshots.Resolve(ctx)
	rows := make([]domain.ExportRow, 0, len(snap.Trips))
	for _, t := range snap.Trips {
		rows = append(rows, exportRow(t))
	}
	return rows, snap.Provenance
}

func exportRow(t domain.Trip) domain.ExportRow {
	row := domain.ExportRow{
		ID:           t.ID,
		Slug:         t.Slug,
		Title:        t.Title,
		Category:     t.Category,
		Difficulty:   t.Difficulty,
		Location:     t.Location,
		Duration:     t.Duration,
		PriceMinor:   t.Price.AmountMinor,
		Currency:     t.Price.Currency,
		PriceDisplay: t.Price.Display(),
		Discount:     t.DiscountPercent(),
		Rating:       t.Rating,
		Reviews:      t.Reviews,
		IsFeatured:   t.IsFeatured,
		PickupPoints: make([]string, 0, len(t.PickupPoints)),
		Highlights:   append([]string{}, t.Highlights...),
	}
	if t.OriginalPrice != nil {
		row.OriginalPrice = t.OriginalPrice.Display()
	}
	for _, p := range t.PickupPoints {
		row.PickupPoints = append(row.PickupPoints, p.String())
	}
	if !t.UpdatedAt.IsZero() {
		row.UpdatedAt = t.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return row
}
