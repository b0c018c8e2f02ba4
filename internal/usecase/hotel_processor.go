package usecase

import (
	"context"
	"fmt"
	"time"

	"crewtravel-service/internal/domain/entity"
	"crewtravel-service/internal/domain/repository"
	"crewtravel-service/internal/hotelblock"
	"crewtravel-service/internal/spreadsheet"
	"crewtravel-service/pkg/logger"
	"crewtravel-service/pkg/metrics"
)

// HotelProcessor runs the hotel block pipeline: decode, normalize, diff
// against the previous snapshot, persist, render workbook drafts.
type HotelProcessor struct {
	snapshots  repository.HotelSnapshotRepository
	normalizer *hotelblock.Normalizer
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewHotelProcessor creates a new hotel block processor.
func NewHotelProcessor(
	snapshots repository.HotelSnapshotRepository,
	normalizer *hotelblock.Normalizer,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *HotelProcessor {
	return &HotelProcessor{
		snapshots:  snapshots,
		normalizer: normalizer,
		logger:     logger,
		metrics:    metrics,
	}
}

// HotelUploadResult summarizes one processed upload.
type HotelUploadResult struct {
	UploadID string
	RowCount int
	Diff     *hotelblock.DiffResult
}

// HotelDraft is the renderable output for one snapshot: a short email body
// and a styled workbook with its suggested filename. Delivery belongs to
// the caller.
type HotelDraft struct {
	EmailBody string
	Workbook  []byte
	Filename  string
	Diff      *hotelblock.DiffResult
}

// ProcessUpload ingests one hotel block workbook.
func (p *HotelProcessor) ProcessUpload(ctx context.Context, filename string, data []byte) (*HotelUploadResult, error) {
	start := time.Now()

	headers, raws, err := spreadsheet.Read(data)
	if err != nil {
		if p.metrics != nil {
			p.metrics.ErrorsCount.WithLabelValues("hotel_upload").Inc()
		}
		return nil, fmt.Errorf("decode hotel block workbook: %w", err)
	}
	rows := p.normalizer.NormalizeRows(raws)

	previous, err := p.snapshots.FindLatest(ctx, 1)
	if err != nil {
		p.logger.Warn("Could not load previous snapshot, treating upload as first", "error", err)
		previous = nil
	}

	upload := &entity.HotelBlockUpload{
		Filename:   filename,
		UploadedAt: time.Now().UTC(),
		Headers:    headers,
		Rows:       rows,
	}
	id, err := p.snapshots.Insert(ctx, upload)
	if err != nil {
		if p.metrics != nil {
			p.metrics.ErrorsCount.WithLabelValues("hotel_upload").Inc()
		}
		return nil, fmt.Errorf("store hotel block snapshot: %w", err)
	}
	if err := p.snapshots.PruneKeep(ctx, snapshotKeep); err != nil {
		p.logger.Warn("Snapshot prune failed", "error", err)
	}

	var diff *hotelblock.DiffResult
	if len(previous) > 0 {
		d := hotelblock.Diff(previous[0].Rows, rows)
		diff = &d
	}

	if p.metrics != nil {
		p.metrics.UploadsProcessed.WithLabelValues("hotel_block").Inc()
		p.metrics.RowsNormalized.WithLabelValues("hotel_block").Add(float64(len(rows)))
		p.metrics.ProcessingTime.Observe(time.Since(start).Seconds())
		if diff != nil {
			p.metrics.DiffEntries.WithLabelValues("hotel_block", "new").Add(float64(len(diff.NewReservations)))
			p.metrics.DiffEntries.WithLabelValues("hotel_block", "changed").Add(float64(len(diff.ChangedReservations)))
			p.metrics.DiffEntries.WithLabelValues("hotel_block", "cancelled").Add(float64(len(diff.CancelledReservations)))
		}
	}

	p.logger.Info("Hotel block upload processed", "uploadId", id, "rows", len(rows))
	return &HotelUploadResult{UploadID: id, RowCount: len(rows), Diff: diff}, nil
}

// BuildDraft renders the workbook and email body for one snapshot, diffed
// against the other retained snapshot when there is one. An empty uploadID
// means the latest upload.
func (p *HotelProcessor) BuildDraft(ctx context.Context, uploadID string) (*HotelDraft, error) {
	uploads, err := p.snapshots.FindLatest(ctx, snapshotKeep)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	if len(uploads) == 0 {
		return nil, fmt.Errorf("no hotel block uploads yet")
	}

	target := uploads[0]
	if uploadID != "" && uploadID != target.ID {
		found := false
		for _, u := range uploads {
			if u.ID == uploadID {
				target = u
				found = true
				break
			}
		}
		if !found {
			if target, err = p.snapshots.FindByID(ctx, uploadID); err != nil {
				return nil, fmt.Errorf("upload %s not found: %w", uploadID, err)
			}
		}
	}

	var diff *hotelblock.DiffResult
	for _, u := range uploads {
		if u.ID != target.ID && u.UploadedAt.Before(target.UploadedAt) {
			d := hotelblock.Diff(u.Rows, target.Rows)
			diff = &d
			break
		}
	}

	workbook, err := hotelblock.BuildWorkbook(target.Rows, diff)
	if err != nil {
		if p.metrics != nil {
			p.metrics.ErrorsCount.WithLabelValues("hotel_draft").Inc()
		}
		return nil, fmt.Errorf("build hotel block workbook: %w", err)
	}

	month := hotelblock.MonthName(target.Rows)
	if p.metrics != nil {
		p.metrics.DraftsRendered.WithLabelValues("hotel_block").Inc()
	}
	return &HotelDraft{
		EmailBody: hotelblock.BuildEmailBody(month),
		Workbook:  workbook,
		Filename:  hotelblock.SuggestedFilename(month),
		Diff:      diff,
	}, nil
}
