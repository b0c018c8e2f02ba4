package usecase

import (
	"context"
	"fmt"
	"time"

	"crewtravel-service/internal/domain/entity"
	"crewtravel-service/internal/domain/repository"
	"crewtravel-service/internal/spreadsheet"
	"crewtravel-service/internal/ticketing"
	"crewtravel-service/pkg/logger"
	"crewtravel-service/pkg/metrics"
	"crewtravel-service/pkg/rowfield"
	"crewtravel-service/pkg/sheetdate"
)

// snapshotKeep is how many uploads survive per stream: the current one and
// the previous one the diff runs against.
const snapshotKeep = 2

// TicketProcessor runs the ticketing pipeline: decode, normalize, enrich
// from the crew roster, group, diff against the previous snapshot, persist.
type TicketProcessor struct {
	snapshots  repository.TicketSnapshotRepository
	crew       repository.CrewRepository
	normalizer *ticketing.Normalizer
	dates      *sheetdate.Parser
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewTicketProcessor creates a new ticket processor.
func NewTicketProcessor(
	snapshots repository.TicketSnapshotRepository,
	crew repository.CrewRepository,
	normalizer *ticketing.Normalizer,
	dates *sheetdate.Parser,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *TicketProcessor {
	return &TicketProcessor{
		snapshots:  snapshots,
		crew:       crew,
		normalizer: normalizer,
		dates:      dates,
		logger:     logger,
		metrics:    metrics,
	}
}

// TicketUploadResult summarizes one processed upload.
type TicketUploadResult struct {
	UploadID       string
	RowCount       int
	GroupCount     int
	MatchedCrew    int
	UnmatchedNames []string
	Diff           *ticketing.DiffResult
}

// ProcessUpload ingests one ticketing workbook, stores the snapshot and
// diffs it against the previous one when present.
func (p *TicketProcessor) ProcessUpload(ctx context.Context, filename string, data []byte) (*TicketUploadResult, error) {
	start := time.Now()

	headers, raws, err := spreadsheet.Read(data)
	if err != nil {
		if p.metrics != nil {
			p.metrics.ErrorsCount.WithLabelValues("ticket_upload").Inc()
		}
		return nil, fmt.Errorf("decode ticketing workbook: %w", err)
	}

	rows := p.normalizer.NormalizeRows(ctx, raws)
	matched, unmatchedNames := p.enrichFromRoster(ctx, rows)

	previous, err := p.snapshots.FindLatest(ctx, 1)
	if err != nil {
		p.logger.Warn("Could not load previous snapshot, treating upload as first", "error", err)
		previous = nil
	}

	upload := &entity.TicketUpload{
		Filename:   filename,
		UploadedAt: time.Now().UTC(),
		Headers:    headers,
		Rows:       rows,
	}
	id, err := p.snapshots.Insert(ctx, upload)
	if err != nil {
		if p.metrics != nil {
			p.metrics.ErrorsCount.WithLabelValues("ticket_upload").Inc()
		}
		return nil, fmt.Errorf("store ticketing snapshot: %w", err)
	}
	if err := p.snapshots.PruneKeep(ctx, snapshotKeep); err != nil {
		p.logger.Warn("Snapshot prune failed", "error", err)
	}

	currGroups := ticketing.Group(rows)
	var diff *ticketing.DiffResult
	if len(previous) > 0 {
		d := ticketing.Diff(ticketing.Group(previous[0].Rows), currGroups)
		diff = &d
	}

	if p.metrics != nil {
		p.metrics.UploadsProcessed.WithLabelValues("ticketing").Inc()
		p.metrics.RowsNormalized.WithLabelValues("ticketing").Add(float64(len(rows)))
		p.metrics.ProcessingTime.Observe(time.Since(start).Seconds())
		if diff != nil {
			p.metrics.DiffEntries.WithLabelValues("ticketing", "new").Add(float64(len(diff.NewFlights)))
			p.metrics.DiffEntries.WithLabelValues("ticketing", "changed").Add(float64(len(diff.ChangedFlights)))
			p.metrics.DiffEntries.WithLabelValues("ticketing", "cancelled").Add(float64(len(diff.CancelledFlights)))
		}
	}

	p.logger.Info("Ticketing upload processed",
		"uploadId", id, "rows", len(rows), "groups", len(currGroups),
		"matchedCrew", matched, "unmatchedCrew", len(unmatchedNames))

	return &TicketUploadResult{
		UploadID:       id,
		RowCount:       len(rows),
		GroupCount:     len(currGroups),
		MatchedCrew:    matched,
		UnmatchedNames: unmatchedNames,
		Diff:           diff,
	}, nil
}

// enrichFromRoster matches rows against the crew database by folded name.
// A missing or failing roster is not an error; rows simply stay bare.
func (p *TicketProcessor) enrichFromRoster(ctx context.Context, rows []entity.TicketRow) (int, []string) {
	members, err := p.crew.FindAll(ctx)
	if err != nil {
		p.logger.Warn("Crew roster unavailable, skipping enrichment", "error", err)
		return 0, nil
	}
	index := buildCrewIndex(members)

	matched := 0
	var unmatched []string
	for i := range rows {
		if rows[i].CrewName == "" {
			continue
		}
		member, ok := index[rowfield.FoldName(rows[i].CrewName)]
		if !ok {
			unmatched = append(unmatched, rows[i].CrewName)
			continue
		}
		matched++
		applyCrewData(&rows[i], member, p.dates)
	}
	return matched, unmatched
}

// BuildDraft renders the email draft for one snapshot, diffed against the
// other retained snapshot when there is one. An empty uploadID means the
// latest upload.
func (p *TicketProcessor) BuildDraft(ctx context.Context, uploadID string, showAll bool) (string, error) {
	uploads, err := p.snapshots.FindLatest(ctx, snapshotKeep)
	if err != nil {
		return "", fmt.Errorf("load snapshots: %w", err)
	}
	if len(uploads) == 0 {
		return "", fmt.Errorf("no ticketing uploads yet")
	}

	target := uploads[0]
	var prev *entity.TicketUpload
	if uploadID != "" && uploadID != uploads[0].ID {
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
				return "", fmt.Errorf("upload %s not found: %w", uploadID, err)
			}
		}
	}
	for _, u := range uploads {
		if u.ID != target.ID && u.UploadedAt.Before(target.UploadedAt) {
			prev = u
			break
		}
	}

	groups := ticketing.Group(target.Rows)
	var diff *ticketing.DiffResult
	if prev != nil {
		d := ticketing.Diff(ticketing.Group(prev.Rows), groups)
		diff = &d
	}

	if p.metrics != nil {
		p.metrics.DraftsRendered.WithLabelValues("ticketing").Inc()
	}
	return ticketing.BuildDraft(groups, diff, ticketing.DraftOptions{ShowAll: showAll}), nil
}

// Diff compares the two retained snapshots. With a single upload everything
// reads as new; with none the result is nil.
func (p *TicketProcessor) Diff(ctx context.Context) (*ticketing.DiffResult, error) {
	uploads, err := p.snapshots.FindLatest(ctx, snapshotKeep)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	if len(uploads) == 0 {
		return nil, nil
	}
	currGroups := ticketing.Group(uploads[0].Rows)
	var prevGroups []entity.FlightGroup
	if len(uploads) > 1 {
		prevGroups = ticketing.Group(uploads[1].Rows)
	}
	d := ticketing.Diff(prevGroups, currGroups)
	return &d, nil
}
