package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"productbot/assistant/internal/domain"
	"productbot/assistant/internal/mirror"
	"productbot/assistant/internal/repository"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type TableStatus int

const (
	TableUpdated TableStatus = iota + 1
	TableSkipped
	TableFailed
)

func (s TableStatus) String() string {
	switch s {
	case TableUpdated:
		return "updated"
	case TableSkipped:
		return "skipped"
	case TableFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TableResult is the outcome of one table within a sync pass.
type TableResult struct {
	Table    domain.TableConfig
	Status   TableStatus
	Products int
	Err      error
	Data     *domain.TableData // Set only when Status is TableUpdated
}

// Ingester produces the complete index of one table.
type Ingester interface {
	Ingest(ctx context.Context, table domain.TableConfig) (*domain.TableData, error)
}

var ErrSyncInProgress = errors.New("sync pass already running")

// SyncService refreshes the catalog repository from the configured tables.
type SyncService struct {
	ingestor    Ingester
	repository  repository.CatalogRepository
	mirror      mirror.SnapshotMirror
	tables      []domain.TableConfig
	concurrency int

	running chan struct{}
}

// NewSyncService creates the service. snapshotMirror may be nil.
func NewSyncService(
	ingestor Ingester,
	repository repository.CatalogRepository,
	snapshotMirror mirror.SnapshotMirror,
	tables []domain.TableConfig,
	concurrency int,
) *SyncService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &SyncService{
		ingestor:    ingestor,
		repository:  repository,
		mirror:      snapshotMirror,
		tables:      tables,
		concurrency: concurrency,
		running:     make(chan struct{}, 1),
	}
}

// SyncOnce ingests every configured table and publishes the successful ones in a
// single swap. Failed and skipped tables keep their published data. It returns
// ErrSyncInProgress instead of overlapping a pass that is still running.
func (s *SyncService) SyncOnce(ctx context.Context) ([]TableResult, error) {
	select {
	case s.running <- struct{}{}:
		defer func() { <-s.running }()
	default:
		return nil, ErrSyncInProgress
	}

	start := time.Now()
	results := make([]TableResult, len(s.tables))

	errGroup := new(errgroup.Group)
	errGroup.SetLimit(s.concurrency)

	for i, table := range s.tables {
		errGroup.Go(func() error {
			results[i] = s.syncTable(ctx, table)
			return nil
		})
	}
	_ = errGroup.Wait()

	updates := make([]*domain.TableData, 0, len(results))
	for _, result := range results {
		if result.Status == TableUpdated {
			updates = append(updates, result.Data)
		}
	}
	s.repository.Publish(updates...)
	s.saveToMirror(ctx, updates)

	log.Infof("✅ Sync pass finished in %s: %s", time.Since(start).Round(time.Millisecond), summarize(results))
	return results, nil
}

func (s *SyncService) syncTable(ctx context.Context, table domain.TableConfig) TableResult {
	if !table.Configured() {
		log.Warnf("⚠️ Table %s has no spreadsheet configured, skipping", table.Name)
		return TableResult{Table: table, Status: TableSkipped}
	}

	log.Debugf("🔄 Ingesting table %s (%s %s)", table.Name, table.Kind, table.Range)

	data, err := s.ingestor.Ingest(ctx, table)
	if err != nil {
		log.Errorf("❌ Failed to ingest table %s: %v", table.Name, err)
		return TableResult{Table: table, Status: TableFailed, Err: err}
	}
	if data == nil {
		err := fmt.Errorf("table %s: ingestor returned no data", table.Name)
		log.Errorf("❌ %v", err)
		return TableResult{Table: table, Status: TableFailed, Err: err}
	}

	return TableResult{Table: table, Status: TableUpdated, Products: data.Len(), Data: data}
}

func (s *SyncService) saveToMirror(ctx context.Context, updates []*domain.TableData) {
	if s.mirror == nil {
		return
	}
	for _, data := range updates {
		if err := s.mirror.Save(ctx, data); err != nil {
			log.Warnf("⚠️ Failed to mirror %s table: %v", data.Kind, err)
		}
	}
}

// Bootstrap runs the first pass and then fills every configured kind that is still
// unpublished from the mirror, if one is set.
func (s *SyncService) Bootstrap(ctx context.Context) ([]TableResult, error) {
	results, err := s.SyncOnce(ctx)
	if err != nil {
		return nil, err
	}
	if s.mirror == nil {
		return results, nil
	}

	restored := make([]*domain.TableData, 0)
	seen := make(map[domain.TableKind]bool)
	for _, table := range s.tables {
		if seen[table.Kind] || s.repository.Published(table.Kind) {
			continue
		}
		seen[table.Kind] = true

		data, err := s.mirror.Load(ctx, table.Kind)
		if err != nil {
			if !errors.Is(err, mirror.ErrNotFound) {
				log.Warnf("⚠️ Failed to restore %s table from mirror: %v", table.Kind, err)
			}
			continue
		}
		log.Infof("🔄 Restored %s table with %d products from mirror", table.Kind, data.Len())
		restored = append(restored, data)
	}
	s.repository.Publish(restored...)

	return results, nil
}

// Run repeats SyncOnce every interval until ctx is cancelled.
func (s *SyncService) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Infof("⏰ Catalog sync scheduled every %s", interval)

	for {
		select {
		case <-ctx.Done():
			log.Info("🛑 Catalog sync stopping")
			return nil
		case <-ticker.C:
			if _, err := s.SyncOnce(ctx); err != nil {
				log.Warnf("⚠️ Skipping scheduled sync: %v", err)
			}
		}
	}
}

func summarize(results []TableResult) string {
	if len(results) == 0 {
		return "no tables configured"
	}
	parts := make([]string, 0, len(results))
	for _, r := range results {
		if r.Status == TableUpdated {
			parts = append(parts, fmt.Sprintf("%s=%s(%d)", r.Table.Name, r.Status, r.Products))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", r.Table.Name, r.Status))
	}
	return strings.Join(parts, " ")
}
