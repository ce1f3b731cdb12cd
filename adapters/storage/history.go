package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bakery-cost/core/output"
	"bakery-cost/internal/errors"
)

// Backend is a history backend type
type Backend string

const (
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// HistoryStore keeps saved cost reports
type HistoryStore interface {
	// Save stores a report, assigning ID and CreatedAt when empty
	Save(ctx context.Context, report *output.Report) error

	// Get retrieves a report by ID
	Get(ctx context.Context, id string) (*output.Report, error)

	// List returns reports newest first; limit <= 0 means all
	List(ctx context.Context, limit int) ([]*output.Report, error)

	// Delete removes a report
	Delete(ctx context.Context, id string) error

	// Compare compares the totals of two reports
	Compare(ctx context.Context, oldID, newID string) (*CompareResult, error)

	// Close closes the store
	Close() error
}

// CompareResult is a comparison between two saved reports
type CompareResult struct {
	OldID        string          `json:"old_id"`
	NewID        string          `json:"new_id"`
	OldCost      decimal.Decimal `json:"old_cost"`
	NewCost      decimal.Decimal `json:"new_cost"`
	Delta        decimal.Decimal `json:"delta"`
	DeltaPercent decimal.Decimal `json:"delta_percent"`
	Currency     string          `json:"currency"`
}

func compareReports(oldR, newR *output.Report) *CompareResult {
	delta := newR.TotalCost.Sub(oldR.TotalCost)
	pct := decimal.Zero
	if oldR.TotalCost.IsPositive() {
		pct = delta.Div(oldR.TotalCost).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return &CompareResult{
		OldID:        oldR.ID,
		NewID:        newR.ID,
		OldCost:      oldR.TotalCost,
		NewCost:      newR.TotalCost,
		Delta:        delta,
		DeltaPercent: pct,
		Currency:     newR.Currency,
	}
}

func prepare(report *output.Report) {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
}

func newestFirst(reports []*output.Report, limit int) []*output.Report {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	if limit > 0 && limit < len(reports) {
		reports = reports[:limit]
	}
	return reports
}

func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Input(fmt.Sprintf("invalid report id %q", id))
	}
	return nil
}

// FileHistory stores one JSON file per report
type FileHistory struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileHistory creates a file history under basePath
func NewFileHistory(basePath string) (*FileHistory, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, errors.Wrapf(errors.TypePersistence, err, "cannot create history directory %s", basePath)
	}
	return &FileHistory{basePath: basePath}, nil
}

func (s *FileHistory) path(id string) string {
	return filepath.Join(s.basePath, id+".json")
}

func (s *FileHistory) Save(ctx context.Context, report *output.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(report)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(errors.TypeInternal, "cannot encode report", err)
	}
	if err := writeFileAtomic(s.path(report.ID), data, 0o644); err != nil {
		return errors.Wrapf(errors.TypePersistence, err, "cannot save report %s", report.ID)
	}
	return nil
}

func (s *FileHistory) Get(ctx context.Context, id string) (*output.Report, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return nil, errors.NotFound("report", id)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInternal, err, "cannot read report %s", id)
	}
	var report output.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.Wrapf(errors.TypeInternal, err, "cannot decode report %s", id)
	}
	return &report, nil
}

// List skips files that cannot be decoded
func (s *FileHistory) List(ctx context.Context, limit int) ([]*output.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInternal, err, "cannot read history %s", s.basePath)
	}

	var reports []*output.Report
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.basePath, name))
		if err != nil {
			continue
		}
		var report output.Report
		if err := json.Unmarshal(data, &report); err != nil {
			continue
		}
		reports = append(reports, &report)
	}
	return newestFirst(reports, limit), nil
}

func (s *FileHistory) Delete(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return errors.NotFound("report", id)
	}
	return err
}

func (s *FileHistory) Compare(ctx context.Context, oldID, newID string) (*CompareResult, error) {
	oldR, err := s.Get(ctx, oldID)
	if err != nil {
		return nil, err
	}
	newR, err := s.Get(ctx, newID)
	if err != nil {
		return nil, err
	}
	return compareReports(oldR, newR), nil
}

func (s *FileHistory) Close() error {
	return nil
}

// MemoryHistory is an in-memory history (for testing)
type MemoryHistory struct {
	reports map[string]*output.Report
	mu      sync.RWMutex
}

// NewMemoryHistory creates a memory history
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{reports: make(map[string]*output.Report)}
}

func (s *MemoryHistory) Save(ctx context.Context, report *output.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(report)
	s.reports[report.ID] = report
	return nil
}

func (s *MemoryHistory) Get(ctx context.Context, id string) (*output.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.reports[id]
	if !ok {
		return nil, errors.NotFound("report", id)
	}
	return report, nil
}

func (s *MemoryHistory) List(ctx context.Context, limit int) ([]*output.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]*output.Report, 0, len(s.reports))
	for _, r := range s.reports {
		reports = append(reports, r)
	}
	return newestFirst(reports, limit), nil
}

func (s *MemoryHistory) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[id]; !ok {
		return errors.NotFound("report", id)
	}
	delete(s.reports, id)
	return nil
}

func (s *MemoryHistory) Compare(ctx context.Context, oldID, newID string) (*CompareResult, error) {
	oldR, err := s.Get(ctx, oldID)
	if err != nil {
		return nil, err
	}
	newR, err := s.Get(ctx, newID)
	if err != nil {
		return nil, err
	}
	return compareReports(oldR, newR), nil
}

func (s *MemoryHistory) Close() error {
	return nil
}

// NewHistory creates a history store by backend type
func NewHistory(backend Backend, dir string) (HistoryStore, error) {
	switch backend {
	case BackendFile, "":
		if dir == "" {
			dir = ".bakery-cost/history"
		}
		return NewFileHistory(dir)
	case BackendMemory:
		return NewMemoryHistory(), nil
	default:
		return nil, fmt.Errorf("unsupported history backend: %s", backend)
	}
}

var (
	_ io.Closer    = (*FileHistory)(nil)
	_ io.Closer    = (*MemoryHistory)(nil)
	_ HistoryStore = (*FileHistory)(nil)
	_ HistoryStore = (*MemoryHistory)(nil)
)
