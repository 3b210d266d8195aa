package service

import (
	"errors"
	"sync"

	"github.com/storeops/salesdash/internal/analytics"
	"github.com/storeops/salesdash/internal/domain"
)

// ErrNoReport is returned when a report is requested before any upload has
// been processed.
var ErrNoReport = errors.New("no report loaded; upload a sale report first")

// ReportService holds the bundle of the most recent upload. Each new upload
// fully replaces the previous snapshot; filter queries are pure recomputes
// against the retained sales stream, never mutations of the bundle.
type ReportService struct {
	mu        sync.RWMutex
	processor *analytics.Processor
	current   *domain.ReportBundle
}

func NewReportService(processor *analytics.Processor) *ReportService {
	return &ReportService{processor: processor}
}

// ProcessFile runs the full pipeline on an uploaded file and installs the
// resulting bundle as the current snapshot. On error the previous snapshot
// is kept untouched.
func (s *ReportService) ProcessFile(path string) (*domain.ReportBundle, error) {
	bundle, err := s.processor.ProcessFile(path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = bundle
	s.mu.Unlock()
	return bundle, nil
}

// Current returns the bundle of the most recent successful run.
func (s *ReportService) Current() (*domain.ReportBundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoReport
	}
	return s.current, nil
}

// CategoryReport recomputes the category rollup for the given filter
// selections against the current snapshot's sales stream.
func (s *ReportService) CategoryReport(category, subCategory string) (domain.CategoryReport, error) {
	bundle, err := s.Current()
	if err != nil {
		return domain.CategoryReport{}, err
	}
	return analytics.ComputeCategoryReport(bundle.SalesStream, category, subCategory), nil
}

// FilterOptions lists the category filter values available in the current
// snapshot, restricted by the selected category when one is given.
func (s *ReportService) FilterOptions(category string) (domain.FilterOptions, error) {
	bundle, err := s.Current()
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return analytics.CategoryFilterOptions(bundle.SalesStream, category), nil
}
