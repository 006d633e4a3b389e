// Package ledger stores electric bills in an append-only CSV file.
//
// Each line holds three comma-separated fields, date (YYYY-MM-DD), consumption
// in kWh and cost, with no header and no quoting. Reads are memoized until the
// next write through the store's cache group.
package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/jgoulah/greencalc/internal/cache"
	"github.com/jgoulah/greencalc/internal/clock"
	"github.com/jgoulah/greencalc/internal/rowpolicy"
	"github.com/jgoulah/greencalc/pkg/models"
)

// CacheName identifies the ledger in cache events and metrics
const CacheName = "bills"

// Store is the bill ledger backed by a single file
type Store struct {
	path   string
	clock  clock.Clock
	policy rowpolicy.Policy
	group  *cache.Group
	memo   *cache.Value[[]models.BillRecord]
	onSave func()
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the time source used to date new bills
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// WithCacheGroup shares an invalidation group with other stores
func WithCacheGroup(g *cache.Group) Option {
	return func(s *Store) {
		s.group = g
	}
}

// WithMalformedPolicy sets how unparsable lines are handled (default abort)
func WithMalformedPolicy(p rowpolicy.Policy) Option {
	return func(s *Store) {
		s.policy = p
	}
}

// WithSaveHook registers a callback run after every successful append
func WithSaveHook(fn func()) Option {
	return func(s *Store) {
		s.onSave = fn
	}
}

// NewStore creates a ledger for the file at path. The file is created on first save.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		clock:  clock.System{},
		policy: rowpolicy.Abort,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.group == nil {
		s.group = cache.NewGroup()
	}
	s.memo = cache.NewValue[[]models.BillRecord](s.group, CacheName)
	return s
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load returns every bill in append order.
// A missing or empty file yields an empty slice.
func (s *Store) Load() ([]models.BillRecord, error) {
	records, err := s.memo.GetOrLoad(s.read)
	if err != nil {
		return nil, err
	}
	return slices.Clone(records), nil
}

// Save appends a bill dated today and invalidates the cache group.
// Callers are expected to apply models.ValidateBill first; the store only
// rejects values that break the ledger invariants.
func (s *Store) Save(kwh, cost float64) (models.BillRecord, error) {
	if !nonNegative(kwh) || !nonNegative(cost) {
		return models.BillRecord{}, fmt.Errorf("%w: consumption and cost must be non-negative numbers", models.ErrInvalidBill)
	}

	now := s.clock.Now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	line := formatLine(date, kwh, cost)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return models.BillRecord{}, fmt.Errorf("opening ledger: %w", err)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return models.BillRecord{}, fmt.Errorf("appending bill: %w", err)
	}
	if err := f.Close(); err != nil {
		return models.BillRecord{}, fmt.Errorf("closing ledger: %w", err)
	}

	s.group.Invalidate()
	if s.onSave != nil {
		s.onSave()
	}

	log.WithFields(log.Fields{"date": date.Format(models.DateLayout), "kwh": kwh}).Debug("bill appended")
	return models.BillRecord{Date: date, KWh: kwh, Cost: cost}, nil
}

func (s *Store) read() ([]models.BillRecord, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.BillRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	records := []models.BillRecord{}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		rec, err := parseLine(text)
		if err != nil {
			perr := &rowpolicy.ParseError{Path: s.path, Line: lineNo, Err: err}
			switch s.policy {
			case rowpolicy.Skip:
				log.WithError(perr).Warn("skipping malformed bill row")
				continue
			case rowpolicy.Empty:
				log.WithError(perr).Warn("discarding ledger with malformed row")
				return []models.BillRecord{}, nil
			default:
				return nil, perr
			}
		}
		rec.Seq = len(records) + 1
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	return records, nil
}

func parseLine(line string) (models.BillRecord, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return models.BillRecord{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}

	date, err := time.ParseInLocation(models.DateLayout, strings.TrimSpace(fields[0]), time.Local)
	if err != nil {
		return models.BillRecord{}, fmt.Errorf("parsing date: %w", err)
	}
	kwh, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return models.BillRecord{}, fmt.Errorf("parsing consumption: %w", err)
	}
	cost, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return models.BillRecord{}, fmt.Errorf("parsing cost: %w", err)
	}

	return models.BillRecord{Date: date, KWh: kwh, Cost: cost}, nil
}

func formatLine(date time.Time, kwh, cost float64) string {
	return fmt.Sprintf("%s,%s,%s\n", date.Format(models.DateLayout), formatDecimal(kwh), formatDecimal(cost))
}

// formatDecimal writes the shortest representation that always carries a
// decimal point, e.g. 10.5 and 2500.0.
func formatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func nonNegative(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}
