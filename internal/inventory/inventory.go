// Package inventory stores appliance records in an append-only JSON-lines file.
package inventory

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/apex/log"

	"github.com/jgoulah/greencalc/internal/cache"
	"github.com/jgoulah/greencalc/internal/rowpolicy"
	"github.com/jgoulah/greencalc/pkg/models"
)

// CacheName identifies the inventory in cache events and metrics
const CacheName = "appliances"

// maxLineSize bounds a single inventory line
const maxLineSize = 1 << 20

// Store is the appliance inventory backed by a single file
type Store struct {
	path   string
	policy rowpolicy.Policy
	group  *cache.Group
	memo   *cache.Value[[]models.ApplianceRecord]
	onSave func()
}

// Option configures a Store
type Option func(*Store)

// WithCacheGroup shares an invalidation group with other stores
func WithCacheGroup(g *cache.Group) Option {
	return func(s *Store) {
		s.group = g
	}
}

// WithMalformedPolicy sets how unparsable lines are handled (default empty)
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

// NewStore creates an inventory for the file at path
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		policy: rowpolicy.Empty,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.group == nil {
		s.group = cache.NewGroup()
	}
	s.memo = cache.NewValue[[]models.ApplianceRecord](s.group, CacheName)
	return s
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load returns every appliance in append order
func (s *Store) Load() ([]models.ApplianceRecord, error) {
	records, err := s.memo.GetOrLoad(s.read)
	if err != nil {
		return nil, err
	}
	return slices.Clone(records), nil
}

// Save appends one record and invalidates the cache group.
// Identical records are stored again; there is no deduplication.
func (s *Store) Save(rec models.ApplianceRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	data, err := Encode(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening inventory: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("appending appliance: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing inventory: %w", err)
	}

	s.group.Invalidate()
	if s.onSave != nil {
		s.onSave()
	}

	log.WithFields(log.Fields{"kind": rec.Kind, "quantity": rec.Quantity}).Debug("appliance appended")
	return nil
}

func (s *Store) read() ([]models.ApplianceRecord, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.ApplianceRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening inventory: %w", err)
	}
	defer f.Close()

	records := []models.ApplianceRecord{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		rec, err := Decode(line)
		if err != nil {
			perr := &rowpolicy.ParseError{Path: s.path, Line: lineNo, Err: err}
			switch s.policy {
			case rowpolicy.Skip:
				log.WithError(perr).Warn("skipping malformed appliance row")
				continue
			case rowpolicy.Abort:
				return nil, perr
			default:
				log.WithError(perr).Warn("discarding inventory with malformed row")
				return []models.ApplianceRecord{}, nil
			}
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}

	return records, nil
}
