// Package session holds the per-session appliance list.
//
// A session seeds its list from the inventory when it starts and appends to it
// as appliances are added. The list is owned by the session alone; closing the
// session drops it without touching the backing file.
package session

import (
	"fmt"
	"slices"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/jgoulah/greencalc/pkg/models"
)

// Inventory is the part of the appliance store a session needs
type Inventory interface {
	Load() ([]models.ApplianceRecord, error)
	Save(models.ApplianceRecord) error
}

// Session is one user's working state
type Session struct {
	ID   string
	User string

	inventory  Inventory
	appliances []models.ApplianceRecord
	closed     bool
}

// New starts a session for user, seeded from the inventory
func New(user string, inv Inventory) (*Session, error) {
	appliances, err := inv.Load()
	if err != nil {
		return nil, fmt.Errorf("loading appliances: %w", err)
	}

	s := &Session{
		ID:         uuid.NewString(),
		User:       user,
		inventory:  inv,
		appliances: appliances,
	}
	log.WithFields(log.Fields{"session": s.ID, "appliances": len(appliances)}).Debug("session started")
	return s, nil
}

// Appliances returns a copy of the session's appliance list
func (s *Session) Appliances() []models.ApplianceRecord {
	return slices.Clone(s.appliances)
}

// AddAppliance persists rec and appends it to the session list.
// The list is left unchanged if the save fails.
func (s *Session) AddAppliance(rec models.ApplianceRecord) error {
	if s.closed {
		return fmt.Errorf("session %s is closed", s.ID)
	}
	if err := s.inventory.Save(rec); err != nil {
		return fmt.Errorf("saving appliance: %w", err)
	}
	s.appliances = append(s.appliances, rec)
	return nil
}

// Close discards the in-memory list
func (s *Session) Close() {
	s.appliances = nil
	s.closed = true
	log.WithField("session", s.ID).Debug("session closed")
}
