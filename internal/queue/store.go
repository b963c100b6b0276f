package queue

import (
	"strings"
	"sync"

	"backend-triage/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type StoreOptions struct {
	// RecentLimit caps how many done records are retained. Zero or less keeps all of them.
	RecentLimit int
	NewID       func() string
}

// Store owns every patient record and the waiting -> serving -> done lifecycle.
// Only one record may be serving at a time; servingID is that slot.
type Store struct {
	mu          sync.RWMutex
	clock       Clock
	issuer      *Issuer
	newID       func() string
	recentLimit int

	records   map[string]*models.Patient
	order     []string // submission order
	done      []string // completion order, oldest first
	servingID string
}

func NewStore(clock Clock, issuer *Issuer, opts StoreOptions) *Store {
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Store{
		clock:       clock,
		issuer:      issuer,
		newID:       newID,
		recentLimit: opts.RecentLimit,
		records:     make(map[string]*models.Patient),
	}
}

func (s *Store) Submit(name string, urgency models.Urgency, reason string) (models.Patient, error) {
	name = strings.TrimSpace(name)
	if name == "" || urgency == "" {
		return models.Patient{}, &ValidationError{Msg: "Name and urgency are required."}
	}
	if !urgency.Valid() {
		return models.Patient{}, &ValidationError{Msg: "Invalid urgency level."}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &models.Patient{
		ID:          s.newID(),
		Token:       s.issuer.Issue(),
		Name:        name,
		Urgency:     urgency,
		Reason:      strings.TrimSpace(reason),
		ArrivalTime: s.clock.Now(),
		Status:      models.StatusWaiting,
	}
	s.records[p.ID] = p
	s.order = append(s.order, p.ID)

	return p.Clone(), nil
}

// Serve puts id into the serving slot and returns the patient it displaced, if any.
func (s *Store) Serve(id string) (models.Patient, *models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.records[id]
	if !ok {
		return models.Patient{}, nil, errors.Wrapf(ErrNotFound, "patient %s", id)
	}
	if p.Status == models.StatusDone {
		return models.Patient{}, nil, errors.Wrapf(ErrInvalidState, "patient %s is already done", id)
	}
	if s.servingID == id {
		return p.Clone(), nil, nil
	}

	var demoted *models.Patient
	if prev, ok := s.records[s.servingID]; ok {
		prev.Status = models.StatusWaiting
		c := prev.Clone()
		demoted = &c
	}

	p.Status = models.StatusServing
	// id may alias a request buffer that is reused after the call returns.
	s.servingID = strings.Clone(id)

	return p.Clone(), demoted, nil
}

// Complete marks id done. Repeating it is a no-op and reports changed=false;
// CompletedAt keeps the time of the first call.
func (s *Store) Complete(id string) (models.Patient, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.records[id]
	if !ok {
		return models.Patient{}, false, errors.Wrapf(ErrNotFound, "patient %s", id)
	}
	if p.Status == models.StatusDone {
		return p.Clone(), false, nil
	}

	now := s.clock.Now()
	p.Status = models.StatusDone
	p.CompletedAt = &now
	if s.servingID == id {
		s.servingID = ""
	}

	out := p.Clone()
	s.done = append(s.done, id)
	s.ageOut()

	return out, true, nil
}

// ageOut drops the oldest done records beyond recentLimit. Caller holds mu.
func (s *Store) ageOut() {
	if s.recentLimit <= 0 || len(s.done) <= s.recentLimit {
		return
	}

	drop := s.done[:len(s.done)-s.recentLimit]
	gone := make(map[string]struct{}, len(drop))
	for _, id := range drop {
		delete(s.records, id)
		gone[id] = struct{}{}
	}
	s.done = append([]string(nil), s.done[len(drop):]...)

	kept := s.order[:0]
	for _, id := range s.order {
		if _, ok := gone[id]; !ok {
			kept = append(kept, id)
		}
	}
	s.order = kept
}

// Reset clears all records and restarts the token sequence at 001.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*models.Patient)
	s.order = nil
	s.done = nil
	s.servingID = ""
	s.issuer.Reset()
}

// Snapshot returns copies of all records: waiting and serving ones in
// submission order, then done ones in completion order.
func (s *Store) Snapshot() []models.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Patient, 0, len(s.order))
	for _, id := range s.order {
		if p := s.records[id]; p.Status != models.StatusDone {
			out = append(out, p.Clone())
		}
	}
	for _, id := range s.done {
		out = append(out, s.records[id].Clone())
	}
	return out
}
