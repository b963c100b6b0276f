package queue

import (
	"context"
	"sync"

	"backend-triage/internal/models"

	"github.com/sirupsen/logrus"
)

// Authenticator resolves a bearer session to the staff member holding it.
type Authenticator interface {
	Authenticate(bearerToken string) (models.StaffIdentity, error)
}

// Service is the boundary for queue operations. Staff-only operations
// check the session before touching the store.
//
// Every store mutation runs under commitMu, which also stamps the resulting
// events with a sequence number and queues them in the outbox. Notifiers are
// called outside commitMu, one drain at a time, so they see events in commit
// order without holding up other mutations.
type Service struct {
	store     *Store
	orderer   Orderer
	auth      Authenticator
	clock     Clock
	notifiers []Notifier
	logger    logrus.FieldLogger

	commitMu sync.Mutex
	seq      uint64
	outbox   []Event

	emitMu sync.Mutex
}

func NewService(store *Store, orderer Orderer, auth Authenticator, clock Clock, logger logrus.FieldLogger, notifiers ...Notifier) *Service {
	return &Service{
		store:     store,
		orderer:   orderer,
		auth:      auth,
		clock:     clock,
		notifiers: notifiers,
		logger:    logger,
	}
}

func (s *Service) Submit(ctx context.Context, name, urgency, reason string) (models.Patient, error) {
	var p models.Patient
	err := s.commit(ctx, func() ([]Event, error) {
		var err error
		if p, err = s.store.Submit(name, models.Urgency(urgency), reason); err != nil {
			return nil, err
		}
		return []Event{{Type: EventSubmit, PatientID: p.ID, Token: p.Token, Status: p.Status, At: p.ArrivalTime}}, nil
	})
	if err != nil {
		return models.Patient{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"patient_id": p.ID,
		"token":      p.Token,
		"urgency":    p.Urgency,
	}).Info("patient added to queue")
	return p, nil
}

func (s *Service) View() models.QueueView {
	return s.orderer.Project(s.store.Snapshot(), s.clock.Now())
}

func (s *Service) Serve(ctx context.Context, bearerToken, id string) (models.Patient, error) {
	staff, err := s.auth.Authenticate(bearerToken)
	if err != nil {
		return models.Patient{}, err
	}

	var p models.Patient
	var demoted *models.Patient
	err = s.commit(ctx, func() ([]Event, error) {
		var err error
		if p, demoted, err = s.store.Serve(id); err != nil {
			return nil, err
		}
		now := s.clock.Now()
		var evs []Event
		if demoted != nil {
			evs = append(evs, Event{Type: EventDemote, PatientID: demoted.ID, Token: demoted.Token, Status: demoted.Status, Actor: staff.Username, At: now})
		}
		return append(evs, Event{Type: EventServe, PatientID: p.ID, Token: p.Token, Status: p.Status, Actor: staff.Username, At: now}), nil
	})
	if err != nil {
		return models.Patient{}, err
	}

	log := s.logger.WithFields(logrus.Fields{"patient_id": p.ID, "token": p.Token, "staff": staff.Username})
	if demoted != nil {
		log = log.WithField("demoted", demoted.Token)
	}
	log.Info("patient is now being served")
	return p, nil
}

func (s *Service) Complete(ctx context.Context, bearerToken, id string) (models.Patient, error) {
	staff, err := s.auth.Authenticate(bearerToken)
	if err != nil {
		return models.Patient{}, err
	}

	var p models.Patient
	var changed bool
	err = s.commit(ctx, func() ([]Event, error) {
		var err error
		if p, changed, err = s.store.Complete(id); err != nil || !changed {
			return nil, err
		}
		return []Event{{Type: EventComplete, PatientID: p.ID, Token: p.Token, Status: p.Status, Actor: staff.Username, At: *p.CompletedAt}}, nil
	})
	if err != nil {
		return models.Patient{}, err
	}

	if changed {
		s.logger.WithFields(logrus.Fields{"patient_id": p.ID, "token": p.Token, "staff": staff.Username}).Info("patient marked as done")
	}
	return p, nil
}

func (s *Service) Reset(ctx context.Context) {
	s.commit(ctx, func() ([]Event, error) {
		s.store.Reset()
		return []Event{{Type: EventReset, At: s.clock.Now()}}, nil
	})
	s.logger.Info("queue reset")
}

// commit applies one mutation and delivers whatever is pending in the outbox
// before returning, so callers observe their own events as already sent.
func (s *Service) commit(ctx context.Context, apply func() ([]Event, error)) error {
	s.commitMu.Lock()
	evs, err := apply()
	for i := range evs {
		s.seq++
		evs[i].Seq = s.seq
	}
	s.outbox = append(s.outbox, evs...)
	s.commitMu.Unlock()

	s.flush(ctx)
	return err
}

func (s *Service) flush(ctx context.Context) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	for {
		s.commitMu.Lock()
		pending := s.outbox
		s.outbox = nil
		s.commitMu.Unlock()

		if len(pending) == 0 {
			return
		}
		for _, ev := range pending {
			s.emit(ctx, ev)
		}
	}
}

func (s *Service) emit(ctx context.Context, ev Event) {
	for _, n := range s.notifiers {
		if err := n.Notify(ctx, ev); err != nil {
			s.logger.WithError(err).WithField("event", ev.Type).Warn("queue notifier failed")
		}
	}
}
