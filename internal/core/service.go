package core

import (
	"coachtrack/internal/infra/persistence/memory"
	"context"
	"fmt"
	"time"
)

// Service exposes higher-level transactional CRUD operations for the core schema.
type Service struct {
	store      PersistentStore
	logger     Logger
	metrics    MetricsRecorder
	tracer     Tracer
	audit      AuditRecorder
	credential credential
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...ServiceOption) *Service {
	s := &Service{
		store:      store,
		logger:     noopLogger{},
		metrics:    noopMetricsRecorder{},
		tracer:     noopTracer{},
		audit:      noopAuditRecorder{},
		credential: defaultCredential(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewInMemoryService creates a service and in-memory store with the given rules engine.
func NewInMemoryService(engine *RulesEngine, opts ...ServiceOption) *Service {
	return NewService(memory.NewStore(engine), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

// run executes fn inside a store transaction and records the outcome with the
// configured observability collaborators.
func (s *Service) run(ctx context.Context, op string, entity EntityType, fn func(Transaction) error, entityID func() string) (Result, error) {
	ctx, span := s.tracer.Start(ctx, op)
	started := time.Now()
	res, err := s.store.RunInTransaction(ctx, fn)
	s.metrics.Observe(ctx, op, err == nil, time.Since(started))

	entry := AuditEntry{
		Operation:  op,
		Status:     AuditStatusSuccess,
		EntityType: entity,
		OccurredAt: time.Now().UTC(),
	}
	if entityID != nil {
		entry.EntityID = entityID()
	}
	if err != nil {
		entry.Status = AuditStatusError
		entry.Error = err.Error()
		s.logger.Error("operation failed", "operation", op, "error", err)
	} else {
		s.logger.Debug("operation completed", "operation", op, "entity_id", entry.EntityID)
	}
	s.audit.Record(ctx, entry)
	span.End(err)
	return res, err
}

// CreateCoachee persists a new coachee.
func (s *Service) CreateCoachee(ctx context.Context, coachee Coachee) (Coachee, Result, error) {
	var created Coachee
	res, err := s.run(ctx, "create_coachee", EntityCoachee, func(tx Transaction) error {
		var err error
		created, err = tx.CreateCoachee(coachee)
		return err
	}, func() string { return created.ID })
	return created, res, err
}

// UpdateCoachee mutates a coachee using the provided mutator.
func (s *Service) UpdateCoachee(ctx context.Context, id string, mutator func(*Coachee) error) (Coachee, Result, error) {
	var updated Coachee
	res, err := s.run(ctx, "update_coachee", EntityCoachee, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateCoachee(id, mutator)
		return err
	}, func() string { return id })
	return updated, res, err
}

// DeleteCoachee removes a coachee record. Sessions referencing the coachee are
// intentionally left in place.
func (s *Service) DeleteCoachee(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_coachee", EntityCoachee, func(tx Transaction) error {
		return tx.DeleteCoachee(id)
	}, func() string { return id })
}

// CreateSession persists a new session. The referenced coachee must exist at
// creation time; its type is stamped onto the session and never re-derived.
func (s *Service) CreateSession(ctx context.Context, session Session) (Session, Result, error) {
	var created Session
	res, err := s.run(ctx, "create_session", EntitySession, func(tx Transaction) error {
		coachee, ok := tx.FindCoachee(session.CoacheeID)
		if !ok {
			return ErrNotFound{Entity: EntityCoachee, ID: session.CoacheeID}
		}
		session.CoacheeType = coachee.Type
		var err error
		created, err = tx.CreateSession(session)
		return err
	}, func() string { return created.ID })
	return created, res, err
}

// UpdateSession mutates a session using the provided mutator.
func (s *Service) UpdateSession(ctx context.Context, id string, mutator func(*Session) error) (Session, Result, error) {
	var updated Session
	res, err := s.run(ctx, "update_session", EntitySession, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateSession(id, mutator)
		return err
	}, func() string { return id })
	return updated, res, err
}

// DeleteSession removes a session record.
func (s *Service) DeleteSession(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_session", EntitySession, func(tx Transaction) error {
		return tx.DeleteSession(id)
	}, func() string { return id })
}

// CreateSource persists a new referral source.
func (s *Service) CreateSource(ctx context.Context, source Source) (Source, Result, error) {
	var created Source
	res, err := s.run(ctx, "create_source", EntitySource, func(tx Transaction) error {
		var err error
		created, err = tx.CreateSource(source)
		return err
	}, func() string { return created.ID })
	return created, res, err
}

// UpdateSource mutates a source using the provided mutator.
func (s *Service) UpdateSource(ctx context.Context, id string, mutator func(*Source) error) (Source, Result, error) {
	var updated Source
	res, err := s.run(ctx, "update_source", EntitySource, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateSource(id, mutator)
		return err
	}, func() string { return id })
	return updated, res, err
}

// DeleteSource removes a source record. Coachees keep their source reference
// even when it no longer resolves.
func (s *Service) DeleteSource(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_source", EntitySource, func(tx Transaction) error {
		return tx.DeleteSource(id)
	}, func() string { return id })
}

// AssignCoacheeSource updates a coachee's referral source within a transaction
// that validates the source exists.
func (s *Service) AssignCoacheeSource(ctx context.Context, coacheeID, sourceID string) (Coachee, Result, error) {
	var updated Coachee
	res, err := s.run(ctx, "assign_coachee_source", EntityCoachee, func(tx Transaction) error {
		if _, ok := tx.FindSource(sourceID); !ok {
			return ErrNotFound{Entity: EntitySource, ID: sourceID}
		}
		var err error
		updated, err = tx.UpdateCoachee(coacheeID, func(c *Coachee) error {
			c.SourceID = &sourceID
			return nil
		})
		return err
	}, func() string { return coacheeID })
	return updated, res, err
}

// ErrNotFound is returned when reference validation fails within transactional helpers.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}
