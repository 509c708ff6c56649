package domain

import "context"

// Transaction exposes the domain operations that a persistence implementation
// must support within an atomic scope.
type Transaction interface {
	Snapshot() TransactionView
	CreateCoachee(Coachee) (Coachee, error)
	UpdateCoachee(id string, mutator func(*Coachee) error) (Coachee, error)
	DeleteCoachee(id string) error
	CreateSession(Session) (Session, error)
	UpdateSession(id string, mutator func(*Session) error) (Session, error)
	DeleteSession(id string) error
	CreateSource(Source) (Source, error)
	UpdateSource(id string, mutator func(*Source) error) (Source, error)
	DeleteSource(id string) error
	SetIdentity(*Identity)
	FindCoachee(id string) (Coachee, bool)
	FindSource(id string) (Source, bool)
}

// TransactionView provides read-only access to snapshot data for rules.
type TransactionView interface {
	ListCoachees() []Coachee
	ListSessions() []Session
	ListSources() []Source
	FindCoachee(id string) (Coachee, bool)
	FindSession(id string) (Session, bool)
	FindSource(id string) (Source, bool)
}

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	GetCoachee(id string) (Coachee, bool)
	ListCoachees() []Coachee
	GetSession(id string) (Session, bool)
	ListSessions() []Session
	GetSource(id string) (Source, bool)
	ListSources() []Source
	CurrentIdentity() (Identity, bool)
}
