// Package memory provides an in-memory implementation of the core persistence
// store used for tests and ephemeral environments.
package memory

import (
	"coachtrack/pkg/domain"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interfaces.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Coachee aliases domain.Coachee for in-memory persistence operations.
	Coachee = domain.Coachee
	// Session aliases domain.Session.
	Session = domain.Session
	// Source aliases domain.Source.
	Source = domain.Source
	// Identity aliases domain.Identity.
	Identity = domain.Identity
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
	// PersistentStore aliases domain.PersistentStore abstraction.
	PersistentStore = domain.PersistentStore
)

type memoryState struct {
	coachees map[string]Coachee
	sessions map[string]Session
	sources  map[string]Source
	identity *Identity
}

// Snapshot captures a point-in-time clone of the store state.
type Snapshot struct {
	Coachees map[string]Coachee `json:"coachees"`
	Sessions map[string]Session `json:"sessions"`
	Sources  map[string]Source  `json:"sources"`
	Identity *Identity          `json:"identity"`
}

func newMemoryState() memoryState {
	return memoryState{
		coachees: make(map[string]Coachee),
		sessions: make(map[string]Session),
		sources:  make(map[string]Source),
	}
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	s := Snapshot{
		Coachees: make(map[string]Coachee, len(state.coachees)),
		Sessions: make(map[string]Session, len(state.sessions)),
		Sources:  make(map[string]Source, len(state.sources)),
	}
	for k, v := range state.coachees {
		s.Coachees[k] = cloneCoachee(v)
	}
	for k, v := range state.sessions {
		s.Sessions[k] = cloneSession(v)
	}
	for k, v := range state.sources {
		s.Sources[k] = cloneSource(v)
	}
	s.Identity = cloneIdentity(state.identity)
	return s
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := newMemoryState()
	for k, v := range s.Coachees {
		state.coachees[k] = cloneCoachee(v)
	}
	for k, v := range s.Sessions {
		state.sessions[k] = cloneSession(v)
	}
	for k, v := range s.Sources {
		state.sources[k] = cloneSource(v)
	}
	state.identity = cloneIdentity(s.Identity)
	return state
}

// migrateSnapshot normalises snapshots loaded from durable storage. It only
// fills nil collections and repairs obviously broken field values; dangling
// coachee and source references are kept intact because historical sessions
// must survive the deletion of their referents.
func migrateSnapshot(snapshot Snapshot) Snapshot {
	if snapshot.Coachees == nil {
		snapshot.Coachees = map[string]Coachee{}
	}
	if snapshot.Sessions == nil {
		snapshot.Sessions = map[string]Session{}
	}
	if snapshot.Sources == nil {
		snapshot.Sources = map[string]Source{}
	}
	for id, session := range snapshot.Sessions {
		if session.Themes == nil {
			session.Themes = []string{}
		}
		snapshot.Sessions[id] = session
	}
	return snapshot
}

func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	for k, v := range s.coachees {
		cloned.coachees[k] = cloneCoachee(v)
	}
	for k, v := range s.sessions {
		cloned.sessions[k] = cloneSession(v)
	}
	for k, v := range s.sources {
		cloned.sources[k] = cloneSource(v)
	}
	cloned.identity = cloneIdentity(s.identity)
	return cloned
}

func cloneCoachee(c Coachee) Coachee {
	cp := c
	if c.SourceID != nil {
		id := *c.SourceID
		cp.SourceID = &id
	}
	if len(c.Members) != 0 {
		cp.Members = append([]string(nil), c.Members...)
	}
	return cp
}

func cloneSession(s Session) Session {
	cp := s
	if len(s.Themes) != 0 {
		cp.Themes = append([]string(nil), s.Themes...)
	}
	return cp
}

func cloneSource(s Source) Source { return s }

func cloneIdentity(i *Identity) *Identity {
	if i == nil {
		return nil
	}
	cp := *i
	return &cp
}

// Store provides an in-memory transactional store for the core domain.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(migrateSnapshot(snapshot))
}

// RulesEngine exposes the currently configured engine for integration points.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// NowFunc returns the time provider used by the in-memory store.
func (s *Store) NowFunc() func() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn
}

// SetNowFunc overrides the time provider, primarily for deterministic tests.
func (s *Store) SetNowFunc(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		s.nowFn = fn
	}
}

type transaction struct {
	store   *Store
	state   memoryState
	changes []Change
	now     time.Time
}

type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

// ListCoachees returns all coachees within the transaction snapshot.
func (v transactionView) ListCoachees() []Coachee {
	out := make([]Coachee, 0, len(v.state.coachees))
	for _, c := range v.state.coachees {
		out = append(out, cloneCoachee(c))
	}
	return out
}

// ListSessions returns all sessions within the transaction snapshot.
func (v transactionView) ListSessions() []Session {
	out := make([]Session, 0, len(v.state.sessions))
	for _, s := range v.state.sessions {
		out = append(out, cloneSession(s))
	}
	return out
}

// ListSources returns all sources within the transaction snapshot.
func (v transactionView) ListSources() []Source {
	out := make([]Source, 0, len(v.state.sources))
	for _, s := range v.state.sources {
		out = append(out, cloneSource(s))
	}
	return out
}

// FindCoachee retrieves a coachee by ID from the snapshot.
func (v transactionView) FindCoachee(id string) (Coachee, bool) {
	c, ok := v.state.coachees[id]
	if !ok {
		return Coachee{}, false
	}
	return cloneCoachee(c), true
}

// FindSession retrieves a session by ID from the snapshot.
func (v transactionView) FindSession(id string) (Session, bool) {
	s, ok := v.state.sessions[id]
	if !ok {
		return Session{}, false
	}
	return cloneSession(s), true
}

// FindSource retrieves a source by ID from the snapshot.
func (v transactionView) FindSource(id string) (Source, bool) {
	s, ok := v.state.sources[id]
	if !ok {
		return Source{}, false
	}
	return cloneSource(s), true
}

// RunInTransaction executes fn within a transactional copy of the store state.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	view := newTransactionView(&snapshot)
	return fn(view)
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

// FindCoachee exposes coachee lookup within the transaction scope.
func (tx *transaction) FindCoachee(id string) (Coachee, bool) {
	c, ok := tx.state.coachees[id]
	if !ok {
		return Coachee{}, false
	}
	return cloneCoachee(c), true
}

// FindSource exposes source lookup within the transaction scope.
func (tx *transaction) FindSource(id string) (Source, bool) {
	s, ok := tx.state.sources[id]
	if !ok {
		return Source{}, false
	}
	return cloneSource(s), true
}

// CreateCoachee stores a new coachee within the transaction.
func (tx *transaction) CreateCoachee(c Coachee) (Coachee, error) {
	if c.ID == "" {
		c.ID = tx.store.newID()
	}
	if _, exists := tx.state.coachees[c.ID]; exists {
		return Coachee{}, fmt.Errorf("coachee %q already exists", c.ID)
	}
	if c.Type == "" {
		return Coachee{}, errors.New("coachee requires a type")
	}
	c.CreatedAt = tx.now
	c.UpdatedAt = tx.now
	tx.state.coachees[c.ID] = cloneCoachee(c)
	tx.recordChange(Change{Entity: domain.EntityCoachee, Action: domain.ActionCreate, After: cloneCoachee(c)})
	return cloneCoachee(c), nil
}

// UpdateCoachee mutates a coachee using the provided mutator function.
func (tx *transaction) UpdateCoachee(id string, mutator func(*Coachee) error) (Coachee, error) {
	current, ok := tx.state.coachees[id]
	if !ok {
		return Coachee{}, fmt.Errorf("coachee %q not found", id)
	}
	before := cloneCoachee(current)
	if err := mutator(&current); err != nil {
		return Coachee{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.coachees[id] = cloneCoachee(current)
	tx.recordChange(Change{Entity: domain.EntityCoachee, Action: domain.ActionUpdate, Before: before, After: cloneCoachee(current)})
	return cloneCoachee(current), nil
}

// DeleteCoachee removes a coachee from the transaction state. Sessions that
// reference the coachee are left untouched; their denormalised type keeps
// them aggregable.
func (tx *transaction) DeleteCoachee(id string) error {
	current, ok := tx.state.coachees[id]
	if !ok {
		return fmt.Errorf("coachee %q not found", id)
	}
	delete(tx.state.coachees, id)
	tx.recordChange(Change{Entity: domain.EntityCoachee, Action: domain.ActionDelete, Before: cloneCoachee(current)})
	return nil
}

// CreateSession stores a new session.
func (tx *transaction) CreateSession(sess Session) (Session, error) {
	if sess.ID == "" {
		sess.ID = tx.store.newID()
	}
	if _, exists := tx.state.sessions[sess.ID]; exists {
		return Session{}, fmt.Errorf("session %q already exists", sess.ID)
	}
	if sess.CoacheeID == "" {
		return Session{}, errors.New("session requires a coachee id")
	}
	sess.CreatedAt = tx.now
	sess.UpdatedAt = tx.now
	tx.state.sessions[sess.ID] = cloneSession(sess)
	tx.recordChange(Change{Entity: domain.EntitySession, Action: domain.ActionCreate, After: cloneSession(sess)})
	return cloneSession(sess), nil
}

// UpdateSession mutates an existing session.
func (tx *transaction) UpdateSession(id string, mutator func(*Session) error) (Session, error) {
	current, ok := tx.state.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("session %q not found", id)
	}
	before := cloneSession(current)
	if err := mutator(&current); err != nil {
		return Session{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.sessions[id] = cloneSession(current)
	tx.recordChange(Change{Entity: domain.EntitySession, Action: domain.ActionUpdate, Before: before, After: cloneSession(current)})
	return cloneSession(current), nil
}

// DeleteSession removes a session from state.
func (tx *transaction) DeleteSession(id string) error {
	current, ok := tx.state.sessions[id]
	if !ok {
		return fmt.Errorf("session %q not found", id)
	}
	delete(tx.state.sessions, id)
	tx.recordChange(Change{Entity: domain.EntitySession, Action: domain.ActionDelete, Before: cloneSession(current)})
	return nil
}

// CreateSource stores a new referral source.
func (tx *transaction) CreateSource(src Source) (Source, error) {
	if src.ID == "" {
		src.ID = tx.store.newID()
	}
	if _, exists := tx.state.sources[src.ID]; exists {
		return Source{}, fmt.Errorf("source %q already exists", src.ID)
	}
	src.CreatedAt = tx.now
	src.UpdatedAt = tx.now
	tx.state.sources[src.ID] = cloneSource(src)
	tx.recordChange(Change{Entity: domain.EntitySource, Action: domain.ActionCreate, After: cloneSource(src)})
	return cloneSource(src), nil
}

// UpdateSource mutates an existing source.
func (tx *transaction) UpdateSource(id string, mutator func(*Source) error) (Source, error) {
	current, ok := tx.state.sources[id]
	if !ok {
		return Source{}, fmt.Errorf("source %q not found", id)
	}
	before := cloneSource(current)
	if err := mutator(&current); err != nil {
		return Source{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.sources[id] = cloneSource(current)
	tx.recordChange(Change{Entity: domain.EntitySource, Action: domain.ActionUpdate, Before: before, After: cloneSource(current)})
	return cloneSource(current), nil
}

// DeleteSource removes a source from state. Coachees keep their SourceID even
// when it no longer resolves.
func (tx *transaction) DeleteSource(id string) error {
	current, ok := tx.state.sources[id]
	if !ok {
		return fmt.Errorf("source %q not found", id)
	}
	delete(tx.state.sources, id)
	tx.recordChange(Change{Entity: domain.EntitySource, Action: domain.ActionDelete, Before: cloneSource(current)})
	return nil
}

// SetIdentity replaces the persisted signed-in identity. A nil identity
// signs the current user out.
func (tx *transaction) SetIdentity(identity *Identity) {
	tx.state.identity = cloneIdentity(identity)
}

// GetCoachee retrieves a coachee by ID.
func (s *Store) GetCoachee(id string) (Coachee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.coachees[id]
	if !ok {
		return Coachee{}, false
	}
	return cloneCoachee(c), true
}

// ListCoachees returns all coachees.
func (s *Store) ListCoachees() []Coachee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Coachee, 0, len(s.state.coachees))
	for _, c := range s.state.coachees {
		out = append(out, cloneCoachee(c))
	}
	return out
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.state.sessions[id]
	if !ok {
		return Session{}, false
	}
	return cloneSession(sess), true
}

// ListSessions returns all sessions.
func (s *Store) ListSessions() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Session, 0, len(s.state.sessions))
	for _, sess := range s.state.sessions {
		out = append(out, cloneSession(sess))
	}
	return out
}

// GetSource retrieves a source by ID.
func (s *Store) GetSource(id string) (Source, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.state.sources[id]
	if !ok {
		return Source{}, false
	}
	return cloneSource(src), true
}

// ListSources returns all sources.
func (s *Store) ListSources() []Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Source, 0, len(s.state.sources))
	for _, src := range s.state.sources {
		out = append(out, cloneSource(src))
	}
	return out
}

// CurrentIdentity reports the persisted signed-in identity, if any.
func (s *Store) CurrentIdentity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.identity == nil {
		return Identity{}, false
	}
	return *s.state.identity, true
}
