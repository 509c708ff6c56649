package reports

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"coachtrack/internal/analytics"
	"coachtrack/internal/blob"
	"coachtrack/internal/core"
	"coachtrack/pkg/domain"
)

// Worker renders report exports asynchronously. Records live in memory for
// the lifetime of the process; artifacts go to the blob store.
type Worker struct {
	store domain.PersistentStore
	blobs blob.Store
	audit core.AuditRecorder
	nowFn func() time.Time

	queue chan task
	mu    sync.RWMutex
	jobs  map[string]*Record

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type task struct {
	id      string
	request Request
}

// NewWorker constructs a report worker over the given persistent store and
// blob backend. A nil audit recorder disables audit entries.
func NewWorker(store domain.PersistentStore, blobs blob.Store, audit core.AuditRecorder) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		store:  store,
		blobs:  blobs,
		audit:  audit,
		nowFn:  func() time.Time { return time.Now().UTC() },
		queue:  make(chan task, 32),
		jobs:   make(map[string]*Record),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetNowFunc overrides the clock, for tests.
func (w *Worker) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		w.nowFn = fn
	}
}

// Start begins processing report requests.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Stop signals the worker to halt and waits for completion.
func (w *Worker) Stop(ctx context.Context) error {
	w.cancel()
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case t := <-w.queue:
			w.process(t)
		}
	}
}

// Enqueue schedules a report export and returns the queued record.
func (w *Worker) Enqueue(ctx context.Context, req Request) (Record, error) {
	formats := req.Formats
	if len(formats) == 0 {
		formats = []Format{FormatJSON, FormatCSV}
	}
	uniq := make([]Format, 0, len(formats))
	seen := make(map[Format]struct{})
	for _, f := range formats {
		if _, dup := seen[f]; dup {
			continue
		}
		if f != FormatJSON && f != FormatCSV {
			return Record{}, fmt.Errorf("unsupported report format %s", f)
		}
		uniq = append(uniq, f)
		seen[f] = struct{}{}
	}

	id := uuid.NewString()
	now := w.nowFn()
	record := Record{
		ID:          id,
		Params:      req.Params,
		Formats:     uniq,
		Status:      StatusQueued,
		RequestedBy: req.RequestedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	w.mu.Lock()
	w.jobs[id] = &record
	queued := record.copy()
	w.mu.Unlock()

	w.recordAudit(ctx, id, core.AuditStatusSuccess, "")

	select {
	case w.queue <- task{id: id, request: req}:
	default:
		return Record{}, fmt.Errorf("report queue full")
	}
	return queued, nil
}

// Get returns a snapshot of the report record.
func (w *Worker) Get(id string) (Record, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	record, ok := w.jobs[id]
	if !ok {
		return Record{}, false
	}
	return record.copy(), true
}

// List returns snapshots of all known records in no particular order.
func (w *Worker) List() []Record {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Record, 0, len(w.jobs))
	for _, record := range w.jobs {
		out = append(out, record.copy())
	}
	return out
}

func (w *Worker) process(t task) {
	w.updateStatus(t.id, StatusRunning, "")

	dataset := analytics.FromStore(w.store)
	dashboard := analytics.BuildDashboard(dataset, t.request.Params, w.nowFn())

	record, ok := w.Get(t.id)
	if !ok {
		return
	}
	artifacts := make([]Artifact, 0, len(record.Formats))
	for _, format := range record.Formats {
		payload, err := render(format, dataset, dashboard)
		if err != nil {
			w.fail(t.id, err.Error())
			return
		}
		artifact := Artifact{
			ID:          uuid.NewString(),
			Format:      format,
			ContentType: format.ContentType(),
			SizeBytes:   int64(len(payload)),
			CreatedAt:   w.nowFn(),
		}
		artifact.Key = fmt.Sprintf("reports/%s/%s.%s", t.id, artifact.ID, format)
		if w.blobs != nil {
			info, err := w.blobs.Put(w.ctx, artifact.Key, bytes.NewReader(payload), blob.PutOptions{
				ContentType: artifact.ContentType,
				Metadata:    map[string]string{"report": t.id, "format": string(format)},
			})
			if err != nil {
				w.fail(t.id, fmt.Sprintf("store artifact: %v", err))
				return
			}
			artifact.URL = info.URL
			if info.Size > 0 {
				artifact.SizeBytes = info.Size
			}
		}
		artifacts = append(artifacts, artifact)
	}
	w.complete(t.id, artifacts)
}

func (w *Worker) updateStatus(id string, status Status, message string) {
	now := w.nowFn()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = status
		record.Error = message
		record.UpdatedAt = now
	}
	w.mu.Unlock()
}

func (w *Worker) complete(id string, artifacts []Artifact) {
	now := w.nowFn()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = StatusSucceeded
		record.Error = ""
		record.Artifacts = artifacts
		record.UpdatedAt = now
		record.CompletedAt = &now
	}
	w.mu.Unlock()
	w.recordAudit(w.ctx, id, core.AuditStatusSuccess, "")
}

func (w *Worker) fail(id, reason string) {
	now := w.nowFn()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = StatusFailed
		record.Error = reason
		record.UpdatedAt = now
		record.CompletedAt = &now
	}
	w.mu.Unlock()
	w.recordAudit(w.ctx, id, core.AuditStatusError, reason)
}

func (w *Worker) recordAudit(ctx context.Context, id string, status core.AuditStatus, errMsg string) {
	if w.audit == nil {
		return
	}
	w.audit.Record(ctx, core.AuditEntry{
		Operation:  "report_export",
		Status:     status,
		EntityType: "report",
		EntityID:   id,
		Error:      errMsg,
		OccurredAt: w.nowFn(),
	})
}
