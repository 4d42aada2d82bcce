// Package export renders project summaries to blob storage asynchronously.
// Each request produces one artifact per format, an audit trail, and a
// queryable job record.
package export

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"electroplan/internal/blob"
	"electroplan/internal/catalog"
	"electroplan/pkg/domain"
)

// Status describes the lifecycle stage of an export request.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Artifact captures one stored export output.
type Artifact struct {
	Key         string    `json:"key"`
	Format      Format    `json:"format"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	ETag        string    `json:"etag,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Record tracks an export request and its artifacts.
type Record struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Formats     []Format   `json:"formats"`
	Status      Status     `json:"status"`
	Error       string     `json:"error,omitempty"`
	Artifacts   []Artifact `json:"artifacts,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Input is an enqueue request.
type Input struct {
	ProjectID string
	Formats   []Format
}

// ProjectSource resolves a project by id at render time, so the export sees
// the state current when the job runs, not when it was queued.
type ProjectSource interface {
	Project(id string) (domain.Project, bool)
}

// Worker renders exports from a queue, one at a time.
type Worker struct {
	source  ProjectSource
	catalog *catalog.Catalog
	store   blob.Store
	audit   AuditLogger
	log     zerolog.Logger
	nowFn   func() time.Time
	newID   func() string

	queue chan string
	mu    sync.RWMutex
	jobs  map[string]*Record

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorker constructs a worker. Source, catalog, and store are required; a
// nil audit logger records nothing.
func NewWorker(source ProjectSource, cat *catalog.Catalog, store blob.Store, audit AuditLogger, log zerolog.Logger) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		source:  source,
		catalog: cat,
		store:   store,
		audit:   audit,
		log:     log,
		nowFn:   func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
		queue:   make(chan string, 32),
		jobs:    make(map[string]*Record),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins processing queued exports.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Stop signals the worker to halt and waits for the in-flight job, if any.
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

// Enqueue schedules an export and returns the queued record. The project must
// exist at enqueue time; it may still vanish before the job runs, which fails
// the job rather than the enqueue.
func (w *Worker) Enqueue(ctx context.Context, input Input) (Record, error) {
	if _, ok := w.source.Project(input.ProjectID); !ok {
		return Record{}, fmt.Errorf("project %s not found", input.ProjectID)
	}
	formats := input.Formats
	if len(formats) == 0 {
		formats = []Format{FormatJSON, FormatCSV}
	}
	for _, f := range formats {
		if _, ok := contentTypes[f]; !ok {
			return Record{}, fmt.Errorf("unsupported export format %q", f)
		}
	}

	now := w.nowFn()
	record := Record{
		ID:        w.newID(),
		ProjectID: input.ProjectID,
		Formats:   append([]Format(nil), formats...),
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	w.mu.Lock()
	stored := record
	w.jobs[record.ID] = &stored
	w.mu.Unlock()
	w.recordAudit(ctx, record.ID, input.ProjectID, StatusQueued, "")

	select {
	case w.queue <- record.ID:
	case <-w.ctx.Done():
		return Record{}, fmt.Errorf("export worker stopped")
	}
	return record, nil
}

// Get returns a copy of the job record.
func (w *Worker) Get(id string) (Record, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	job, ok := w.jobs[id]
	if !ok {
		return Record{}, false
	}
	return cloneRecord(*job), true
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case id := <-w.queue:
			w.process(id)
		}
	}
}

func (w *Worker) process(id string) {
	job, ok := w.Get(id)
	if !ok {
		return
	}
	w.setStatus(id, StatusRunning, "", nil)
	w.recordAudit(w.ctx, id, job.ProjectID, StatusRunning, "")

	project, ok := w.source.Project(job.ProjectID)
	if !ok {
		w.fail(id, job.ProjectID, fmt.Sprintf("project %s no longer exists", job.ProjectID))
		return
	}

	summary := buildSummary(project, w.catalog, w.nowFn())
	artifacts := make([]Artifact, 0, len(job.Formats))
	for _, format := range job.Formats {
		payload, err := renderSummary(summary, format)
		if err != nil {
			w.fail(id, job.ProjectID, err.Error())
			return
		}
		key := fmt.Sprintf("exports/%s/%s.%s", job.ProjectID, id, format)
		info, err := w.store.Put(w.ctx, key, bytes.NewReader(payload), blob.PutOptions{
			ContentType: contentTypes[format],
			Metadata:    map[string]string{"project_id": job.ProjectID, "export_id": id},
		})
		if err != nil {
			w.fail(id, job.ProjectID, fmt.Sprintf("store %s: %v", key, err))
			return
		}
		artifacts = append(artifacts, Artifact{
			Key:         info.Key,
			Format:      format,
			ContentType: info.ContentType,
			SizeBytes:   info.Size,
			ETag:        info.ETag,
			CreatedAt:   info.LastModified,
		})
	}

	w.setStatus(id, StatusSucceeded, "", artifacts)
	w.recordAudit(w.ctx, id, job.ProjectID, StatusSucceeded, "")
	w.log.Info().Str("export_id", id).Str("project_id", job.ProjectID).Int("artifacts", len(artifacts)).Msg("export completed")
}

func (w *Worker) fail(id, projectID, msg string) {
	w.setStatus(id, StatusFailed, msg, nil)
	w.recordAudit(w.ctx, id, projectID, StatusFailed, msg)
	w.log.Warn().Str("export_id", id).Str("project_id", projectID).Str("error", msg).Msg("export failed")
}

func (w *Worker) setStatus(id string, status Status, errMsg string, artifacts []Artifact) {
	w.mu.Lock()
	defer w.mu.Unlock()
	job, ok := w.jobs[id]
	if !ok {
		return
	}
	now := w.nowFn()
	job.Status = status
	job.Error = errMsg
	job.UpdatedAt = now
	if artifacts != nil {
		job.Artifacts = artifacts
	}
	if status == StatusSucceeded || status == StatusFailed {
		job.CompletedAt = &now
	}
}

func (w *Worker) recordAudit(ctx context.Context, exportID, projectID string, status Status, errMsg string) {
	if w.audit == nil {
		return
	}
	w.audit.Record(ctx, AuditEntry{
		ID:         w.newID(),
		ExportID:   exportID,
		ProjectID:  projectID,
		Status:     status,
		Error:      errMsg,
		OccurredAt: w.nowFn(),
	})
}

func cloneRecord(r Record) Record {
	cp := r
	cp.Formats = append([]Format(nil), r.Formats...)
	cp.Artifacts = append([]Artifact(nil), r.Artifacts...)
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		cp.CompletedAt = &t
	}
	return cp
}
