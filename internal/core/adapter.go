package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"electroplan/pkg/domain"
)

// ErrNoRemote is returned by SaveNow when no remote store is configured, so
// callers can distinguish "offline by design" from a sync failure.
var ErrNoRemote = errors.New("no remote store configured")

// Adapter composes the two persistence backends: an always-on local sink that
// caches the collection durably, and an optional remote store that holds the
// authoritative copy when a session exists. The adapter owns no project state,
// only the mapping from local project ids to remote identifiers. Remote ids
// never enter snapshots, so undo cannot revert sync bookkeeping.
type Adapter struct {
	local  domain.Sink
	remote domain.RemoteStore
	log    zerolog.Logger
	newID  func() string

	mu        sync.Mutex
	remoteIDs map[string]int64
}

// NewAdapter wires the backends. Either may be nil: a nil local sink disables
// the durable cache, a nil remote store leaves the adapter fully offline.
func NewAdapter(local domain.Sink, remote domain.RemoteStore, log zerolog.Logger, newID func() string) *Adapter {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Adapter{
		local:     local,
		remote:    remote,
		log:       log,
		newID:     newID,
		remoteIDs: make(map[string]int64),
	}
}

// Load fetches the collection. The remote store, when configured and
// reachable, is the source of truth: its records replace whatever the local
// sink holds and the local cache is refreshed to match. A remote failure is
// logged and falls back to the local sink. Projects arriving from the remote
// carry no local identifier, so each gets a fresh one and the remote-id map is
// rebuilt.
func (a *Adapter) Load(ctx context.Context) ([]domain.Project, error) {
	if a.remote != nil {
		records, err := a.remote.List(ctx)
		if err == nil {
			projects := make([]domain.Project, 0, len(records))
			ids := make(map[string]int64, len(records))
			for _, rec := range records {
				p := rec.Project
				if p.ID == "" {
					p.ID = a.newID()
				}
				ids[p.ID] = rec.RemoteID
				projects = append(projects, p)
			}
			a.mu.Lock()
			a.remoteIDs = ids
			a.mu.Unlock()
			domain.NormalizeProjects(projects)
			a.WriteLocal(ctx, projects)
			return projects, nil
		}
		a.log.Warn().Err(err).Msg("remote load failed, falling back to local storage")
	}
	if a.local == nil {
		return []domain.Project{}, nil
	}
	projects, err := a.local.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load local collection: %w", err)
	}
	return domain.NormalizeProjects(projects), nil
}

// WriteLocal persists the collection to the local sink. The sink is a cache,
// not the system of record, so failures are logged and swallowed.
func (a *Adapter) WriteLocal(ctx context.Context, projects []domain.Project) {
	if a.local == nil {
		return
	}
	if err := a.local.Save(ctx, projects); err != nil {
		a.log.Warn().Err(err).Msg("local storage write failed")
	}
}

// SaveNow upserts every project against the remote store. Upserts run
// concurrently; the call succeeds only when all of them do. There is no
// rollback on partial failure: already-synced projects stay synced, and
// retrying is safe because each upsert always sends the full current state.
func (a *Adapter) SaveNow(ctx context.Context, projects []domain.Project) error {
	if a.remote == nil {
		return ErrNoRemote
	}
	errs := make([]error, len(projects))
	var wg sync.WaitGroup
	for i := range projects {
		wg.Add(1)
		go func(i int, p domain.Project) {
			defer wg.Done()
			var remoteID *int64
			a.mu.Lock()
			if id, ok := a.remoteIDs[p.ID]; ok {
				remoteID = &id
			}
			a.mu.Unlock()

			id, err := a.remote.Upsert(ctx, remoteID, p)
			if err != nil {
				errs[i] = fmt.Errorf("upsert project %s: %w", p.ID, err)
				return
			}
			a.mu.Lock()
			a.remoteIDs[p.ID] = id
			a.mu.Unlock()
		}(i, projects[i])
	}
	wg.Wait()
	return errors.Join(errs...)
}

// ForgetRemote drops the remote counterpart of a locally deleted project. The
// remote delete is best effort: a failure is logged, never surfaced, and the
// mapping is dropped regardless because the local collection is what the user
// sees.
func (a *Adapter) ForgetRemote(ctx context.Context, localID string) {
	a.mu.Lock()
	remoteID, ok := a.remoteIDs[localID]
	delete(a.remoteIDs, localID)
	a.mu.Unlock()
	if !ok || a.remote == nil {
		return
	}
	if err := a.remote.Delete(ctx, remoteID); err != nil {
		a.log.Warn().Err(err).Str("project_id", localID).Msg("remote delete failed")
	}
}

// RemoteID returns the cached remote identifier for a local project id.
func (a *Adapter) RemoteID(localID string) (int64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, ok := a.remoteIDs[localID]
	return id, ok
}

// HasRemote reports whether a remote store is configured.
func (a *Adapter) HasRemote() bool { return a.remote != nil }

// Close releases the local sink.
func (a *Adapter) Close() error {
	if a.local == nil {
		return nil
	}
	return a.local.Close()
}
