// Package core implements the versioned collection store: the live project
// tree, its bounded undo/redo history, and the write-through persistence
// pipeline. The store is the sole owner of the live tree; history and
// persistence only ever see deep copies.
package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"electroplan/internal/catalog"
	"electroplan/pkg/domain"
)

// ErrStatusTransition is returned when a project status update would move
// backward in the draft -> in_progress -> completed lifecycle.
var ErrStatusTransition = errors.New("status transition not allowed")

// Options configures a Store.
type Options struct {
	Catalog     *catalog.Catalog
	Persistence *Adapter
	Logger      zerolog.Logger
	Metrics     *Metrics

	// HistoryCapacity bounds the undo log; zero means DefaultHistoryCapacity.
	HistoryCapacity int

	// Now and NewID exist for tests; nil picks time.Now (UTC) and uuid.
	Now   func() time.Time
	NewID func() string
}

// Store owns the live project collection. All operations are safe for
// concurrent use; a single mutex serializes them, which is plenty for an
// event-driven caller.
type Store struct {
	catalog *catalog.Catalog
	persist *Adapter
	log     zerolog.Logger
	metrics *Metrics
	nowFn   func() time.Time
	newID   func() string

	mu        sync.Mutex
	projects  []domain.Project
	currentID string
	history   *History
}

// NewStore loads the collection through the persistence adapter and seeds the
// history with it. The catalog is required; everything else has a default.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	if opts.Catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if opts.Persistence == nil {
		opts.Persistence = NewAdapter(nil, nil, opts.Logger, opts.NewID)
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	s := &Store{
		catalog: opts.Catalog,
		persist: opts.Persistence,
		log:     opts.Logger,
		metrics: opts.Metrics,
		nowFn:   opts.Now,
		newID:   opts.NewID,
	}

	projects, err := s.persist.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.projects = projects
	s.history = NewHistory(opts.HistoryCapacity, projects)
	s.metrics.setHistoryDepth(s.history.Len())
	s.log.Info().Int("projects", len(projects)).Msg("collection loaded")
	return s, nil
}

// Projects returns a deep copy of the collection.
func (s *Store) Projects() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneProjects(s.projects)
}

// Project returns a deep copy of one project.
func (s *Store) Project(id string) (domain.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := domain.FindProject(s.projects, id)
	if idx < 0 {
		return domain.Project{}, false
	}
	return domain.CloneProject(s.projects[idx]), true
}

// CurrentProject returns a deep copy of the active project, if one is set.
func (s *Store) CurrentProject() (domain.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := domain.FindProject(s.projects, s.currentID)
	if idx < 0 {
		return domain.Project{}, false
	}
	return domain.CloneProject(s.projects[idx]), true
}

// SetCurrentProject marks a project as active. Unknown ids clear the
// selection and report false.
func (s *Store) SetCurrentProject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if domain.FindProject(s.projects, id) < 0 {
		s.currentID = ""
		return false
	}
	s.currentID = id
	return true
}

// CanUndo reports whether an undo target exists.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether a redo target exists.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// Undo replaces the live collection with the previous snapshot. The active
// project is re-resolved by id, since objects are never shared between
// snapshots and the project may not exist in the restored one. Reports false
// at the history boundary.
func (s *Store) Undo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(ctx, snapshot)
	s.metrics.observeUndo()
	return true
}

// Redo replaces the live collection with the next snapshot. Reports false at
// the history boundary.
func (s *Store) Redo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(ctx, snapshot)
	s.metrics.observeRedo()
	return true
}

func (s *Store) restore(ctx context.Context, snapshot []domain.Project) {
	s.projects = snapshot
	if s.currentID != "" && domain.FindProject(s.projects, s.currentID) < 0 {
		s.currentID = ""
	}
	s.persist.WriteLocal(ctx, domain.CloneProjects(s.projects))
}

// SaveNow pushes the full collection to the remote store. The snapshot is
// taken under the lock, but the network fan-out runs without it so mutations
// are not blocked behind remote latency.
func (s *Store) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	snapshot := domain.CloneProjects(s.projects)
	s.mu.Unlock()

	start := time.Now()
	err := s.persist.SaveNow(ctx, snapshot)
	s.metrics.observeSave(time.Since(start), err)
	if err != nil {
		s.log.Error().Err(err).Msg("remote save failed")
	}
	return err
}

// Close releases the persistence backends.
func (s *Store) Close() error {
	return s.persist.Close()
}

// commit records a completed mutation: snapshot to history, then write-through
// to local storage. Callers hold the lock.
func (s *Store) commit(ctx context.Context, op string) {
	s.history.Push(s.projects)
	s.metrics.observeMutation(op)
	s.metrics.setHistoryDepth(s.history.Len())
	s.persist.WriteLocal(ctx, domain.CloneProjects(s.projects))
	s.log.Debug().Str("op", op).Msg("mutation committed")
}
