package domain

import "context"

// Sink is a durable local destination for the full project collection. The
// store writes through to a sink after every mutation; a sink is a cache, not
// the system of record, so write failures must be tolerable.
type Sink interface {
	// Save replaces the persisted collection with the given one.
	Save(ctx context.Context, projects []Project) error
	// Load returns the persisted collection, or an empty slice when nothing
	// has been saved yet.
	Load(ctx context.Context) ([]Project, error)
	// Close releases any underlying resources.
	Close() error
}

// RemoteRecord pairs a project with its identifier in the remote service.
type RemoteRecord struct {
	RemoteID int64
	Project  Project
}

// RemoteStore is the autosave API boundary. Implementations translate the
// project tree to the remote wire format. All calls require a session.
type RemoteStore interface {
	// List fetches every project owned by the current session.
	List(ctx context.Context) ([]RemoteRecord, error)
	// Upsert creates the project remotely when remoteID is nil, otherwise
	// updates it in place. Returns the remote identifier.
	Upsert(ctx context.Context, remoteID *int64, project Project) (int64, error)
	// Delete removes the remote record.
	Delete(ctx context.Context, remoteID int64) error
}
