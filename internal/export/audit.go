package export

import (
	"context"
	"sync"
	"time"
)

// AuditEntry records one export lifecycle event.
type AuditEntry struct {
	ID         string    `json:"id"`
	ExportID   string    `json:"export_id"`
	ProjectID  string    `json:"project_id"`
	Status     Status    `json:"status"`
	Error      string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditLogger records export audit entries.
type AuditLogger interface {
	Record(ctx context.Context, entry AuditEntry)
}

// MemoryAuditLog keeps entries in memory. Safe for concurrent use.
type MemoryAuditLog struct {
	mu      sync.Mutex
	entries []AuditEntry
}

// NewMemoryAuditLog returns an empty log.
func NewMemoryAuditLog() *MemoryAuditLog { return &MemoryAuditLog{} }

// Record appends an entry.
func (l *MemoryAuditLog) Record(_ context.Context, entry AuditEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// Entries returns a copy of the recorded entries in order.
func (l *MemoryAuditLog) Entries() []AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]AuditEntry(nil), l.entries...)
}
