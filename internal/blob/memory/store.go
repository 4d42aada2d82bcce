// Package memory implements blob storage in process memory, for tests and
// ephemeral runs.
package memory

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"electroplan/internal/blob"
)

var _ blob.Store = (*Store)(nil)

type entry struct {
	data []byte
	info blob.Info
}

// Store holds blobs in a map. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New returns an empty store.
func New() *Store {
	return &Store{entries: make(map[string]entry)}
}

func (s *Store) Driver() blob.Driver { return blob.DriverMemory }

func (s *Store) Put(_ context.Context, key string, r io.Reader, opts blob.PutOptions) (blob.Info, error) {
	if strings.TrimSpace(key) == "" {
		return blob.Info{}, fmt.Errorf("empty key")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return blob.Info{}, err
	}
	sum := sha256.Sum256(data)
	info := blob.Info{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  opts.ContentType,
		ETag:         hex.EncodeToString(sum[:]),
		Metadata:     cloneMD(opts.Metadata),
		LastModified: time.Now().UTC(),
	}
	s.mu.Lock()
	s.entries[key] = entry{data: data, info: info}
	s.mu.Unlock()
	return info, nil
}

func (s *Store) Get(_ context.Context, key string) (blob.Info, io.ReadCloser, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return blob.Info{}, nil, fmt.Errorf("%w: %s", blob.ErrNotFound, key)
	}
	return e.info, io.NopCloser(bytes.NewReader(e.data)), nil
}

func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return false, nil
	}
	delete(s.entries, key)
	return true, nil
}

func (s *Store) List(_ context.Context, prefix string) ([]blob.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var infos []blob.Info
	for key, e := range s.entries {
		if prefix == "" || strings.HasPrefix(key, prefix) {
			infos = append(infos, e.info)
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func cloneMD(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
