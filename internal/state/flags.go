package state

import (
	"context"
	"sync"

	"github.com/five82/marquee/internal/flagapi"
)

const defaultPageSize = 20

// FlagStore holds the flag list, its pagination, and the current-flag
// slot for the admin console.
type FlagStore struct {
	mu  sync.RWMutex
	svc flagapi.Service

	flags   []flagapi.Flag
	current *flagapi.Flag
	loading bool
	err     string

	page       int
	size       int
	total      int
	totalPages int
}

// FlagSnapshot is an immutable view of the flag store.
type FlagSnapshot struct {
	Flags   []flagapi.Flag
	Current *flagapi.Flag
	Loading bool
	Err     string

	Page       int
	Size       int
	Total      int
	TotalPages int
}

// NewFlagStore builds a store backed by the given service.
func NewFlagStore(svc flagapi.Service) *FlagStore {
	return &FlagStore{svc: svc, size: defaultPageSize}
}

// List fetches the current page. On failure the previous items stay
// visible and only the error message changes.
func (s *FlagStore) List(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	page, size := s.page, s.size
	s.mu.Unlock()

	resp, err := s.svc.ListFlags(ctx, page, size)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.flags = resp.Flags
	s.page = resp.Page
	s.size = resp.Size
	s.total = resp.Total
	s.totalPages = resp.TotalPages
	return nil
}

// Get fetches one flag into the current-flag slot.
func (s *FlagStore) Get(ctx context.Context, name string) error {
	s.begin()
	flag, err := s.svc.GetFlag(ctx, name)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.current = &flag
	return nil
}

// Create adds a flag. On success the new entity is prepended to the
// in-memory list and the total grows by one; there is no re-fetch.
func (s *FlagStore) Create(ctx context.Context, req flagapi.CreateFlagRequest) error {
	s.begin()
	flag, err := s.svc.CreateFlag(ctx, req)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.flags = append([]flagapi.Flag{flag}, s.flags...)
	s.total++
	return nil
}

// Update patches a flag. On success the matching list entry is replaced
// by name, and so is the current slot when it holds the same flag.
func (s *FlagStore) Update(ctx context.Context, name string, req flagapi.UpdateFlagRequest) error {
	s.begin()
	flag, err := s.svc.UpdateFlag(ctx, name, req)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	for i := range s.flags {
		if s.flags[i].Name == flag.Name {
			s.flags[i] = flag
			break
		}
	}
	if s.current != nil && s.current.Name == flag.Name {
		s.current = &flag
	}
	return nil
}

// Delete removes a flag. On success the entry leaves the list, the
// total shrinks by one, and a matching current slot is cleared.
func (s *FlagStore) Delete(ctx context.Context, name string) error {
	s.begin()
	err := s.svc.DeleteFlag(ctx, name)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	kept := s.flags[:0:0]
	for _, f := range s.flags {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	s.flags = kept
	s.total--
	if s.current != nil && s.current.Name == name {
		s.current = nil
	}
	return nil
}

// SetPage moves to the given 0-indexed page, bounded by the server's
// reported page count.
func (s *FlagStore) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 0 {
		page = 0
	}
	if s.totalPages > 0 && page > s.totalPages-1 {
		page = s.totalPages - 1
	}
	s.page = page
}

// SetPageSize changes the page size and always resets the page to 0.
func (s *FlagStore) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size = size
	s.page = 0
}

// ClearCurrent empties the current-flag slot. Called on navigation away
// from the detail view.
func (s *FlagStore) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// ClearError drops the local error message.
func (s *FlagStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// Snapshot returns a copy of the store state.
func (s *FlagStore) Snapshot() FlagSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := FlagSnapshot{
		Loading:    s.loading,
		Err:        s.err,
		Page:       s.page,
		Size:       s.size,
		Total:      s.total,
		TotalPages: s.totalPages,
	}
	if len(s.flags) > 0 {
		snap.Flags = make([]flagapi.Flag, len(s.flags))
		copy(snap.Flags, s.flags)
	}
	if s.current != nil {
		current := *s.current
		snap.Current = &current
	}
	return snap
}

func (s *FlagStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}
