package memory

import (
	"context"
	"sync"
	"time"
)

// Revoker is the in-process token deny list used when Redis is not configured.
// Entries are dropped lazily once their expiry passes.
type Revoker struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewRevoker returns an empty deny list that is lost on restart.
func NewRevoker() *Revoker {
	return &Revoker{entries: make(map[string]time.Time), now: time.Now}
}

func (r *Revoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[tokenID] = until
	r.sweep()
	return nil
}

func (r *Revoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !r.now().Before(until) {
		delete(r.entries, tokenID)
		return false, nil
	}
	return true, nil
}

func (r *Revoker) sweep() {
	now := r.now()
	for id, until := range r.entries {
		if !now.Before(until) {
			delete(r.entries, id)
		}
	}
}
