package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"contentcoach/internal/domain/services"
)

// TokenDenylist remembers ID tokens revoked by logout until they expire.
// Tokens are stored as SHA-256 digests. A janitor goroutine drops entries
// once their expiry has passed.
type TokenDenylist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
	logger  *slog.Logger

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

var _ services.TokenRevoker = (*TokenDenylist)(nil)

// NewTokenDenylist starts a denylist whose janitor runs every interval.
// Callers must Close it.
func NewTokenDenylist(interval time.Duration, logger *slog.Logger) *TokenDenylist {
	d := &TokenDenylist{
		entries: make(map[string]time.Time),
		now:     time.Now,
		logger:  logger,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go d.janitor(interval)
	return d
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Revoke denies token until the given time
func (d *TokenDenylist) Revoke(token string, until time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[tokenDigest(token)] = until
}

// IsRevoked reports whether token was revoked and has not expired yet
func (d *TokenDenylist) IsRevoked(token string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	until, ok := d.entries[tokenDigest(token)]
	return ok && d.now().Before(until)
}

// Len returns the number of tracked tokens
func (d *TokenDenylist) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Sweep removes expired entries and returns how many were dropped
func (d *TokenDenylist) Sweep() int {
	now := d.now()
	d.mu.Lock()
	defer d.mu.Unlock()
	removed := 0
	for digest, until := range d.entries {
		if !now.Before(until) {
			delete(d.entries, digest)
			removed++
		}
	}
	return removed
}

func (d *TokenDenylist) janitor(interval time.Duration) {
	defer close(d.done)
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := d.Sweep(); n > 0 {
				d.logger.Debug("token denylist swept", "removed", n)
			}
		case <-d.stop:
			return
		}
	}
}

// Close stops the janitor and waits for it to exit
func (d *TokenDenylist) Close() error {
	d.once.Do(func() { close(d.stop) })
	<-d.done
	return nil
}
