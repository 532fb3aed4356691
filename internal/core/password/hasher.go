// Package password provides one-way hashing and verification of user
// passwords, backed by bcrypt.
package password

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is deliberately above bcrypt.DefaultCost; offline
	// brute force against a leaked hash is the threat model here.
	DefaultCost = 12

	defaultMaxConcurrent = 8
)

// Hasher hashes and verifies passwords. Both operations are CPU-bound and
// expensive at the configured cost, so they are gated by a bounded slot
// pool to keep a burst of logins from starving the rest of the server.
type Hasher struct {
	cost  int
	slots chan struct{}
}

// NewHasher builds a Hasher with the given bcrypt cost and concurrency
// bound. Out-of-range values fall back to DefaultCost and
// defaultMaxConcurrent respectively.
func NewHasher(cost, maxConcurrent int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	return &Hasher{cost: cost, slots: make(chan struct{}, maxConcurrent)}
}

// Hash produces a salted one-way hash of plaintext. Repeated calls with the
// same plaintext yield different hashes. Blocks while all slots are busy;
// returns the context error if the caller gives up first.
//
// bcrypt rejects inputs longer than 72 bytes; callers must enforce that
// limit at the API boundary so it surfaces as a validation failure rather
// than an error from here.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	select {
	case h.slots <- struct{}{}:
		defer func() { <-h.slots }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches the stored hash. The comparison
// is constant-time inside bcrypt. Any malformed stored value verifies as
// false rather than erroring, so callers cannot distinguish a corrupt hash
// from a wrong password. A context cancelled while waiting for a slot also
// reads as false: the check is abandoned and the caller's credential flow
// fails closed.
func (h *Hasher) Verify(ctx context.Context, plaintext, hashed string) bool {
	select {
	case h.slots <- struct{}{}:
		defer func() { <-h.slots }()
	case <-ctx.Done():
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
