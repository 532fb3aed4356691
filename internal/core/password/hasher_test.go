package password

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *Hasher {
	// MinCost keeps the tests fast; production cost is configured elsewhere.
	return NewHasher(bcrypt.MinCost, 2)
}

func TestHasher_RoundTrip(t *testing.T) {
	h := newTestHasher()

	hash, err := h.Hash(context.Background(), "pw123456")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "pw123456" {
		t.Fatalf("hash equals plaintext")
	}
	if !h.Verify(context.Background(), "pw123456", hash) {
		t.Fatalf("Verify rejected the original password")
	}
}

func TestHasher_Salted(t *testing.T) {
	h := newTestHasher()

	h1, err := h.Hash(context.Background(), "same-password")
	if err != nil {
		t.Fatalf("first Hash: %v", err)
	}
	h2, err := h.Hash(context.Background(), "same-password")
	if err != nil {
		t.Fatalf("second Hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected different hashes for repeated input, got identical values")
	}
	if !h.Verify(context.Background(), "same-password", h1) || !h.Verify(context.Background(), "same-password", h2) {
		t.Fatalf("Verify failed against one of the salted hashes")
	}
}

func TestHasher_WrongPassword(t *testing.T) {
	h := newTestHasher()

	hash, err := h.Hash(context.Background(), "correct-horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h.Verify(context.Background(), "battery-staple", hash) {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestHasher_MalformedHash(t *testing.T) {
	h := newTestHasher()

	for _, stored := range []string{"", "not-a-bcrypt-hash", "$2a$xx$garbage"} {
		if h.Verify(context.Background(), "anything", stored) {
			t.Fatalf("Verify accepted malformed hash %q", stored)
		}
	}
}

// bcrypt caps input at 72 bytes; the HTTP boundary enforces the limit, and
// this pins the behavior that boundary exists to guard.
func TestHasher_LongPassword(t *testing.T) {
	h := newTestHasher()
	long := strings.Repeat("a", 100)

	if _, err := h.Hash(context.Background(), long); err == nil {
		t.Fatalf("expected error for %d-byte password, got nil", len(long))
	}

	hash, err := h.Hash(context.Background(), "pw123456")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h.Verify(context.Background(), long, hash) {
		t.Fatalf("Verify accepted an over-length password")
	}
}

func TestHasher_CancelledContext(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)

	// Occupy the only slot so Hash has to wait, then cancel.
	h.slots <- struct{}{}
	defer func() { <-h.slots }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Hash(ctx, "pw"); err == nil {
		t.Fatalf("expected context error, got nil")
	}
	if h.Verify(ctx, "pw", "whatever") {
		t.Fatalf("Verify should report false when the context is done")
	}
}

func TestNewHasher_CostFallback(t *testing.T) {
	h := NewHasher(100, 0)
	if h.cost != DefaultCost {
		t.Fatalf("expected fallback to DefaultCost, got %d", h.cost)
	}
	if cap(h.slots) != defaultMaxConcurrent {
		t.Fatalf("expected default concurrency %d, got %d", defaultMaxConcurrent, cap(h.slots))
	}
}
