package testsupport

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"winnow/internal/normalize"
)

// FakeBackend returns canned payloads keyed by base filename and counts
// invocations, so tests can assert cache hits prevented normalization.
type FakeBackend struct {
	// Payloads maps base filename to normalized bytes. Files absent from the
	// map fail normalization.
	Payloads map[string][]byte

	calls atomic.Int64
}

// Normalize implements normalize.Backend.
func (f *FakeBackend) Normalize(_ context.Context, path string) (normalize.Payload, error) {
	f.calls.Add(1)
	payload, ok := f.Payloads[filepath.Base(path)]
	if !ok {
		return normalize.Payload{}, fmt.Errorf("fake backend: no payload for %s", filepath.Base(path))
	}
	return normalize.SinglePayload(payload), nil
}

// Calls reports how many times Normalize ran.
func (f *FakeBackend) Calls() int64 {
	return f.calls.Load()
}

var _ normalize.Backend = (*FakeBackend)(nil)
