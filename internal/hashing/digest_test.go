package hashing_test

import (
	"strings"
	"testing"

	"winnow/internal/hashing"
)

func TestSumIsDeterministic(t *testing.T) {
	a := hashing.Sum([]byte("pixel data"))
	b := hashing.Sum([]byte("pixel data"))
	if a != b {
		t.Fatalf("same bytes produced different digests: %s vs %s", a, b)
	}
	if a == hashing.Sum([]byte("other data")) {
		t.Fatal("different bytes produced the same digest")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestDualStreamCombinesBothDigests(t *testing.T) {
	outcome := hashing.DualStream([]byte("video"), true, []byte("audio"), true)
	if !outcome.Comparable() {
		t.Fatalf("expected comparable outcome, got skip %s", outcome.Reason())
	}
	parts := strings.Split(outcome.Digest(), hashing.StreamSeparator)
	if len(parts) != 2 {
		t.Fatalf("expected two joined digests, got %q", outcome.Digest())
	}
	if parts[0] != hashing.Sum([]byte("video")) || parts[1] != hashing.Sum([]byte("audio")) {
		t.Fatalf("unexpected composite digest %q", outcome.Digest())
	}
}

func TestDualStreamAbsentStreamUsesLabel(t *testing.T) {
	noAudio := hashing.DualStream([]byte("video"), true, nil, false)
	if !strings.HasSuffix(noAudio.Digest(), hashing.StreamSeparator+hashing.LabelNoAudio) {
		t.Fatalf("expected NOAUDIO label, got %q", noAudio.Digest())
	}

	// "no audio" must not collide with "empty audio content".
	emptyAudio := hashing.DualStream([]byte("video"), true, []byte{}, true)
	if noAudio.Digest() == emptyAudio.Digest() {
		t.Fatal("absent audio and empty audio produced the same digest")
	}

	noVideo := hashing.DualStream(nil, false, []byte("audio"), true)
	if !strings.HasPrefix(noVideo.Digest(), hashing.LabelNoVideo+hashing.StreamSeparator) {
		t.Fatalf("expected NOVIDEO label, got %q", noVideo.Digest())
	}
}

func TestDualStreamNoStreamsSkips(t *testing.T) {
	outcome := hashing.DualStream(nil, false, nil, false)
	if outcome.Comparable() {
		t.Fatalf("expected skip, got digest %q", outcome.Digest())
	}
	if outcome.Reason() != hashing.ReasonNoStreams {
		t.Fatalf("expected no-streams reason, got %q", outcome.Reason())
	}
}

func TestSkipOutcomesAreNeverComparable(t *testing.T) {
	for _, reason := range []hashing.Reason{
		hashing.ReasonMissing,
		hashing.ReasonUnreadable,
		hashing.ReasonZeroByte,
		hashing.ReasonUnsupported,
		hashing.ReasonNormalizeFailed,
		hashing.ReasonNoStreams,
	} {
		outcome := hashing.Skip(reason, "detail")
		if outcome.Comparable() {
			t.Fatalf("skip %s reported comparable", reason)
		}
		if outcome.Digest() != "" {
			t.Fatalf("skip %s leaked digest %q", reason, outcome.Digest())
		}
	}
}
