package hashing

// Reason identifies why a file could not be hashed. Reasons are recorded in
// the skip log and never participate in grouping.
type Reason string

const (
	ReasonMissing         Reason = "missing-file"
	ReasonUnreadable      Reason = "unreadable-file"
	ReasonZeroByte        Reason = "zero-byte-file"
	ReasonUnsupported     Reason = "unsupported-extension"
	ReasonNormalizeFailed Reason = "normalize-failed"
	ReasonNoStreams       Reason = "no-streams"
)

// Outcome is the result of hashing one file: either a comparable digest or a
// skip carrying a reason and optional diagnostic detail. The zero Outcome is
// a skip with no reason.
type Outcome struct {
	digest string
	reason Reason
	detail string
}

// FromDigest wraps a computed digest in an Outcome.
func FromDigest(digest string) Outcome {
	return Outcome{digest: digest}
}

// Skip builds a non-comparable Outcome for the given reason.
func Skip(reason Reason, detail string) Outcome {
	return Outcome{reason: reason, detail: detail}
}

// Comparable reports whether the outcome carries a digest usable for grouping.
func (o Outcome) Comparable() bool {
	return o.digest != ""
}

// Digest returns the digest, or the empty string for skips.
func (o Outcome) Digest() string {
	return o.digest
}

// Reason returns the skip reason, or the empty Reason for digests.
func (o Outcome) Reason() Reason {
	return o.reason
}

// Detail returns diagnostic detail attached to a skip.
func (o Outcome) Detail() string {
	return o.detail
}
