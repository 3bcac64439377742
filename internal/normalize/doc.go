// Package normalize produces the canonical, metadata-free byte
// representation of a media file. Each media kind has a backend that shells
// out to an external tool; backends return raw payloads and leave hashing to
// the caller.
package normalize
