package normalize

import (
	"context"

	"winnow/internal/config"
	"winnow/internal/media"
)

// Payload carries normalized bytes. Single-stream kinds fill Data; container
// kinds fill the per-stream fields and set Dual. An absent stream is not an
// error, it is reported through the HasVideo/HasAudio flags.
type Payload struct {
	Data []byte

	Dual     bool
	Video    []byte
	HasVideo bool
	Audio    []byte
	HasAudio bool
}

// SinglePayload wraps one buffer of normalized bytes.
func SinglePayload(data []byte) Payload {
	return Payload{Data: data}
}

// Backend turns a media file into its normalized payload. Implementations
// must be safe for concurrent use; every failure must describe which
// strategies were attempted.
type Backend interface {
	Normalize(ctx context.Context, path string) (Payload, error)
}

// Registry maps media kinds to their backends.
type Registry map[media.Kind]Backend

// NewRegistry builds the built-in backend set from configured tool binaries.
func NewRegistry(cfg *config.Config) Registry {
	return Registry{
		media.KindRaster:    NewRaster(cfg.Tools.Exiftool, cfg.Tools.Magick),
		media.KindRawSensor: NewRawSensor(cfg.Tools.Dcraw),
		media.KindContainer: NewContainer(cfg.Tools.FFmpeg, cfg.Tools.FFprobe),
	}
}

// For returns the backend registered for kind.
func (r Registry) For(kind media.Kind) (Backend, bool) {
	backend, ok := r[kind]
	return backend, ok
}
