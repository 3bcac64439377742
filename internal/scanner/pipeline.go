package scanner

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"winnow/internal/cache"
	"winnow/internal/hashing"
	"winnow/internal/logging"
	"winnow/internal/media"
	"winnow/internal/normalize"
)

// Result pairs a file with its hashing outcome.
type Result struct {
	File    media.File
	Outcome hashing.Outcome
}

// Pipeline resolves one file to a hashing outcome. Cache may be nil, in which
// case every file is normalized from scratch. Cache write failures are
// non-fatal: the entry is simply recomputed on the next scan.
type Pipeline struct {
	Cache    *cache.Store
	Backends normalize.Registry
	Logger   *slog.Logger
}

// Process runs input checks, cache lookup, normalization, digest, and cache
// write-back for a single path. Every failure below the fatal tier maps to a
// skip outcome; Process itself never returns an error.
func (p *Pipeline) Process(ctx context.Context, path string) Result {
	logger := logging.NewComponentLogger(p.Logger, "scanner")

	abs, err := filepath.Abs(path)
	if err != nil {
		return Result{
			File:    media.File{Path: path},
			Outcome: hashing.Skip(hashing.ReasonMissing, err.Error()),
		}
	}

	file := media.File{Path: abs, Kind: media.KindOf(abs)}

	info, err := os.Stat(abs)
	if err != nil {
		reason := hashing.ReasonUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			reason = hashing.ReasonMissing
		}
		return Result{File: file, Outcome: hashing.Skip(reason, err.Error())}
	}
	file.Size = info.Size()
	file.ModTime = info.ModTime()

	if file.Size == 0 {
		return Result{File: file, Outcome: hashing.Skip(hashing.ReasonZeroByte, "")}
	}
	if file.Kind == media.KindUnknown {
		return Result{File: file, Outcome: hashing.Skip(hashing.ReasonUnsupported, filepath.Ext(abs))}
	}
	if fh, err := os.Open(abs); err != nil {
		return Result{File: file, Outcome: hashing.Skip(hashing.ReasonUnreadable, err.Error())}
	} else {
		fh.Close()
	}

	if p.Cache != nil {
		if hash, hit, err := p.Cache.Get(ctx, abs, file.ModTime, file.Size); err != nil {
			logger.Warn("cache lookup failed",
				logging.String(logging.FieldEventType, "cache_lookup_failed"),
				logging.String("path", abs),
				logging.Error(err))
		} else if hit {
			return Result{File: file, Outcome: hashing.FromDigest(hash)}
		}
	}

	backend, ok := p.Backends.For(file.Kind)
	if !ok {
		return Result{File: file, Outcome: hashing.Skip(hashing.ReasonUnsupported, string(file.Kind))}
	}

	payload, err := backend.Normalize(ctx, abs)
	if err != nil {
		return Result{File: file, Outcome: hashing.Skip(hashing.ReasonNormalizeFailed, err.Error())}
	}

	outcome := payloadOutcome(payload)

	if outcome.Comparable() && p.Cache != nil {
		if err := p.Cache.Put(ctx, abs, file.ModTime, file.Size, outcome.Digest()); err != nil {
			logger.Warn("cache write failed",
				logging.String(logging.FieldEventType, "cache_write_failed"),
				logging.String(logging.FieldErrorHint, "hash will be recomputed next scan"),
				logging.String("path", abs),
				logging.Error(err))
		}
	}

	return Result{File: file, Outcome: outcome}
}

func payloadOutcome(payload normalize.Payload) hashing.Outcome {
	if payload.Dual {
		return hashing.DualStream(payload.Video, payload.HasVideo, payload.Audio, payload.HasAudio)
	}
	return hashing.Single(payload.Data)
}
