package normalize

import (
	"context"
	"fmt"
	"strings"
)

// Container normalizes audio/video containers by demuxing the first video
// stream and the first audio stream independently, each losslessly
// codec-copied into a NUT container on stdout. NUT output is deterministic
// for identical input streams and carries none of the source mux's metadata.
// A missing stream is not a failure; it is reported via the payload flags.
type Container struct {
	ffmpeg  string
	ffprobe string
}

// NewContainer builds the container backend over the given tool binaries.
func NewContainer(ffmpeg, ffprobe string) *Container {
	return &Container{ffmpeg: ffmpeg, ffprobe: ffprobe}
}

func (c *Container) Normalize(ctx context.Context, path string) (Payload, error) {
	hasVideo, err := c.hasStream(ctx, path, "v")
	if err != nil {
		return Payload{}, fmt.Errorf("probe video stream: %w", err)
	}
	hasAudio, err := c.hasStream(ctx, path, "a")
	if err != nil {
		return Payload{}, fmt.Errorf("probe audio stream: %w", err)
	}

	payload := Payload{Dual: true, HasVideo: hasVideo, HasAudio: hasAudio}

	if hasVideo {
		payload.Video, err = c.demux(ctx, path, "0:v:0")
		if err != nil {
			return Payload{}, fmt.Errorf("demux video stream: %w", err)
		}
	}
	if hasAudio {
		payload.Audio, err = c.demux(ctx, path, "0:a:0")
		if err != nil {
			return Payload{}, fmt.Errorf("demux audio stream: %w", err)
		}
	}
	return payload, nil
}

func (c *Container) hasStream(ctx context.Context, path, streamType string) (bool, error) {
	out, err := runCapture(ctx, c.ffprobe,
		"-v", "error",
		"-select_streams", streamType+":0",
		"-show_entries", "stream=index",
		"-of", "csv=p=0",
		path)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(out)) != "", nil
}

func (c *Container) demux(ctx context.Context, path, mapSpec string) ([]byte, error) {
	return runCapture(ctx, c.ffmpeg,
		"-v", "error",
		"-nostdin",
		"-i", path,
		"-map", mapSpec,
		"-c", "copy",
		"-f", "nut",
		"-")
}
