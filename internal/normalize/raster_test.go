package normalize

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// stubCommands routes tool invocations to shell scripts keyed by binary name,
// recording each call.
func stubCommands(t *testing.T, scripts map[string]string, calls *[]string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if calls != nil {
			*calls = append(*calls, name)
		}
		script, ok := scripts[name]
		if !ok {
			script = "exit 127"
		}
		return exec.CommandContext(ctx, "/bin/sh", "-c", script)
	}
	t.Cleanup(func() { commandContext = original })
}

func writeJPEG(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "photo.jpg")
	content := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, []byte("jpeg body")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write jpeg: %v", err)
	}
	return path
}

func TestRasterFirstStrategyShortCircuits(t *testing.T) {
	path := writeJPEG(t, t.TempDir())
	var calls []string
	stubCommands(t, map[string]string{
		"exiftool": "printf 'stripped pixels'",
	}, &calls)

	backend := NewRaster("exiftool", "magick")
	payload, err := backend.Normalize(context.Background(), path)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if string(payload.Data) != "stripped pixels" {
		t.Fatalf("unexpected payload %q", payload.Data)
	}
	if len(calls) != 1 || calls[0] != "exiftool" {
		t.Fatalf("expected exiftool only, got %v", calls)
	}
}

func TestRasterFallsBackToSniffedReencode(t *testing.T) {
	path := writeJPEG(t, t.TempDir())
	var calls []string
	stubCommands(t, map[string]string{
		"exiftool": "echo 'not a valid file' >&2; exit 1",
		"magick":   "printf 'ppm pixels'",
	}, &calls)

	backend := NewRaster("exiftool", "magick")
	payload, err := backend.Normalize(context.Background(), path)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if string(payload.Data) != "ppm pixels" {
		t.Fatalf("unexpected payload %q", payload.Data)
	}
	if len(calls) != 2 || calls[1] != "magick" {
		t.Fatalf("expected exiftool then magick, got %v", calls)
	}
}

func TestRasterExhaustedChainAccumulatesTrail(t *testing.T) {
	path := writeJPEG(t, t.TempDir())
	stubCommands(t, map[string]string{
		"exiftool": "echo 'strip failed' >&2; exit 1",
		"magick":   "echo 'decode failed' >&2; exit 1",
	}, nil)

	backend := NewRaster("exiftool", "magick")
	_, err := backend.Normalize(context.Background(), path)
	if err == nil {
		t.Fatal("expected failure when every strategy fails")
	}
	msg := err.Error()
	for _, fragment := range []string{"exiftool strip", "jpeg re-encode", "generic re-encode"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("diagnostic trail missing %q: %s", fragment, msg)
		}
	}
}

func TestSniffFormatDetectsRealEncoding(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name   string
		header []byte
		format string
	}{
		{"lying.png", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "jpeg"},
		{"real.png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, "png"},
		{"anim.jpg", []byte("GIF89a"), "gif"},
		{"scan.jpg", []byte("II*\x00rest"), "tiff"},
		{"pic.jpg", append([]byte("RIFF1234"), []byte("WEBP")...), "webp"},
		{"old.jpg", []byte("BMxxxx"), "bmp"},
	}
	for _, tc := range cases {
		path := filepath.Join(dir, tc.name)
		if err := os.WriteFile(path, tc.header, 0o644); err != nil {
			t.Fatalf("write %s: %v", tc.name, err)
		}
		format, err := sniffFormat(path)
		if err != nil {
			t.Errorf("sniffFormat(%s) failed: %v", tc.name, err)
			continue
		}
		if format != tc.format {
			t.Errorf("sniffFormat(%s) = %q, want %q", tc.name, format, tc.format)
		}
	}

	garbage := filepath.Join(dir, "garbage.jpg")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	if _, err := sniffFormat(garbage); err == nil {
		t.Fatal("expected error for unrecognized signature")
	}
}
