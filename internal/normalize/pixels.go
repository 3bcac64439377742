package normalize

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// PixelDistance compares two raster files pixel-by-pixel and returns
// ImageMagick's absolute-error count: the number of differing pixels, zero
// when the images are identical. Metadata differences do not affect the
// metric.
func PixelDistance(ctx context.Context, magick, pathA, pathB string) (float64, error) {
	cmd := commandContext(ctx, magick, "compare", "-metric", "AE", pathA, pathB, "null:") //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// compare exits 1 when the images differ; only exit 2 signals an error.
	err := cmd.Run()
	metric := strings.TrimSpace(stderr.String())
	if idx := strings.IndexByte(metric, ' '); idx > 0 {
		metric = metric[:idx]
	}
	if value, parseErr := strconv.ParseFloat(metric, 64); parseErr == nil {
		return value, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s compare: %w: %s", magick, err, stderrTail(stderr.String()))
	}
	return 0, fmt.Errorf("%s compare: unparseable metric %q", magick, metric)
}
