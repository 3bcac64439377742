// Package deps verifies the external normalization tools winnow shells out
// to. A missing required tool is a fatal, before-any-file error.
package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"winnow/internal/config"
)

// ErrMissingBinary indicates at least one required tool is absent.
var ErrMissingBinary = errors.New("required tool missing")

// Requirement defines an external binary winnow relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Required lists the tools every scan needs, using configured overrides.
func Required(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "ExifTool", Command: cfg.Tools.Exiftool, Description: "Strips raster metadata"},
		{Name: "ImageMagick", Command: cfg.Tools.Magick, Description: "Lossless raster re-encode fallback and pixel compare"},
		{Name: "dcraw", Command: cfg.Tools.Dcraw, Description: "Extracts raw sensor data"},
		{Name: "FFmpeg", Command: cfg.Tools.FFmpeg, Description: "Demuxes container streams"},
		{Name: "FFprobe", Command: cfg.Tools.FFprobe, Description: "Detects container stream presence"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Verify fails fast when any required tool is unavailable.
func Verify(cfg *config.Config) error {
	var missing []string
	for _, status := range CheckBinaries(Required(cfg)) {
		if !status.Available {
			missing = append(missing, fmt.Sprintf("%s (%s)", status.Name, status.Detail))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingBinary, strings.Join(missing, ", "))
	}
	return nil
}
