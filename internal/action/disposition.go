package action

import (
	"fmt"
	"strings"
)

// Disposition names the action applied to every non-keep group member.
type Disposition string

const (
	ReportOnly Disposition = "report-only"
	HardLink   Disposition = "hard-link"
	SymLink    Disposition = "sym-link"
	Relocate   Disposition = "relocate"
)

// ParseDisposition validates a user-supplied disposition name.
func ParseDisposition(value string) (Disposition, error) {
	switch Disposition(strings.ToLower(strings.TrimSpace(value))) {
	case ReportOnly:
		return ReportOnly, nil
	case HardLink:
		return HardLink, nil
	case SymLink:
		return SymLink, nil
	case Relocate:
		return Relocate, nil
	default:
		return "", fmt.Errorf("unknown action %q (expected report-only, hard-link, sym-link, or relocate)", value)
	}
}
