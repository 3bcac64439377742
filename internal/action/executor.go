package action

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"winnow/internal/fileutil"
	"winnow/internal/group"
	"winnow/internal/logging"
)

const (
	linkTempSuffix   = ".winnow-tmp"
	symlinkBakSuffix = ".winnow-bak"
)

// Summary tallies the outcome of applying a disposition.
type Summary struct {
	Applied int
	Failed  int
}

// Executor applies one disposition to duplicate members. TrashDir is only
// required for the relocate disposition; it is created on first use and
// shared across groups.
type Executor struct {
	Disposition Disposition
	TrashDir    string
	Logger      *slog.Logger
}

// Apply processes every duplicate member of every group. Failures are logged
// per member and counted; the loop always continues.
func (e *Executor) Apply(groups []group.Group) Summary {
	logger := logging.NewComponentLogger(e.Logger, "action")

	var summary Summary
	if e.Disposition == ReportOnly {
		return summary
	}

	for _, g := range groups {
		keep := g.Keep()
		for _, dup := range g.Duplicates() {
			if err := e.applyOne(keep, dup); err != nil {
				summary.Failed++
				logger.Error("disposition failed",
					logging.String(logging.FieldEventType, "action_failed"),
					logging.String("action", string(e.Disposition)),
					logging.String("keep", keep),
					logging.String("duplicate", dup),
					logging.Error(err))
				continue
			}
			summary.Applied++
			logger.Info("duplicate collapsed",
				logging.String("action", string(e.Disposition)),
				logging.String("keep", keep),
				logging.String("duplicate", dup))
		}
	}
	return summary
}

func (e *Executor) applyOne(keep, dup string) error {
	switch e.Disposition {
	case HardLink:
		return e.hardLink(keep, dup)
	case SymLink:
		return e.symLink(keep, dup)
	case Relocate:
		return e.relocate(dup)
	default:
		return fmt.Errorf("unsupported disposition %q", e.Disposition)
	}
}

// hardLink replaces dup with a hard link to keep. The link is created at a
// temporary name first and renamed over dup, so a failure at any step leaves
// dup resolving to its prior content — the path is never missing.
func (e *Executor) hardLink(keep, dup string) error {
	if sameInode(keep, dup) {
		return nil
	}

	tmp := dup + linkTempSuffix
	if err := os.Link(keep, tmp); err != nil {
		return fmt.Errorf("create link: %w", err)
	}
	if err := os.Rename(tmp, dup); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace duplicate: %w", err)
	}
	return nil
}

// symLink renames dup to a backup, symlinks keep at dup, and removes the
// backup only once the symlink exists. If symlink creation fails the backup
// is preserved and the error names it for manual recovery.
func (e *Executor) symLink(keep, dup string) error {
	bak := dup + symlinkBakSuffix
	if err := os.Rename(dup, bak); err != nil {
		return fmt.Errorf("back up duplicate: %w", err)
	}
	if err := os.Symlink(keep, dup); err != nil {
		return fmt.Errorf("create symlink (original preserved at %s): %w", bak, err)
	}
	if err := os.Remove(bak); err != nil {
		logging.NewComponentLogger(e.Logger, "action").Warn("backup removal failed",
			logging.String(logging.FieldEventType, "symlink_backup_remove_failed"),
			logging.String("backup", bak),
			logging.Error(err))
	}
	return nil
}

// relocate moves dup into the trash directory. Name collisions overwrite
// (last writer wins). Cross-device moves fall back to a verified copy; any
// failure leaves dup in place untouched.
func (e *Executor) relocate(dup string) error {
	if e.TrashDir == "" {
		return errors.New("trash directory not configured")
	}
	if err := os.MkdirAll(e.TrashDir, 0o755); err != nil {
		return fmt.Errorf("create trash directory: %w", err)
	}

	dest := filepath.Join(e.TrashDir, filepath.Base(dup))
	if err := os.Rename(dup, dest); err == nil {
		return nil
	} else if !isCrossDevice(err) {
		return fmt.Errorf("move to trash: %w", err)
	}

	if err := fileutil.CopyFileVerified(dup, dest); err != nil {
		return fmt.Errorf("copy to trash: %w", err)
	}
	if err := os.Remove(dup); err != nil {
		return fmt.Errorf("remove duplicate after copy: %w", err)
	}
	return nil
}

func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}

// sameInode reports whether two paths already name the same underlying file.
func sameInode(a, b string) bool {
	var sa, sb unix.Stat_t
	if unix.Stat(a, &sa) != nil || unix.Stat(b, &sb) != nil {
		return false
	}
	return sa.Dev == sb.Dev && sa.Ino == sb.Ino
}
