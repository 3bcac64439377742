package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"winnow/internal/fileutil"
	"winnow/internal/group"
	"winnow/internal/logging"
)

const (
	reportFileName = "report.json"
	statsFileName  = "stats.json"
	rotateStamp    = "20060102-150405"
)

// GroupRecord is one duplicate group as persisted in the report.
type GroupRecord struct {
	Hash             string   `json:"hash"`
	MemberCount      int      `json:"member_count"`
	Keep             string   `json:"keep"`
	Members          []string `json:"members"`
	ReclaimableBytes int64    `json:"reclaimable_bytes"`
}

// ScanReport is the full structured result of one scan.
type ScanReport struct {
	RunID            string        `json:"run_id"`
	Root             string        `json:"root"`
	StartedAt        time.Time     `json:"started_at"`
	FinishedAt       time.Time     `json:"finished_at"`
	FilesScanned     int           `json:"files_scanned"`
	FilesSkipped     int           `json:"files_skipped"`
	ActionableGroups int           `json:"actionable_groups"`
	ReclaimableBytes int64         `json:"reclaimable_bytes"`
	Groups           []GroupRecord `json:"groups"`
}

// Stats is the aggregate summary written alongside the report.
type Stats struct {
	RunID            string    `json:"run_id"`
	GeneratedAt      time.Time `json:"generated_at"`
	FilesScanned     int       `json:"files_scanned"`
	FilesSkipped     int       `json:"files_skipped"`
	ActionableGroups int       `json:"actionable_groups"`
	ReclaimableBytes int64     `json:"reclaimable_bytes"`
}

// BuildReport assembles the persisted report from scan state.
func BuildReport(runID, root string, started, finished time.Time, scanned, skipped int, groups []group.Group) ScanReport {
	records := make([]GroupRecord, 0, len(groups))
	for _, g := range groups {
		records = append(records, GroupRecord{
			Hash:             g.Hash,
			MemberCount:      len(g.Members),
			Keep:             g.Keep(),
			Members:          g.Members,
			ReclaimableBytes: g.Reclaimable,
		})
	}
	return ScanReport{
		RunID:            runID,
		Root:             root,
		StartedAt:        started,
		FinishedAt:       finished,
		FilesScanned:     scanned,
		FilesSkipped:     skipped,
		ActionableGroups: len(groups),
		ReclaimableBytes: group.TotalReclaimable(groups),
		Groups:           records,
	}
}

// StatsFrom derives the summary from a report.
func StatsFrom(r ScanReport) Stats {
	return Stats{
		RunID:            r.RunID,
		GeneratedAt:      r.FinishedAt,
		FilesScanned:     r.FilesScanned,
		FilesSkipped:     r.FilesSkipped,
		ActionableGroups: r.ActionableGroups,
		ReclaimableBytes: r.ReclaimableBytes,
	}
}

// Sink writes reports under one directory.
type Sink struct {
	dir    string
	logger *slog.Logger
}

// NewSink creates a sink rooted at dir.
func NewSink(dir string, logger *slog.Logger) *Sink {
	return &Sink{dir: dir, logger: logging.NewComponentLogger(logger, "report")}
}

// ReportPath returns where the current report lives.
func (s *Sink) ReportPath() string {
	return filepath.Join(s.dir, reportFileName)
}

// StatsPath returns where the current stats summary lives.
func (s *Sink) StatsPath() string {
	return filepath.Join(s.dir, statsFileName)
}

// Write rotates any prior report and stats files, then writes the new ones
// atomically.
func (s *Sink) Write(r ScanReport) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	stamp := time.Now().UTC().Format(rotateStamp)
	for _, path := range []string{s.ReportPath(), s.StatsPath()} {
		if err := rotate(path, stamp); err != nil {
			return err
		}
	}

	reportData, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.ReportPath(), reportData, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	statsData, err := json.MarshalIndent(StatsFrom(r), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.StatsPath(), statsData, 0o644); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}

	s.logger.Info("scan report written",
		logging.String(logging.FieldRunID, r.RunID),
		logging.String("path", s.ReportPath()),
		logging.Int("groups", r.ActionableGroups))
	return nil
}

// rotate renames path to path-<stamp><ext> when it exists.
func rotate(path, stamp string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat prior report: %w", err)
	}

	ext := filepath.Ext(path)
	base := path[:len(path)-len(ext)]
	rotated := fmt.Sprintf("%s-%s%s", base, stamp, ext)
	// Same-second rotations get a numeric suffix; a rotated copy is never
	// overwritten.
	for n := 2; ; n++ {
		if _, err := os.Stat(rotated); err != nil {
			break
		}
		rotated = fmt.Sprintf("%s-%s.%d%s", base, stamp, n, ext)
	}
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate prior report: %w", err)
	}
	return nil
}
