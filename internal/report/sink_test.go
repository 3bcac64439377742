package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"winnow/internal/group"
	"winnow/internal/logging"
	"winnow/internal/report"
)

func sampleReport(runID string) report.ScanReport {
	now := time.Now().UTC()
	return report.BuildReport(runID, "/media", now.Add(-time.Minute), now, 10, 2, []group.Group{
		{Hash: "h1", Members: []string{"/media/a.jpg", "/media/b.jpg"}, Reclaimable: 250},
	})
}

func TestBuildReportAggregates(t *testing.T) {
	r := sampleReport("run-1")
	if r.ActionableGroups != 1 || r.ReclaimableBytes != 250 {
		t.Fatalf("unexpected aggregates: %#v", r)
	}
	if len(r.Groups) != 1 {
		t.Fatalf("expected one group record, got %d", len(r.Groups))
	}
	record := r.Groups[0]
	if record.Keep != "/media/a.jpg" || record.MemberCount != 2 {
		t.Fatalf("unexpected group record: %#v", record)
	}
}

func TestWritePersistsReportAndStats(t *testing.T) {
	dir := t.TempDir()
	sink := report.NewSink(dir, logging.NewNop())

	if err := sink.Write(sampleReport("run-1")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var persisted report.ScanReport
	data, err := os.ReadFile(sink.ReportPath())
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("parse report: %v", err)
	}
	if persisted.RunID != "run-1" || persisted.FilesScanned != 10 {
		t.Fatalf("unexpected persisted report: %#v", persisted)
	}

	var stats report.Stats
	data, err = os.ReadFile(sink.StatsPath())
	if err != nil {
		t.Fatalf("read stats: %v", err)
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("parse stats: %v", err)
	}
	if stats.ReclaimableBytes != 250 || stats.FilesSkipped != 2 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
}

func TestWriteRotatesPriorReport(t *testing.T) {
	dir := t.TempDir()
	sink := report.NewSink(dir, logging.NewNop())

	if err := sink.Write(sampleReport("run-1")); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	if err := sink.Write(sampleReport("run-2")); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read report dir: %v", err)
	}
	var rotated []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "report-") && strings.HasSuffix(name, ".json") {
			rotated = append(rotated, name)
		}
	}
	if len(rotated) != 1 {
		t.Fatalf("expected one rotated report, got %v", rotated)
	}

	// Current report must be the newest run.
	var current report.ScanReport
	data, err := os.ReadFile(sink.ReportPath())
	if err != nil {
		t.Fatalf("read current report: %v", err)
	}
	if err := json.Unmarshal(data, &current); err != nil {
		t.Fatalf("parse current report: %v", err)
	}
	if current.RunID != "run-2" {
		t.Fatalf("expected run-2 in current report, got %s", current.RunID)
	}

	// The rotated copy still holds the prior run.
	var prior report.ScanReport
	data, err = os.ReadFile(filepath.Join(dir, rotated[0]))
	if err != nil {
		t.Fatalf("read rotated report: %v", err)
	}
	if err := json.Unmarshal(data, &prior); err != nil {
		t.Fatalf("parse rotated report: %v", err)
	}
	if prior.RunID != "run-1" {
		t.Fatalf("expected run-1 preserved, got %s", prior.RunID)
	}
}

func TestRotationWithinOneSecondPreservesEveryReport(t *testing.T) {
	dir := t.TempDir()
	sink := report.NewSink(dir, logging.NewNop())

	// Back-to-back writes land in the same rotation stamp.
	for _, runID := range []string{"run-1", "run-2", "run-3"} {
		if err := sink.Write(sampleReport(runID)); err != nil {
			t.Fatalf("Write %s failed: %v", runID, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read report dir: %v", err)
	}
	preserved := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "report-") || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read rotated report %s: %v", name, err)
		}
		var r report.ScanReport
		if err := json.Unmarshal(data, &r); err != nil {
			t.Fatalf("parse rotated report %s: %v", name, err)
		}
		preserved[r.RunID] = true
	}
	if len(preserved) != 2 || !preserved["run-1"] || !preserved["run-2"] {
		t.Fatalf("rotation lost a prior report, preserved: %v", preserved)
	}
}
