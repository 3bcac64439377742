package action_test

import (
	"os"
	"path/filepath"
	"testing"

	"winnow/internal/action"
	"winnow/internal/group"
	"winnow/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func makeGroup(t *testing.T, dir string, names ...string) group.Group {
	t.Helper()
	members := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		writeFile(t, path, "shared content")
		members = append(members, path)
	}
	return group.Group{Hash: "h", Members: members}
}

func TestReportOnlyNeverMutates(t *testing.T) {
	dir := t.TempDir()
	g := makeGroup(t, dir, "a.jpg", "b.jpg")

	executor := &action.Executor{Disposition: action.ReportOnly, Logger: logging.NewNop()}
	summary := executor.Apply([]group.Group{g})
	if summary.Applied != 0 || summary.Failed != 0 {
		t.Fatalf("report-only must not act: %#v", summary)
	}

	for _, member := range g.Members {
		info, err := os.Lstat(member)
		if err != nil {
			t.Fatalf("member vanished: %v", err)
		}
		if !info.Mode().IsRegular() {
			t.Fatalf("member mutated: %s is %v", member, info.Mode())
		}
	}
}

func TestHardLinkReplacesDuplicates(t *testing.T) {
	dir := t.TempDir()
	g := makeGroup(t, dir, "a.jpg", "b.jpg", "c.jpg")

	executor := &action.Executor{Disposition: action.HardLink, Logger: logging.NewNop()}
	summary := executor.Apply([]group.Group{g})
	if summary.Applied != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %#v", summary)
	}

	keepInfo, err := os.Stat(g.Keep())
	if err != nil {
		t.Fatalf("stat keep: %v", err)
	}
	for _, dup := range g.Duplicates() {
		dupInfo, err := os.Stat(dup)
		if err != nil {
			t.Fatalf("duplicate path missing after hard-link: %v", err)
		}
		if !os.SameFile(keepInfo, dupInfo) {
			t.Fatalf("%s does not share keep's inode", dup)
		}
	}

	// Re-running is a no-op for already-linked members.
	again := executor.Apply([]group.Group{g})
	if again.Failed != 0 {
		t.Fatalf("re-apply failed: %#v", again)
	}
}

func TestHardLinkFailureLeavesDuplicateIntact(t *testing.T) {
	dir := t.TempDir()
	g := makeGroup(t, dir, "a.jpg", "b.jpg")
	// Remove keep so the link step fails before anything touches b.jpg.
	if err := os.Remove(g.Keep()); err != nil {
		t.Fatalf("remove keep: %v", err)
	}

	executor := &action.Executor{Disposition: action.HardLink, Logger: logging.NewNop()}
	summary := executor.Apply([]group.Group{g})
	if summary.Failed != 1 {
		t.Fatalf("expected one failure, got %#v", summary)
	}

	data, err := os.ReadFile(g.Duplicates()[0])
	if err != nil {
		t.Fatalf("duplicate lost after failed hard-link: %v", err)
	}
	if string(data) != "shared content" {
		t.Fatalf("duplicate content changed: %q", data)
	}
}

func TestSymLinkPointsDuplicateAtKeep(t *testing.T) {
	dir := t.TempDir()
	g := makeGroup(t, dir, "a.jpg", "b.jpg")

	executor := &action.Executor{Disposition: action.SymLink, Logger: logging.NewNop()}
	summary := executor.Apply([]group.Group{g})
	if summary.Applied != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %#v", summary)
	}

	dup := g.Duplicates()[0]
	target, err := os.Readlink(dup)
	if err != nil {
		t.Fatalf("duplicate is not a symlink: %v", err)
	}
	if target != g.Keep() {
		t.Fatalf("symlink points at %s, want %s", target, g.Keep())
	}
	if _, err := os.Stat(dup + ".winnow-bak"); !os.IsNotExist(err) {
		t.Fatalf("backup not cleaned up after successful symlink: %v", err)
	}
}

func TestRelocateMovesToTrash(t *testing.T) {
	dir := t.TempDir()
	trash := filepath.Join(dir, "trash")
	g := makeGroup(t, dir, "a.jpg", "b.jpg")

	executor := &action.Executor{Disposition: action.Relocate, TrashDir: trash, Logger: logging.NewNop()}
	summary := executor.Apply([]group.Group{g})
	if summary.Applied != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %#v", summary)
	}

	dup := g.Duplicates()[0]
	if _, err := os.Stat(dup); !os.IsNotExist(err) {
		t.Fatalf("duplicate still present after relocate: %v", err)
	}
	moved := filepath.Join(trash, filepath.Base(dup))
	if _, err := os.Stat(moved); err != nil {
		t.Fatalf("duplicate missing from trash: %v", err)
	}

	if _, err := os.Stat(g.Keep()); err != nil {
		t.Fatalf("keep disturbed by relocate: %v", err)
	}
}

func TestRelocateCollisionLastWriterWins(t *testing.T) {
	dir := t.TempDir()
	trash := filepath.Join(dir, "trash")

	subA := filepath.Join(dir, "suba")
	subB := filepath.Join(dir, "subb")
	for _, sub := range []string{subA, subB} {
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	keep := filepath.Join(dir, "keep.jpg")
	writeFile(t, keep, "shared content")
	first := filepath.Join(subA, "same.jpg")
	writeFile(t, first, "first duplicate")
	second := filepath.Join(subB, "same.jpg")
	writeFile(t, second, "second duplicate")

	executor := &action.Executor{Disposition: action.Relocate, TrashDir: trash, Logger: logging.NewNop()}
	summary := executor.Apply([]group.Group{
		{Hash: "h1", Members: []string{keep, first}},
		{Hash: "h2", Members: []string{keep, second}},
	})
	if summary.Applied != 2 {
		t.Fatalf("unexpected summary: %#v", summary)
	}

	data, err := os.ReadFile(filepath.Join(trash, "same.jpg"))
	if err != nil {
		t.Fatalf("read trashed file: %v", err)
	}
	if string(data) != "second duplicate" {
		t.Fatalf("expected last writer to win, got %q", data)
	}
}

func TestParseDisposition(t *testing.T) {
	for _, valid := range []string{"report-only", "HARD-LINK", " sym-link ", "relocate"} {
		if _, err := action.ParseDisposition(valid); err != nil {
			t.Errorf("ParseDisposition(%q) failed: %v", valid, err)
		}
	}
	if _, err := action.ParseDisposition("shred"); err == nil {
		t.Fatal("expected error for unknown disposition")
	}
}
