package vault

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDoc = `---
date: 2024-03-01
---

# Work

- [ ] Parent task [scheduled:: 2024-03-05]
  extra context line
  - [ ] Child task
- [x] Done task

## Home

- [ ] 9:00 Water plants #garden
plain paragraph
1. [ ] Numbered task`

func TestScanDocument(t *testing.T) {
	items, err := Scan(strings.NewReader(sampleDoc), "daily.md")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("got %d root items, want 4: %#v", len(items), items)
	}

	parent := items[0]
	if parent.Text != "Parent task [scheduled:: 2024-03-05]\nextra context line" {
		t.Errorf("parent text = %q", parent.Text)
	}
	if parent.Heading != "Work" {
		t.Errorf("parent heading = %q", parent.Heading)
	}
	if parent.Fields.Scheduled != "2024-03-05" {
		t.Errorf("parent scheduled = %q", parent.Fields.Scheduled)
	}
	if parent.Fields.Date != "2024-03-01" {
		t.Errorf("frontmatter date = %q", parent.Fields.Date)
	}
	if parent.Position.StartLine != 6 || parent.Position.EndLine != 7 {
		t.Errorf("parent position = %+v", parent.Position)
	}
	if len(parent.Children) != 1 || parent.Children[0].Text != "Child task" {
		t.Errorf("parent children = %#v", parent.Children)
	}
	if parent.Children[0].Line != 8 {
		t.Errorf("child line = %d", parent.Children[0].Line)
	}

	done := items[1]
	if done.Status != "x" {
		t.Errorf("done status = %q", done.Status)
	}

	water := items[2]
	if water.Heading != "Home" {
		t.Errorf("water heading = %q", water.Heading)
	}
	if len(water.Tags) != 1 || water.Tags[0] != "#garden" {
		t.Errorf("water tags = %#v", water.Tags)
	}
	if water.Line != 13 {
		t.Errorf("water line = %d", water.Line)
	}

	numbered := items[3]
	if numbered.Text != "Numbered task" {
		t.Errorf("numbered text = %q", numbered.Text)
	}
}

func TestScanRoutesCustomFields(t *testing.T) {
	items, err := Scan(strings.NewReader("- [ ] Task [project:: home] [due:: 2024-03-10]"), "inbox.md")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}
	fields := items[0].Fields
	if fields.Due != "2024-03-10" {
		t.Errorf("due = %q", fields.Due)
	}
	if fields.Extra["project"] != "home" {
		t.Errorf("extra = %#v", fields.Extra)
	}
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "inbox.md"), "- [ ] Top level task\n")
	writeFile(t, filepath.Join(root, "notes", "deep.md"), "- [ ] Nested task\n")
	writeFile(t, filepath.Join(root, "ignore.txt"), "- [ ] Not markdown\n")

	items, err := ScanDir(root)
	if err != nil {
		t.Fatalf("scan dir: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %#v", len(items), items)
	}

	paths := map[string]bool{}
	for _, item := range items {
		paths[item.Path] = true
	}
	if !paths["inbox.md"] || !paths["notes/deep.md"] {
		t.Errorf("unexpected item paths: %#v", paths)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
