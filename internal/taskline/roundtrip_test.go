package taskline_test

import (
	"reflect"
	"strings"
	"testing"

	"planline/internal/model"
	"planline/internal/taskline"
	"planline/internal/vault"
)

func parseLine(t *testing.T, line, path string) model.Record {
	t.Helper()
	items, err := vault.Scan(strings.NewReader(line+"\n"), path)
	if err != nil {
		t.Fatalf("scan %q: %v", line, err)
	}
	if len(items) != 1 {
		t.Fatalf("scan %q: got %d items, want 1", line, len(items))
	}
	return taskline.Parse(items[0])
}

// Round trip: parsing a line, serializing the record and parsing again must
// yield the same record, and the second serialization must reproduce the
// first byte for byte.
func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		line string
		path string
	}{
		{"simple inline", "- [ ] Buy milk #errand 2024-03-01 14:00 - 15:30 !!", "inbox.md"},
		{"simple leading", "- [ ] 2024-03-01 22:00 - 1:00 Night shift", "inbox.md"},
		{"simple daily note", "- [ ] 9:00 Standup", "journal/2024-03-01.md"},
		{"simple due", "- [ ] Ship release > 2024-04-01 !!!", "inbox.md"},
		{"bracket", "- [ ] Call dentist [scheduled:: 2024-03-05] [due:: 2024-03-10] [length:: 1h30m]", "inbox.md"},
		{"bracket with extras", "- [ ] Write report [scheduled:: 2024-03-05] [project:: work] ^abc123", "inbox.md"},
		{"calendar", "- [ ] Standup [date:: 2024-03-01] [startTime:: 09:00] [endTime:: 09:45]", "meetings.md"},
		{"calendar all day", "- [ ] Offsite [allDay:: true] [date:: 2024-03-01]", "meetings.md"},
		{"tasks emoji", "- [ ] Pay rent ⏫ 🔁 every month 🛫 2024-02-25 ⏳ 2024-03-01 📅 2024-03-05", "inbox.md"},
		{"native reminder", "- [ ] Water plants (@2024-03-01 09:00)", "garden.md"},
		{"kanban reminder", "- [ ] Water plants @{2024-03-01 09:00}", "garden.md"},
		{"tasks reminder", "- [ ] Water plants ⏰ 2024-03-01 09:00", "garden.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := parseLine(t, tt.line, tt.path)
			serialized := taskline.Serialize(first, model.DialectBracket)
			second := parseLine(t, serialized, tt.path)

			assertRecordsEqual(t, first, second)

			again := taskline.Serialize(second, model.DialectBracket)
			if again != serialized {
				t.Errorf("serialization not a fixpoint:\nfirst  %q\nsecond %q", serialized, again)
			}
		})
	}
}

// assertRecordsEqual compares the value fields of two records. Status and the
// original text are allowed to differ: serialization marks completed records
// done and normalizes field placement.
func assertRecordsEqual(t *testing.T, a, b model.Record) {
	t.Helper()
	type values struct {
		Title          string
		OriginalTitle  string
		Tags           []string
		Scheduled      string
		Length         *model.Length
		Due            string
		Start          string
		Created        string
		Completion     string
		Reminder       string
		Priority       model.Priority
		Repeat         string
		BlockReference string
		Extra          model.ExtraFields
	}
	va := values{a.Title, a.OriginalTitle, a.Tags, a.Scheduled, a.Length, a.Due,
		a.Start, a.Created, a.Completion, a.Reminder, a.Priority, a.Repeat,
		a.BlockReference, a.Extra}
	vb := values{b.Title, b.OriginalTitle, b.Tags, b.Scheduled, b.Length, b.Due,
		b.Start, b.Created, b.Completion, b.Reminder, b.Priority, b.Repeat,
		b.BlockReference, b.Extra}
	if !reflect.DeepEqual(va, vb) {
		t.Errorf("records differ:\nfirst  %+v\nsecond %+v", va, vb)
	}
}

// Converting between dialects preserves the record values even though the
// textual shape changes completely.
func TestCrossDialectConversion(t *testing.T) {
	first := parseLine(t, "- [ ] Buy milk #errand 2024-03-01 14:00 - 15:30 !!", "inbox.md")

	// Clearing the source text makes detection fall through to the target.
	converted := first
	converted.OriginalText = ""
	line := taskline.Serialize(converted, model.DialectTasks)

	second := parseLine(t, line, "inbox.md")
	if second.Scheduled != first.Scheduled {
		t.Errorf("Scheduled = %q, want %q", second.Scheduled, first.Scheduled)
	}
	if second.Priority != first.Priority {
		t.Errorf("Priority = %d, want %d", second.Priority, first.Priority)
	}
	if second.Title != first.Title {
		t.Errorf("Title = %q, want %q", second.Title, first.Title)
	}
}
