package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidPriority = errors.New("model: invalid priority")
	ErrInvalidDate     = errors.New("model: invalid date value")
	ErrNegativeLength  = errors.New("model: negative length")
	ErrReservedField   = errors.New("model: reserved key in extra fields")
)

var (
	dateShape     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimeShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}$`)
)

// IsDateOnly reports whether an ISO value is a pure calendar date, as opposed
// to a date carrying a clock time. The distinction is re-derived from the
// string shape, never stored.
func IsDateOnly(value string) bool {
	return len(value) == 10
}

// Length is a task duration. Nil means no length.
type Length struct {
	Hour   int
	Minute int
}

// Minutes returns the total duration in minutes.
func (l Length) Minutes() int {
	return l.Hour*60 + l.Minute
}

// Position is the line range of a task inside its source document.
type Position struct {
	StartLine int
	EndLine   int
}

// Record is the canonical, dialect-independent representation of one task.
// Records are never mutated in place; an edit produces a new Record that is
// fed back through serialization.
type Record struct {
	// ID is derived from the source section path and line number. It is
	// stable across reparses of the same line.
	ID     string
	Status string // single-character checkbox status, e.g. " ", "x", "-"

	Title         string // display title, dialect markup stripped, links resolved
	OriginalTitle string // title before link resolution, markup stripped
	OriginalText  string // untouched source line(s), reserialization seed
	Notes         string // free text after the first line

	Tags     []string
	Children []string // ids of incomplete child tasks

	Scheduled  string  // ISO date or date-time
	Length     *Length // nil when absent
	Due        string  // ISO date
	Start      string  // ISO date
	Created    string  // ISO date
	Completion string  // ISO date
	Reminder   string  // ISO date, optionally with " HH:MM"
	// Priority's zero value is PriorityLowest, not PriorityDefault. Records
	// built by hand rather than by Parse should set PriorityDefault
	// explicitly, or serialization will emit a lowest-priority marker.
	Priority Priority
	Repeat   string // opaque recurrence text, stored not interpreted

	BlockReference string // trailing ^anchor token, including the caret
	Extra          ExtraFields

	// Location metadata supplied by the index, passed through unmodified.
	Position Position
	Heading  string
	Path     string
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: record id is required")
	}
	if !r.Priority.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, r.Priority)
	}
	if r.Scheduled != "" && !dateShape.MatchString(r.Scheduled) && !dateTimeShape.MatchString(r.Scheduled) {
		return fmt.Errorf("%w: scheduled %q", ErrInvalidDate, r.Scheduled)
	}
	for _, field := range []struct{ name, value string }{
		{"due", r.Due},
		{"start", r.Start},
		{"created", r.Created},
		{"completion", r.Completion},
	} {
		if field.value != "" && !dateShape.MatchString(field.value) {
			return fmt.Errorf("%w: %s %q", ErrInvalidDate, field.name, field.value)
		}
	}
	if r.Length != nil && (r.Length.Hour < 0 || r.Length.Minute < 0) {
		return fmt.Errorf("%w: %dh%dm", ErrNegativeLength, r.Length.Hour, r.Length.Minute)
	}
	for key := range r.Extra {
		if IsReservedField(key) {
			return fmt.Errorf("%w: %q", ErrReservedField, key)
		}
	}
	return nil
}
