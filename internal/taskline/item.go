// Package taskline converts between free-form markdown task lines and the
// canonical structured record, preserving everything not owned by a
// structured field across the round trip.
package taskline

import (
	"strconv"
	"strings"

	"planline/internal/model"
)

// Item is one raw task as supplied by the document index: the text after the
// checkbox marker plus location metadata and whatever fields the index
// already extracted.
type Item struct {
	// Text holds the raw task text after the checkbox marker. Lines after
	// the first are free-text notes.
	Text    string
	Path    string
	Section string // containing section path; falls back to Path when empty
	Heading string
	Line    int
	Status  string // single-character checkbox status

	Position model.Position
	Tags     []string
	Children []Item
	Fields   Fields
}

// Fields carries values the index extracted before parsing. The parser
// prefers these over anything it can recover from the text itself. All
// values are strings in the shapes noted; absence is the empty string.
type Fields struct {
	Scheduled  string // ISO date or date-time
	Length     string // duration, "1h30m" or "H:MM" style
	StartTime  string // clock, "HH:MM"
	EndTime    string // clock, "HH:MM"
	Due        string // ISO date
	Start      string // ISO date
	Created    string // ISO date
	Completion string // ISO date
	Priority   string // priority key name or tier number
	Repeat     string
	Date       string // the containing document's own date metadata

	// Extra holds any further key/value annotations. Reserved keys are
	// dropped when the record is built.
	Extra map[string]string
}

// Completed reports whether the item is already closed, either by an explicit
// completion date or by its checkbox status. Completed children are excluded
// from a parent record's child list.
func (it Item) Completed() bool {
	if it.Fields.Completion != "" {
		return true
	}
	return strings.EqualFold(it.Status, "x")
}

func (it Item) section() string {
	if it.Section != "" {
		return it.Section
	}
	return it.Path
}

// DeriveID builds the stable record id for a task at the given section path
// and line. UI state keyed by id survives edits because the value depends
// only on source location.
func DeriveID(section string, line int) string {
	return strings.TrimSuffix(section, ".md") + "::" + strconv.Itoa(line)
}

// TagsIn extracts the hashtag tokens of a task line, in order.
func TagsIn(text string) []string {
	matches := tagSearch.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimRight(m, " "))
	}
	return out
}

// InlineFields extracts every bracketed "[key:: value]" or "(key:: value)"
// annotation from text. The document index uses this to pre-extract bracket
// dialect fields before handing an item to Parse.
func InlineFields(text string) map[string]string {
	matches := inlineFieldCapture.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make(map[string]string, len(matches))
	for _, m := range matches {
		out[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
	}
	return out
}
