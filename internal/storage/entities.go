package storage

import (
	"encoding/json"

	"planline/internal/model"
)

// Record is the row shape of one parsed task in the index database. Ordered
// collections (tags, children) and the opaque extra fields are JSON-encoded
// into text columns.
type Record struct {
	ID             string
	Path           string
	Heading        string
	StartLine      int
	EndLine        int
	Status         string
	Title          string
	OriginalTitle  string
	OriginalText   string
	Notes          string
	Dialect        string
	Scheduled      string
	LengthMinutes  *int
	Due            string
	Start          string
	Created        string
	Completion     string
	Reminder       string
	Priority       int
	Repeat         string
	BlockReference string
	Tags           string // JSON array
	Children       string // JSON array
	Extra          string // JSON object
}

type RecordListFilter struct {
	Path         string
	Tag          string
	Dialect      string
	ScheduledDay string // matches records scheduled on this ISO date
	Limit        int
	Offset       int
}

// FromModel flattens a canonical record into its row shape, remembering the
// dialect its source text was detected as.
func FromModel(rec model.Record, dialect model.Dialect) (Record, error) {
	tags, err := json.Marshal(rec.Tags)
	if err != nil {
		return Record{}, err
	}
	children, err := json.Marshal(rec.Children)
	if err != nil {
		return Record{}, err
	}
	extra, err := json.Marshal(rec.Extra)
	if err != nil {
		return Record{}, err
	}
	row := Record{
		ID:             rec.ID,
		Path:           rec.Path,
		Heading:        rec.Heading,
		StartLine:      rec.Position.StartLine,
		EndLine:        rec.Position.EndLine,
		Status:         rec.Status,
		Title:          rec.Title,
		OriginalTitle:  rec.OriginalTitle,
		OriginalText:   rec.OriginalText,
		Notes:          rec.Notes,
		Dialect:        string(dialect),
		Scheduled:      rec.Scheduled,
		Due:            rec.Due,
		Start:          rec.Start,
		Created:        rec.Created,
		Completion:     rec.Completion,
		Reminder:       rec.Reminder,
		Priority:       int(rec.Priority),
		Repeat:         rec.Repeat,
		BlockReference: rec.BlockReference,
		Tags:           string(tags),
		Children:       string(children),
		Extra:          string(extra),
	}
	if rec.Length != nil {
		minutes := rec.Length.Minutes()
		row.LengthMinutes = &minutes
	}
	return row, nil
}

// ToModel rebuilds the canonical record from its row shape.
func (r Record) ToModel() (model.Record, error) {
	rec := model.Record{
		ID:             r.ID,
		Status:         r.Status,
		Title:          r.Title,
		OriginalTitle:  r.OriginalTitle,
		OriginalText:   r.OriginalText,
		Notes:          r.Notes,
		Scheduled:      r.Scheduled,
		Due:            r.Due,
		Start:          r.Start,
		Created:        r.Created,
		Completion:     r.Completion,
		Reminder:       r.Reminder,
		Priority:       model.Priority(r.Priority),
		Repeat:         r.Repeat,
		BlockReference: r.BlockReference,
		Heading:        r.Heading,
		Path:           r.Path,
		Position: model.Position{
			StartLine: r.StartLine,
			EndLine:   r.EndLine,
		},
	}
	if r.Tags != "" {
		if err := json.Unmarshal([]byte(r.Tags), &rec.Tags); err != nil {
			return model.Record{}, err
		}
	}
	if r.Children != "" {
		if err := json.Unmarshal([]byte(r.Children), &rec.Children); err != nil {
			return model.Record{}, err
		}
	}
	if r.Extra != "" {
		if err := json.Unmarshal([]byte(r.Extra), &rec.Extra); err != nil {
			return model.Record{}, err
		}
	}
	if r.LengthMinutes != nil {
		rec.Length = &model.Length{
			Hour:   *r.LengthMinutes / 60,
			Minute: *r.LengthMinutes % 60,
		}
	}
	return rec, nil
}
