package taskline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"planline/internal/model"
)

// Serialize reconstructs the task line for a record in the dialect detected
// from its original source text, falling back to the caller's default when
// the text carries no markers. Fields absent on the record are omitted; the
// function is total over every field combination.
func Serialize(rec model.Record, fallback model.Dialect) string {
	status := rec.Status
	if rec.Completion != "" {
		// A completion date implies closed even when the status still says
		// otherwise.
		status = "x"
	}
	if status == "" {
		status = " "
	}

	draft := "- [" + status + "] " + strings.TrimRight(rec.OriginalTitle, " \t")
	if len(rec.Tags) > 0 {
		draft += " " + strings.Join(rec.Tags, " ")
	}
	if len(rec.Extra) > 0 {
		keys := make([]string, 0, len(rec.Extra))
		for key := range rec.Extra {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			draft += " [" + key + ":: " + rec.Extra[key] + "]"
		}
	}

	format := Detect(rec.OriginalText, fallback)

	switch format.Main {
	case model.DialectSimple:
		draft = emitSimple(draft, rec, format.Reminder)
	case model.DialectBracket:
		draft = emitBracket(draft, rec, format.Reminder)
	case model.DialectCalendar:
		draft = emitCalendar(draft, rec, format.Reminder)
	case model.DialectTasks:
		draft = emitTasks(draft, rec, format.Reminder)
	}

	if rec.BlockReference != "" {
		draft += " " + rec.BlockReference
	}
	return draft
}

// emitSimple splices the schedule into the checkbox-prefix region rather
// than appending it, reinserting the date only when the document's own name
// does not already imply it.
func emitSimple(draft string, rec model.Record, reminder model.ReminderDialect) string {
	if rec.Scheduled != "" {
		pathDate := DateFromPath(rec.Path)
		schedDate := rec.Scheduled[:10]
		includeDate := pathDate == "" || pathDate != schedDate

		schedTime := ""
		if !model.IsDateOnly(rec.Scheduled) {
			schedTime = strings.TrimPrefix(rec.Scheduled[11:], "0")
			if rec.Length != nil && rec.Length.Minutes() > 0 {
				if start, ok := parseISO(rec.Scheduled); ok {
					end := start.Add(lengthDuration(rec.Length))
					schedTime += " - " + strings.TrimPrefix(end.Format("15:04"), "0")
				}
			}
		}

		lead := ""
		if includeDate {
			lead = schedDate + " "
		}
		if schedTime != "" {
			lead += schedTime + " "
		}
		draft = draft[:6] + lead + strings.TrimLeft(draft[6:], " ")
	}
	if rec.Due != "" {
		draft += "  > " + rec.Due
	}
	if rec.Priority != model.PriorityDefault {
		if token, ok := model.SimplePriorityTokens[rec.Priority]; ok {
			draft += " " + token
		}
	}
	draft += reminderToken(reminder, rec.Reminder)
	if rec.Repeat != "" {
		draft += "  [repeat:: " + rec.Repeat + "]"
	}
	if rec.Start != "" {
		draft += "  [start:: " + rec.Start + "]"
	}
	if rec.Created != "" {
		draft += "  [created:: " + rec.Created + "]"
	}
	if rec.Completion != "" {
		draft += "  [completion:: " + rec.Completion + "]"
	}
	return draft
}

func emitBracket(draft string, rec model.Record, reminder model.ReminderDialect) string {
	if rec.Scheduled != "" {
		draft += "  [scheduled:: " + rec.Scheduled + "]"
	}
	draft += reminderToken(reminder, rec.Reminder)
	if rec.Due != "" {
		draft += "  [due:: " + rec.Due + "]"
	}
	if rec.Length != nil && rec.Length.Minutes() > 0 {
		draft += "  [length:: " + lengthToken(rec.Length) + "]"
	}
	if rec.Repeat != "" {
		draft += "  [repeat:: " + rec.Repeat + "]"
	}
	if rec.Start != "" {
		draft += "  [start:: " + rec.Start + "]"
	}
	if rec.Created != "" {
		draft += "  [created:: " + rec.Created + "]"
	}
	if rec.Priority != model.PriorityDefault {
		draft += "  [priority:: " + model.PriorityNames[rec.Priority] + "]"
	}
	if rec.Completion != "" {
		draft += "  [completion:: " + rec.Completion + "]"
	}
	return draft
}

func emitCalendar(draft string, rec model.Record, reminder model.ReminderDialect) string {
	if rec.Scheduled != "" {
		draft += "  [date:: " + rec.Scheduled[:10] + "]"
		if !model.IsDateOnly(rec.Scheduled) {
			draft += "  [startTime:: " + rec.Scheduled[11:] + "]"
		} else {
			draft += "  [allDay:: true]"
		}
	}
	draft += reminderToken(reminder, rec.Reminder)
	if rec.Due != "" {
		draft += "  [due:: " + rec.Due + "]"
	}
	if rec.Length != nil && rec.Length.Minutes() > 0 && rec.Scheduled != "" {
		if start, ok := parseISO(rec.Scheduled); ok {
			end := start.Add(lengthDuration(rec.Length))
			draft += fmt.Sprintf("  [endTime:: %02d:%02d]", end.Hour(), end.Minute())
		}
	}
	if rec.Repeat != "" {
		draft += "  [repeat:: " + rec.Repeat + "]"
	}
	if rec.Start != "" {
		draft += "  [start:: " + rec.Start + "]"
	}
	if rec.Created != "" {
		draft += "  [created:: " + rec.Created + "]"
	}
	if rec.Priority != model.PriorityDefault {
		draft += "  [priority:: " + model.PriorityNames[rec.Priority] + "]"
	}
	if rec.Completion != "" {
		draft += "  [completion:: " + rec.Completion + "]"
	}
	return draft
}

func emitTasks(draft string, rec model.Record, reminder model.ReminderDialect) string {
	if rec.Length != nil && rec.Length.Minutes() > 0 {
		draft += "  [length:: " + lengthToken(rec.Length) + "]"
	}
	if rec.Scheduled != "" && !model.IsDateOnly(rec.Scheduled) {
		draft += "  [startTime:: " + rec.Scheduled[11:] + "]"
	}
	draft += reminderToken(reminder, rec.Reminder)
	if rec.Priority != model.PriorityDefault {
		draft += " " + model.FieldEmoji[model.PriorityNames[rec.Priority]]
	}
	if rec.Repeat != "" {
		draft += " " + model.FieldEmoji["repeat"] + " " + rec.Repeat
	}
	if rec.Start != "" {
		draft += " " + model.FieldEmoji["start"] + " " + rec.Start
	}
	if rec.Scheduled != "" {
		draft += " " + model.FieldEmoji["scheduled"] + " " + rec.Scheduled[:10]
	}
	if rec.Due != "" {
		draft += " " + model.FieldEmoji["due"] + " " + rec.Due
	}
	if rec.Created != "" {
		draft += " " + model.FieldEmoji["created"] + " " + rec.Created
	}
	if rec.Completion != "" {
		draft += " " + model.FieldEmoji["completion"] + " " + rec.Completion
	}
	return draft
}

func reminderToken(dialect model.ReminderDialect, reminder string) string {
	if reminder == "" {
		return ""
	}
	switch dialect {
	case model.ReminderKanban:
		return " @{" + reminder + "}"
	case model.ReminderTasks:
		return " " + model.FieldEmoji["reminder"] + " " + reminder
	default:
		return " (@" + reminder + ")"
	}
}

func lengthToken(l *model.Length) string {
	out := ""
	if l.Hour > 0 {
		out += fmt.Sprintf("%dh", l.Hour)
	}
	if l.Minute > 0 {
		out += fmt.Sprintf("%dm", l.Minute)
	}
	return out
}

func lengthDuration(l *model.Length) time.Duration {
	return time.Duration(l.Hour)*time.Hour + time.Duration(l.Minute)*time.Minute
}
