package taskline

import (
	"strings"

	"planline/internal/model"
)

// Detect classifies which dialect governs the structured fields of a task
// line. Checks run in a fixed priority order and the first match wins; text
// with no markers falls through to the caller-supplied fallback. Detect
// never fails.
func Detect(text string, fallback model.Dialect) model.FieldFormat {
	return model.FieldFormat{
		Main:     detectMain(text, fallback),
		Reminder: detectReminder(text),
	}
}

func detectMain(text string, fallback model.Dialect) model.Dialect {
	// Reminder tokens carry their own date and must not trip the simple
	// date/time checks.
	probe := reminderSearch.ReplaceAllString(text, "")
	if simpleTimeLead.MatchString(probe) || simpleDateLead.MatchString(probe) ||
		simpleDue.MatchString(probe) || simpleDateTimeMid.MatchString(probe) {
		return model.DialectSimple
	}
	for emoji := range model.EmojiField {
		if strings.Contains(text, emoji) {
			return model.DialectTasks
		}
	}
	if calendarKeySearch.MatchString(text) {
		return model.DialectCalendar
	}
	if bracketKeySearch.MatchString(text) {
		return model.DialectBracket
	}
	return fallback
}

func detectReminder(text string) model.ReminderDialect {
	if strings.Contains(text, model.FieldEmoji["reminder"]) {
		return model.ReminderTasks
	}
	if kanbanReminder.MatchString(text) {
		return model.ReminderKanban
	}
	return model.ReminderNative
}
