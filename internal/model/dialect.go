package model

// Dialect identifies which textual convention governs the structured fields
// of one task line. The set is closed; serialization switches over it
// exhaustively.
type Dialect string

const (
	// DialectSimple encodes schedule inline: a leading date and time range,
	// a trailing "> date" due marker and a trailing ?/!/!!/!!! priority.
	DialectSimple Dialect = "simple"
	// DialectTasks encodes fields with emoji keys (⏳ 📅 🛫 ➕ ✅ 🔁 ⏰ ...).
	DialectTasks Dialect = "tasks"
	// DialectCalendar encodes fields with calendar-style bracket keys
	// (date::, allDay::, startTime::, endTime::).
	DialectCalendar Dialect = "calendar"
	// DialectBracket encodes fields with generic bracket keys
	// (scheduled::, due::, length::, ...).
	DialectBracket Dialect = "bracket"
)

func (d Dialect) IsValid() bool {
	switch d {
	case DialectSimple, DialectTasks, DialectCalendar, DialectBracket:
		return true
	default:
		return false
	}
}

// ReminderDialect identifies which syntax encodes the reminder token.
type ReminderDialect string

const (
	ReminderTasks  ReminderDialect = "tasks"  // ⏰ 2024-03-01 09:00
	ReminderKanban ReminderDialect = "kanban" // @{2024-03-01 09:00}
	ReminderNative ReminderDialect = "native" // (@2024-03-01 09:00)
)

func (r ReminderDialect) IsValid() bool {
	switch r {
	case ReminderTasks, ReminderKanban, ReminderNative:
		return true
	default:
		return false
	}
}

// FieldFormat is the result of dialect detection on one task line.
type FieldFormat struct {
	Main     Dialect
	Reminder ReminderDialect
}
