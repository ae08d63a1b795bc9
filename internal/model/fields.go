package model

// FieldEmoji maps a structured field key (or priority tier key) to the emoji
// that encodes it in the tasks dialect. Initialized once, read-only.
var FieldEmoji = map[string]string{
	"scheduled":  "⏳",
	"due":        "📅",
	"start":      "🛫",
	"created":    "➕",
	"completion": "✅",
	"repeat":     "🔁",
	"reminder":   "⏰",
	"highest":    "🔺",
	"high":       "⏫",
	"medium":     "🔼",
	"low":        "🔽",
	"lowest":     "⏬",
}

// EmojiField is the inverse of FieldEmoji.
var EmojiField = func() map[string]string {
	m := make(map[string]string, len(FieldEmoji))
	for key, emoji := range FieldEmoji {
		m[emoji] = key
	}
	return m
}()

// reservedFields are the keys owned by structured fields or by the item
// envelope itself. They never appear in ExtraFields.
var reservedFields = map[string]struct{}{
	"scheduled":  {},
	"due":        {},
	"length":     {},
	"repeat":     {},
	"start":      {},
	"created":    {},
	"priority":   {},
	"completion": {},
	"date":       {},
	"allDay":     {},
	"startTime":  {},
	"endTime":    {},
	"reminder":   {},
	"id":         {},
	"status":     {},
	"title":      {},
	"text":       {},
	"notes":      {},
	"tags":       {},
	"children":   {},
	"position":   {},
	"heading":    {},
	"section":    {},
	"path":       {},
	"line":       {},
	"link":       {},
}

// IsReservedField reports whether key is owned by a structured field and must
// not be carried as an opaque extra field.
func IsReservedField(key string) bool {
	_, ok := reservedFields[key]
	return ok
}

// ExtraFields holds custom key/value annotations not owned by any recognized
// structured field. They are preserved verbatim across a parse/serialize
// round trip.
type ExtraFields map[string]string

// NewExtraFields copies in, dropping reserved keys. A nil or empty result is
// returned as nil so absence stays distinguishable.
func NewExtraFields(in map[string]string) ExtraFields {
	var out ExtraFields
	for key, value := range in {
		if IsReservedField(key) {
			continue
		}
		if out == nil {
			out = make(ExtraFields, len(in))
		}
		out[key] = value
	}
	return out
}
