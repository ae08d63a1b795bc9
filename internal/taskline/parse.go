package taskline

import (
	"strconv"
	"strings"
	"time"

	"planline/internal/model"
)

// simpleSchedule holds the simple-dialect fragments captured while the title
// is being stripped. Capturing during the strip keeps resolution anchored to
// the same match the strip consumed.
type simpleSchedule struct {
	date      string
	timeRange string
	due       string
	priority  string
}

// Parse converts one raw item into the canonical structured record. It never
// fails: an unparseable fragment simply leaves its field unset and stays in
// the title as prose.
func Parse(item Item) model.Record {
	titleLine, notes := splitTitle(item.Text)

	blockRef := ""
	if m := blockRefSearch.FindStringSubmatch(titleLine); m != nil {
		blockRef = m[1]
	}

	originalTitle, simple := stripTitle(titleLine)
	title := wikiLinkSearch.ReplaceAllString(originalTitle, "$1")
	title = mdLinkSearch.ReplaceAllString(title, "$1")

	scheduled, length := resolveSchedule(item, titleLine, simple)

	reminder := resolveReminder(item.Text)
	if reminder != "" {
		// Reminders are never part of the displayed title, even when the
		// matched token sits outside the stripped region.
		title = strings.Replace(title, reminder, "", 1)
	}

	section := item.section()
	var children []string
	for _, child := range item.Children {
		if child.Completed() {
			continue
		}
		children = append(children, DeriveID(child.section(), child.Line))
	}

	return model.Record{
		ID:             DeriveID(section, item.Line),
		Status:         item.Status,
		Title:          title,
		OriginalTitle:  originalTitle,
		OriginalText:   item.Text,
		Notes:          notes,
		Tags:           item.Tags,
		Children:       children,
		Scheduled:      scheduled,
		Length:         length,
		Due:            resolveDateKey(item, "due", item.Fields.Due, simple.due),
		Start:          resolveDateKey(item, "start", item.Fields.Start, ""),
		Created:        resolveDateKey(item, "created", item.Fields.Created, ""),
		Completion:     resolveDateKey(item, "completion", item.Fields.Completion, ""),
		Reminder:       reminder,
		Priority:       resolvePriority(item, simple.priority),
		Repeat:         resolveRepeat(item, titleLine),
		BlockReference: blockRef,
		Extra:          model.NewExtraFields(item.Fields.Extra),
		Position:       item.Position,
		Heading:        item.Heading,
		Path:           item.Path,
	}
}

func splitTitle(text string) (titleLine, notes string) {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i], text[i+1:]
	}
	return text, ""
}

// stripTitle removes every dialect-owned substring from the title line, in
// the order later patterns depend on, and captures the simple-dialect
// fragments it consumed along the way.
func stripTitle(titleLine string) (string, simpleSchedule) {
	var simple simpleSchedule

	// Reminders strip before the emoji pass: the tasks-dialect reminder
	// shares the emoji alphabet, and stripping the emoji first would orphan
	// the reminder's clock component.
	w := replaceFirst(blockRefSearch, titleLine, "")
	w = inlineFieldSearch.ReplaceAllString(w, "")
	w = replaceFirst(reminderSearch, w, "")
	w = replaceFirst(repeatSearch, w, "")
	w = emojiDateSearch.ReplaceAllString(w, "")
	w = tagSearch.ReplaceAllString(w, "")

	// Simple schedule: a leading date makes the time range anchor correctly
	// only once the date prefix is gone. A date appearing mid-line counts
	// only when a clock time follows it.
	if m := simpleDateLead.FindStringSubmatch(w); m != nil {
		simple.date = m[1]
		w = simpleDateLead.ReplaceAllString(w, "")
		if t := simpleTimeLead.FindStringSubmatch(w); t != nil {
			simple.timeRange = t[1]
			w = replaceFirst(simpleTimeLead, w, "")
		}
	} else if t := simpleTimeLead.FindStringSubmatch(w); t != nil {
		simple.timeRange = t[1]
		w = replaceFirst(simpleTimeLead, w, "")
	} else if m := simpleDateTimeMid.FindStringSubmatch(w); m != nil {
		simple.date, simple.timeRange = m[1], m[2]
		w = replaceFirst(simpleDateTimeMid, w, "")
	}

	if m := simpleDue.FindStringSubmatch(w); m != nil {
		simple.due = m[1]
		w = replaceFirst(simpleDue, w, "")
	}
	if m := simplePriority.FindStringSubmatch(w); m != nil {
		simple.priority = m[1]
		w = replaceFirst(simplePriority, w, "")
	}
	return strings.Trim(w, " "), simple
}

// resolveSchedule resolves the scheduled timestamp and the task length.
// Source precedence: index-supplied fields, then inline dialect text, then
// the containing document's own date.
func resolveSchedule(item Item, titleLine string, simple simpleSchedule) (string, *model.Length) {
	length := parseLengthField(item.Fields.Length)

	sched := item.Fields.Scheduled
	isDate := sched == "" || model.IsDateOnly(sched)
	if sched == "" {
		inline := ""
		if m := scheduledEmojiDate.FindStringSubmatch(titleLine); m != nil {
			inline = m[1]
		}
		if inline == "" {
			inline = simple.date
		}
		if inline != "" {
			sched = inline
			isDate = model.IsDateOnly(inline)
		}
	}
	if sched == "" {
		titleDate := item.Fields.Date
		if fromPath := DateFromPath(item.Path); fromPath != "" {
			titleDate = fromPath
		}
		sched = titleDate
	}
	if sched == "" {
		return "", length
	}
	base, ok := parseISO(sched)
	if !ok {
		return "", length
	}

	hour, minute, haveTime := 0, 0, false
	endHour, endMinute, haveEnd := 0, 0, false
	if item.Fields.StartTime != "" {
		if h, m, ok := parseClock(item.Fields.StartTime); ok {
			hour, minute, haveTime = h, m, true
			if item.Fields.EndTime != "" {
				if eh, em, ok := parseClock(item.Fields.EndTime); ok {
					endHour, endMinute, haveEnd = eh, em, true
				}
			}
		}
	} else if simple.timeRange != "" {
		parts := timeRangeSplit.Split(simple.timeRange, 2)
		if h, m, ok := parseClockLoose(parts[0]); ok {
			hour, minute, haveTime = h, m, true
			if len(parts) > 1 {
				if eh, em, ok := parseClockLoose(parts[1]); ok {
					endHour, endMinute, haveEnd = eh, em, true
				}
			}
		}
	}

	if haveTime {
		base = time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, time.UTC)
		isDate = false
		if haveEnd {
			end := time.Date(base.Year(), base.Month(), base.Day(), endHour, endMinute, 0, 0, time.UTC)
			if end.Before(base) {
				// An end before the start spans midnight, never a negative
				// duration.
				end = end.AddDate(0, 0, 1)
			}
			diff := end.Sub(base)
			length = &model.Length{
				Hour:   int(diff / time.Hour),
				Minute: int(diff%time.Hour) / int(time.Minute),
			}
		}
	}

	if isDate {
		return base.Format("2006-01-02"), length
	}
	return base.Format("2006-01-02T15:04"), length
}

func resolveDateKey(item Item, key, fieldValue, simpleValue string) string {
	if fieldValue != "" {
		return fieldValue
	}
	if m := dateKeyEmojiSearch[key].FindStringSubmatch(item.Text); m != nil {
		return m[1]
	}
	return simpleValue
}

func resolveReminder(text string) string {
	if m := tasksReminder.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := nativeReminder.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := kanbanReminder.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func resolvePriority(item Item, simpleToken string) model.Priority {
	if field := strings.TrimSpace(item.Fields.Priority); field != "" {
		if n, err := strconv.Atoi(field); err == nil {
			if p := model.Priority(n); p.IsValid() {
				return p
			}
			return model.PriorityDefault
		}
		if p, ok := model.PriorityKeys[strings.ToLower(field)]; ok {
			return p
		}
		return model.PriorityDefault
	}
	for _, key := range []string{"highest", "high", "medium", "low", "lowest"} {
		if strings.Contains(item.Text, model.FieldEmoji[key]) {
			return model.PriorityKeys[key]
		}
	}
	if p, ok := model.SimplePriorities[simpleToken]; ok {
		return p
	}
	return model.PriorityDefault
}

func resolveRepeat(item Item, titleLine string) string {
	if item.Fields.Repeat != "" {
		return item.Fields.Repeat
	}
	if m := repeatSearch.FindStringSubmatch(titleLine); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// parseLengthField accepts "1h30m", "45m", "2h" and "H:MM" duration strings.
// Anything that fails to yield numbers resolves to no length at all rather
// than a partial value.
func parseLengthField(value string) *model.Length {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if h, m, ok := parseClock(value); ok {
		return &model.Length{Hour: h, Minute: m}
	}
	hour, minute := 0, 0
	found := false
	rest := value
	if i := strings.IndexByte(rest, 'h'); i >= 0 {
		n, err := strconv.Atoi(strings.TrimSpace(rest[:i]))
		if err != nil {
			return nil
		}
		hour, found = n, true
		rest = strings.TrimSpace(rest[i+1:])
	}
	if i := strings.IndexByte(rest, 'm'); i >= 0 {
		n, err := strconv.Atoi(strings.TrimSpace(rest[:i]))
		if err != nil {
			return nil
		}
		minute, found = n, true
		rest = rest[i+1:]
	} else if rest != "" {
		return nil
	}
	if !found || hour < 0 || minute < 0 {
		return nil
	}
	return &model.Length{Hour: hour, Minute: minute}
}

// parseClock parses a strict "HH:MM" clock string.
func parseClock(value string) (int, int, bool) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	if h < 0 || m < 0 {
		return 0, 0, false
	}
	return h, m, true
}

// parseClockLoose parses "H" or "H:MM"; a missing minute defaults to zero.
func parseClockLoose(value string) (int, int, bool) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0, 0, false
	}
	if len(parts) == 1 {
		return h, 0, true
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 {
		return 0, 0, false
	}
	return h, m, true
}

func parseISO(value string) (time.Time, bool) {
	if model.IsDateOnly(value) {
		t, err := time.Parse("2006-01-02", value)
		return t, err == nil
	}
	t, err := time.Parse("2006-01-02T15:04", value)
	return t, err == nil
}
