package taskline

import (
	"regexp"
	"strings"

	"planline/internal/model"
)

// isoPattern matches an ISO calendar date with an optional clock time.
const isoPattern = `\d{4}-\d{2}-\d{2}(?:T\d{2}:\d{2})?`

var (
	// emojiDateSearch strips any recognized emoji key plus its attached date.
	emojiDateSearch = regexp.MustCompile(`[⏳📅🛫➕✅🔁⏰🔺⏫🔼🔽⏬] ?(?:` + isoPattern + `)?`)
	// repeatSearch captures the free-text recurrence after the repeat emoji.
	repeatSearch = regexp.MustCompile(`🔁 ?([a-zA-Z0-9 ]+)`)

	inlineFieldSearch  = regexp.MustCompile(`[\[(][^\])]+:: [^\])]+[\])] *`)
	inlineFieldCapture = regexp.MustCompile(`[\[(]([^\])]+):: ([^\])]+)[\])]`)
	tagSearch          = regexp.MustCompile(`#[\w/-]+ *`)
	wikiLinkSearch     = regexp.MustCompile(`\[\[(.*?)\]\]`)
	mdLinkSearch       = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)

	// The three reminder syntaxes as one alternation, used for stripping.
	// Resolution tries the syntaxes individually so the emoji form wins.
	reminderSearch = regexp.MustCompile(
		` ?⏰ ?(?:` + isoPattern + `(?: \d{2}:\d{2})?)` +
			`|\(@\d{4}-\d{2}-\d{2}(?: \d{2}:\d{2})?\)` +
			`|@\{\d{4}-\d{2}-\d{2}(?: \d{2}:\d{2})?\}`)
	tasksReminder  = regexp.MustCompile(`⏰ ?(` + isoPattern + `(?: \d{2}:\d{2})?)`)
	nativeReminder = regexp.MustCompile(`\(@(\d{4}-\d{2}-\d{2}(?: \d{2}:\d{2})?)\)`)
	kanbanReminder = regexp.MustCompile(`@\{(\d{4}-\d{2}-\d{2}(?: \d{2}:\d{2})?)\}`)

	blockRefSearch = regexp.MustCompile(` ?(\^[A-Za-z0-9-]+)$`)

	simpleDateLead = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}) `)
	simpleTimeLead = regexp.MustCompile(`^(\d{1,2}(?::\d{1,2})?(?: ?- ?\d{1,2}(?::\d{1,2})?)?)`)
	// Mid-line date plus time range. The time component is mandatory here so
	// bracket field values like "[scheduled:: 2024-03-05]" never match.
	simpleDateTimeMid = regexp.MustCompile(` (\d{4}-\d{2}-\d{2}) (\d{1,2}:\d{1,2}(?: ?- ?\d{1,2}(?::\d{1,2})?)?)`)
	simpleDue         = regexp.MustCompile(` ?> ?(\d{4}-\d{2}-\d{2})`)
	simplePriority    = regexp.MustCompile(` (\?|!{1,3})$`)

	timeRangeSplit = regexp.MustCompile(` ?- ?`)
	pathDateSearch = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

	calendarKeySearch = regexp.MustCompile(`\[allDay:: |\[date:: |\[startTime:: |\[endTime:: `)
	bracketKeySearch  = regexp.MustCompile(`\[scheduled:: |\[due:: `)

	scheduledEmojiDate = regexp.MustCompile(model.FieldEmoji["scheduled"] + ` ?(` + isoPattern + `)`)
)

// dateKeyEmojiSearch holds a per-field regex matching the field's emoji plus
// its ISO date, for the inline-emoji date fields.
var dateKeyEmojiSearch = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, 4)
	for _, key := range []string{"due", "created", "start", "completion"} {
		out[key] = regexp.MustCompile(model.FieldEmoji[key] + ` ?(` + isoPattern + `)`)
	}
	return out
}()

// replaceFirst replaces the first match of re in s, if any.
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}

// DateFromPath infers a calendar date from a daily-note style file name,
// e.g. "journal/2024-03-01.md". Empty when the name carries no date.
func DateFromPath(path string) string {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	return pathDateSearch.FindString(base)
}
