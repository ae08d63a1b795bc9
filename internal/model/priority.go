package model

// Priority is the dialect-independent priority tier of a task. The integer
// values form a total order: PriorityLowest < PriorityLow < PriorityDefault <
// PriorityMedium < PriorityHigh < PriorityHighest.
type Priority int

const (
	PriorityLowest Priority = iota
	PriorityLow
	PriorityDefault
	PriorityMedium
	PriorityHigh
	PriorityHighest
)

func (p Priority) IsValid() bool {
	return p >= PriorityLowest && p <= PriorityHighest
}

func (p Priority) String() string {
	if name, ok := PriorityNames[p]; ok {
		return name
	}
	return "default"
}

// PriorityKeys maps the textual priority key used by the bracket and calendar
// dialects to its tier.
var PriorityKeys = map[string]Priority{
	"lowest":  PriorityLowest,
	"low":     PriorityLow,
	"default": PriorityDefault,
	"medium":  PriorityMedium,
	"high":    PriorityHigh,
	"highest": PriorityHighest,
}

// PriorityNames is the inverse of PriorityKeys.
var PriorityNames = map[Priority]string{
	PriorityLowest:  "lowest",
	PriorityLow:     "low",
	PriorityDefault: "default",
	PriorityMedium:  "medium",
	PriorityHigh:    "high",
	PriorityHighest: "highest",
}

// SimplePriorities maps the simple dialect's trailing marker to its tier.
// Lowest and default have no simple marker.
var SimplePriorities = map[string]Priority{
	"?":   PriorityLow,
	"!":   PriorityMedium,
	"!!":  PriorityHigh,
	"!!!": PriorityHighest,
}

// SimplePriorityTokens is the inverse of SimplePriorities.
var SimplePriorityTokens = map[Priority]string{
	PriorityLow:     "?",
	PriorityMedium:  "!",
	PriorityHigh:    "!!",
	PriorityHighest: "!!!",
}
