package bout

import (
	"regexp"
	"strings"

	"github.com/riskibarqy/fight-ledger/internal/platform/classify"
)

// Precedence decides which note wins when several notes carry the same kind
// of annotation.
type Precedence string

const (
	// PrecedenceLastMatch lets every matching note overwrite the previous one.
	PrecedenceLastMatch Precedence = "last"
	// PrecedenceFirstMatch keeps the first note that yields a value.
	PrecedenceFirstMatch Precedence = "first"
)

func ParsePrecedence(raw string) (Precedence, bool) {
	switch Precedence(strings.ToLower(strings.TrimSpace(raw))) {
	case PrecedenceLastMatch, "":
		return PrecedenceLastMatch, true
	case PrecedenceFirstMatch:
		return PrecedenceFirstMatch, true
	default:
		return "", false
	}
}

// MethodRules is checked in order against each note. "KO" only matches as a
// whole token so that "TKO" reaches its own rule.
var MethodRules = []classify.Rule[Method]{
	{Tag: MethodKO, Match: anyOf(classify.Word(false, "KO"), classify.Word(true, "Knockout"))},
	{Tag: MethodTKO, Match: classify.Word(false, "TKO")},
	{Tag: MethodSubmission, Match: classify.ContainsAny("submission")},
	{Tag: MethodDecision, Match: classify.ContainsAny("decision")},
}

var (
	roundPattern = regexp.MustCompile(`(?i)\bR(?:ound)?\s?(\d+)\b`)
	timePattern  = regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`)
)

// Competitor is the slice of a detail competitor the parser needs.
type Competitor struct {
	ID     string
	Winner bool
}

// Finish is what the free-text notes say about how a bout ended.
type Finish struct {
	Method        Method
	RoundFinished int
	TimeFinished  string
}

// ParseFinish scans notes for method, round, and time. The three fields are
// independent passes: one note may set all of them.
func ParseFinish(notes []string, precedence Precedence) Finish {
	out := Finish{
		Method:        DefaultMethod,
		RoundFinished: DefaultRoundFinished,
		TimeFinished:  DefaultTimeFinished,
	}
	var methodSet, roundSet, timeSet bool
	keepFirst := precedence == PrecedenceFirstMatch

	for _, note := range notes {
		if method, ok := classify.First(MethodRules, note); ok && !(keepFirst && methodSet) {
			out.Method = method
			methodSet = true
		}
		if round, ok := parseRound(note); ok && !(keepFirst && roundSet) {
			out.RoundFinished = round
			roundSet = true
		}
		if clock := timePattern.FindString(note); clock != "" && !(keepFirst && timeSet) {
			out.TimeFinished = clock
			timeSet = true
		}
	}
	return out
}

// ResolveWinner takes the first competitor flagged as winner. No flag means
// a draw or no contest.
func ResolveWinner(a, b Competitor) *string {
	switch {
	case a.Winner:
		id := a.ID
		return &id
	case b.Winner:
		id := b.ID
		return &id
	default:
		return nil
	}
}

func IsTitleFight(eventName string) bool {
	return strings.Contains(strings.ToLower(eventName), "title")
}

// BuildOutcome assembles the outcome record for an event from its two
// competitors and notes.
func BuildOutcome(eventID, eventName string, a, b Competitor, notes []string, precedence Precedence) Outcome {
	finish := ParseFinish(notes, precedence)
	return Outcome{
		EventID:       eventID,
		FighterAID:    a.ID,
		FighterBID:    b.ID,
		WinnerID:      ResolveWinner(a, b),
		Method:        finish.Method,
		RoundFinished: finish.RoundFinished,
		TimeFinished:  finish.TimeFinished,
		IsTitleFight:  IsTitleFight(eventName),
		Order:         1,
	}
}

func parseRound(note string) (int, bool) {
	match := roundPattern.FindStringSubmatch(note)
	if len(match) != 2 {
		return 0, false
	}
	round := leadingInt(match[1])
	if round <= 0 {
		return 0, false
	}
	return round, true
}

func anyOf(predicates ...classify.Predicate) classify.Predicate {
	return func(text string) bool {
		for _, p := range predicates {
			if p(text) {
				return true
			}
		}
		return false
	}
}
