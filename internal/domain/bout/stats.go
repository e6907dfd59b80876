package bout

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/fight-ledger/internal/platform/classify"
)

type statKind int

const (
	statSignificantStrikes statKind = iota + 1
	statTotalStrikes
	statTakedowns
	statSubmissions
	statKnockdowns
	statControl
)

var statRules = []classify.Rule[statKind]{
	{Tag: statSignificantStrikes, Match: classify.ContainsAny("significant strikes")},
	{Tag: statTotalStrikes, Match: classify.ContainsAny("total strikes")},
	{Tag: statTakedowns, Match: classify.ContainsAny("takedowns")},
	{Tag: statSubmissions, Match: classify.ContainsAny("submission")},
	{Tag: statKnockdowns, Match: classify.ContainsAny("knockdown")},
	{Tag: statControl, Match: classify.ContainsAny("control")},
}

// StatLine is one boxscore statistic as the upstream labels it.
type StatLine struct {
	Name         string
	DisplayValue string
}

// BuildFighterStat folds boxscore lines into counters. Unknown names are
// ignored and unparsable values count as 0.
func BuildFighterStat(eventID, fighterID string, lines []StatLine) FighterStat {
	out := FighterStat{EventID: eventID, FighterID: fighterID}
	for _, line := range lines {
		kind, ok := classify.First(statRules, strings.ToLower(line.Name))
		if !ok {
			continue
		}
		switch kind {
		case statSignificantStrikes:
			out.SigStrikesLanded, out.SigStrikesAttempted = ParseLandedOf(line.DisplayValue)
		case statTotalStrikes:
			out.TotalStrikesLanded, out.TotalStrikesAttempted = ParseLandedOf(line.DisplayValue)
		case statTakedowns:
			out.TakedownsLanded, out.TakedownsAttempted = ParseLandedOf(line.DisplayValue)
		case statSubmissions:
			out.SubmissionAttempts = leadingInt(line.DisplayValue)
		case statKnockdowns:
			out.Knockdowns = leadingInt(line.DisplayValue)
		case statControl:
			out.ControlTimeSeconds = ParseClockSeconds(line.DisplayValue)
		}
	}
	return out
}

// ParseLandedOf splits "18 of 27" into landed and attempted. A value without
// " of " is read as landed only.
func ParseLandedOf(value string) (int, int) {
	parts := strings.SplitN(value, " of ", 2)
	landed := leadingInt(parts[0])
	if len(parts) < 2 {
		return landed, 0
	}
	return landed, leadingInt(parts[1])
}

// ParseClockSeconds converts "m:ss" into seconds, 0 when malformed.
func ParseClockSeconds(value string) int {
	minutes, seconds, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0
	}
	m, errM := strconv.Atoi(minutes)
	s, errS := strconv.Atoi(seconds)
	if errM != nil || errS != nil || m < 0 || s < 0 || s >= 60 {
		return 0
	}
	return m*60 + s
}

// leadingInt reads the integer prefix of value after trimming, so "27 " and
// "3 (1 reversal)" both parse. Anything else is 0.
func leadingInt(value string) int {
	value = strings.TrimSpace(value)
	end := 0
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0
	}
	return n
}
