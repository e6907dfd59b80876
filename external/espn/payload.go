package espn

import "strings"

type scoreboardEnvelope struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Status struct {
		Type struct {
			Completed bool   `json:"completed"`
			State     string `json:"state"`
		} `json:"type"`
	} `json:"status"`
	Competitions []struct {
		Venue venue `json:"venue"`
	} `json:"competitions"`
}

type venue struct {
	FullName string `json:"fullName"`
	Address  struct {
		City    string `json:"city"`
		Country string `json:"country"`
	} `json:"address"`
}

type summaryEnvelope struct {
	Name         string               `json:"name"`
	Header       summaryHeader        `json:"header"`
	Competitions []summaryCompetition `json:"competitions"`
	Notes        []note               `json:"notes"`
	Boxscore     struct {
		Competitors []boxscoreCompetitor `json:"competitors"`
	} `json:"boxscore"`
}

// Live summaries nest competitions under header; older payloads keep them
// at the top level.
type summaryHeader struct {
	Name         string               `json:"name"`
	Competitions []summaryCompetition `json:"competitions"`
}

type summaryCompetition struct {
	Competitors []competitor `json:"competitors"`
	Notes       []note       `json:"notes"`
}

type competitor struct {
	ID      string  `json:"id"`
	Winner  bool    `json:"winner"`
	Athlete athlete `json:"athlete"`
}

type athlete struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	FullName    string `json:"fullName"`
	Nickname    string `json:"nickname"`
	Flag        struct {
		Alt string `json:"alt"`
	} `json:"flag"`
}

type note struct {
	Headline string `json:"headline"`
	Text     string `json:"text"`
}

func (n note) content() string {
	return firstNonEmpty(n.Headline, n.Text)
}

type boxscoreCompetitor struct {
	Athlete    athlete     `json:"athlete"`
	Statistics []statistic `json:"statistics"`
}

type statistic struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	DisplayValue string `json:"displayValue"`
}

func (s summaryEnvelope) competition() (summaryCompetition, bool) {
	if len(s.Competitions) > 0 {
		return s.Competitions[0], true
	}
	if len(s.Header.Competitions) > 0 {
		return s.Header.Competitions[0], true
	}
	return summaryCompetition{}, false
}

func (c competitor) fighterID() string {
	return firstNonEmpty(c.Athlete.ID, c.ID)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
