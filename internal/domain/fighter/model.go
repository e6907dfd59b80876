package fighter

import "strings"

// Fighter is an athlete as first sighted inside an event payload. Fields are
// refreshed on every later sighting; the newest non-empty value wins.
type Fighter struct {
	ID          string `json:"id" validate:"required"`
	DisplayName string `json:"display_name" validate:"required"`
	Nickname    string `json:"nickname,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Merge applies a later sighting on top of f. Empty incoming optional
// fields keep the stored value.
func (f Fighter) Merge(next Fighter) Fighter {
	out := f
	out.ID = firstNonEmpty(next.ID, f.ID)
	out.DisplayName = firstNonEmpty(next.DisplayName, f.DisplayName)
	out.Nickname = firstNonEmpty(next.Nickname, f.Nickname)
	out.Country = firstNonEmpty(next.Country, f.Country)
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
