package rulebook

import "strings"

type Race struct {
	Name       string    `json:"name"`
	Source     string    `json:"source"`
	Speed      int       `json:"speed"`
	Darkvision int       `json:"darkvision,omitempty"`
	Grants     GrantSet  `json:"grants"`
	Subraces   []Subrace `json:"subraces,omitempty"`
}

// Subrace refines a race. Zero Speed/Darkvision means the race value applies.
type Subrace struct {
	Name       string   `json:"name"`
	Speed      int      `json:"speed,omitempty"`
	Darkvision int      `json:"darkvision,omitempty"`
	Grants     GrantSet `json:"grants"`
}

// Subrace finds a subrace by name, case-insensitive
func (r *Race) Subrace(name string) (*Subrace, bool) {
	for i := range r.Subraces {
		if strings.EqualFold(r.Subraces[i].Name, name) {
			return &r.Subraces[i], true
		}
	}
	return nil, false
}
