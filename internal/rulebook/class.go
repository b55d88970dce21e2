package rulebook

import "strings"

type Class struct {
	Name         string         `json:"name"`
	Source       string         `json:"source"`
	HitDie       int            `json:"hit_die"`
	SavingThrows []Ability      `json:"saving_throws"`
	Spellcasting *Spellcasting  `json:"spellcasting,omitempty"`
	Grants       GrantSet       `json:"grants"`
	Subclasses   []Subclass     `json:"subclasses,omitempty"`
	Features     []ClassFeature `json:"features,omitempty"`
}

// Spellcasting is a class's (or subclass's) casting progression.
// Slots is indexed by character level minus one; each row holds the slot
// counts for spell levels one through nine.
type Spellcasting struct {
	Ability Ability  `json:"ability"`
	Slots   [][9]int `json:"slots"`
}

// SlotsAt returns the slot row for a character level, or false when the
// table has no row for it (including level 0 and beyond the table).
func (s *Spellcasting) SlotsAt(level int) ([9]int, bool) {
	if s == nil || level < 1 || level > len(s.Slots) {
		return [9]int{}, false
	}
	return s.Slots[level-1], true
}

// Subclass may grant its own spellcasting (e.g. Eldritch Knight)
type Subclass struct {
	Name         string         `json:"name"`
	Spellcasting *Spellcasting  `json:"spellcasting,omitempty"`
	Grants       GrantSet       `json:"grants"`
	Features     []ClassFeature `json:"features,omitempty"`
}

type ClassFeature struct {
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Description string `json:"description,omitempty"`
}

// Subclass finds a subclass by name, case-insensitive
func (c *Class) Subclass(name string) (*Subclass, bool) {
	for i := range c.Subclasses {
		if strings.EqualFold(c.Subclasses[i].Name, name) {
			return &c.Subclasses[i], true
		}
	}
	return nil, false
}

// FeaturesAt returns the class and subclass features available at a level
func (c *Class) FeaturesAt(subclassName string, level int) []ClassFeature {
	var features []ClassFeature
	for _, f := range c.Features {
		if f.Level <= level {
			features = append(features, f)
		}
	}
	if sub, ok := c.Subclass(subclassName); ok {
		for _, f := range sub.Features {
			if f.Level <= level {
				features = append(features, f)
			}
		}
	}
	return features
}
