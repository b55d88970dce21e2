package rulebook

// CastingTime tags group spells and actions for display ("action",
// "bonus", "reaction", "minute", ...)
type Spell struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	Level       int      `json:"level"` // 0 = cantrip
	School      string   `json:"school,omitempty"`
	CastingTime string   `json:"casting_time"`
	Range       string   `json:"range,omitempty"`
	Components  []string `json:"components,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Classes     []string `json:"classes,omitempty"`
	Description string   `json:"description,omitempty"`
}
