package rulebook

type Background struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	Grants      GrantSet `json:"grants"`
	Feature     string   `json:"feature,omitempty"`
	Description string   `json:"description,omitempty"`
}

type Feat struct {
	Name         string `json:"name"`
	Source       string `json:"source"`
	Prerequisite string `json:"prerequisite,omitempty"`
	Description  string `json:"description,omitempty"`
}

type Action struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Time        string `json:"time"` // casting-time tag: "action", "bonus", "reaction"
	Description string `json:"description,omitempty"`
}

type Condition struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Description string `json:"description,omitempty"`
}

type Language struct {
	Name    string `json:"name"`
	Source  string `json:"source"`
	Script  string `json:"script,omitempty"`
	Typical string `json:"typical,omitempty"`
}
