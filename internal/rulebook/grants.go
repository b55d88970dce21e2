package rulebook

import (
	"encoding/json"
	"fmt"
)

// ChoiceKind tells the builder UI what a choice selects
type ChoiceKind string

const (
	ChoiceKindUnset    ChoiceKind = ""
	ChoiceKindSkill    ChoiceKind = "skill"
	ChoiceKindTool     ChoiceKind = "tool"
	ChoiceKindLanguage ChoiceKind = "language"
	ChoiceKindAbility  ChoiceKind = "ability"
)

// Choice is a "choose N from S" block published by a race, class, or
// background. The character stores the player's picks under its chosen
// fields; Choice itself carries no selection state.
type Choice struct {
	Name   string     `json:"name"`
	Kind   ChoiceKind `json:"kind"`
	Choose int        `json:"choose"`
	From   []string   `json:"from"`

	// Bonus is the per-pick bonus for ability choices (e.g. half-elf +1)
	Bonus int `json:"bonus,omitempty"`

	// ToolFrom holds tool entries that arrived nested inside a skill
	// choice's option list. They are surfaced as a separate typed tool
	// choice, never flattened into From.
	ToolFrom []string `json:"tool_from,omitempty"`
}

// UnmarshalJSON handles the heterogeneous option lists in source data: an
// entry in "from" is either a plain string or an object like
// {"tool": "Thieves' Tools"}.
func (c *Choice) UnmarshalJSON(data []byte) error {
	type Aux struct {
		Name   string            `json:"name"`
		Kind   ChoiceKind        `json:"kind"`
		Choose int               `json:"choose"`
		Bonus  int               `json:"bonus"`
		From   []json.RawMessage `json:"from"`
	}

	var aux Aux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	c.Name = aux.Name
	c.Kind = aux.Kind
	c.Choose = aux.Choose
	c.Bonus = aux.Bonus
	c.From = nil
	c.ToolFrom = nil

	for _, raw := range aux.From {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			c.From = append(c.From, s)
			continue
		}

		var obj struct {
			Tool string `json:"tool"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return fmt.Errorf("failed to unmarshal choice option: %w", err)
		}
		if obj.Tool == "" {
			return fmt.Errorf("choice %q has an option that is neither a string nor a tool reference", aux.Name)
		}
		c.ToolFrom = append(c.ToolFrom, obj.Tool)
	}

	return nil
}

// GrantSet is everything a race, class, or background confers: the
// unconditionally granted lists plus the choices it publishes.
type GrantSet struct {
	Languages      []string       `json:"languages,omitempty"`
	Skills         []string       `json:"skills,omitempty"`
	Tools          []string       `json:"tools,omitempty"`
	AbilityBonuses []AbilityBonus `json:"ability_bonuses,omitempty"`
	Choices        []Choice       `json:"choices,omitempty"`
}
