package character

import (
	"strings"

	dnderr "github.com/sheetforge/sheetforge/internal/errors"
	"github.com/sheetforge/sheetforge/internal/rulebook"
)

// ResolveStandard returns the unconditionally granted subset of a grant
// set: the lists a race, class, or background confers without asking the
// player anything. Choice blocks are not touched, so a source with no
// choices resolves to exactly its raw lists.
func ResolveStandard(g rulebook.GrantSet) Grants {
	return Grants{
		Languages:      append([]string(nil), g.Languages...),
		Skills:         append([]string(nil), g.Skills...),
		Tools:          append([]string(nil), g.Tools...),
		AbilityBonuses: append([]rulebook.AbilityBonus(nil), g.AbilityBonuses...),
	}
}

// SplitChoices returns the typed choices a grant set publishes. A skill
// choice whose option list carried nested tool entries is split in two: the
// skill choice keeps only its skill options, and the tool entries become a
// separate tool-proficiency choice. The two kinds are never conflated. The
// tool sub-choice's count is capped at its own pool size so it stays
// answerable regardless of the parent count.
func SplitChoices(g rulebook.GrantSet) []rulebook.Choice {
	var choices []rulebook.Choice
	for _, c := range g.Choices {
		if len(c.From) > 0 {
			primary := c
			primary.ToolFrom = nil
			if primary.Kind == rulebook.ChoiceKindUnset {
				primary.Kind = rulebook.ChoiceKindSkill
			}
			choices = append(choices, primary)
		}
		if len(c.ToolFrom) > 0 {
			count := c.Choose
			if count > len(c.ToolFrom) {
				count = len(c.ToolFrom)
			}
			choices = append(choices, rulebook.Choice{
				Name:   c.Name + " (tools)",
				Kind:   rulebook.ChoiceKindTool,
				Choose: count,
				From:   append([]string(nil), c.ToolFrom...),
			})
		}
	}
	return choices
}

// Selection answers one published choice by name
type Selection struct {
	Choice string   `json:"choice"`
	Picked []string `json:"picked"`
}

// CombinedGrants flattens several grant sets into one. Used for a race and
// its subrace, whose grants stack.
func CombinedGrants(sets ...rulebook.GrantSet) rulebook.GrantSet {
	var out rulebook.GrantSet
	for _, g := range sets {
		out.Languages = append(out.Languages, g.Languages...)
		out.Skills = append(out.Skills, g.Skills...)
		out.Tools = append(out.Tools, g.Tools...)
		out.AbilityBonuses = append(out.AbilityBonuses, g.AbilityBonuses...)
		out.Choices = append(out.Choices, g.Choices...)
	}
	return out
}

// ResolveChosen validates a full set of selections against a grant set's
// published choices and materializes the picks into chosen grants. Every
// choice must be answered exactly once.
func ResolveChosen(g rulebook.GrantSet, selections []Selection) (Grants, error) {
	choices := SplitChoices(g)

	byName := make(map[string]rulebook.Choice, len(choices))
	for _, c := range choices {
		byName[strings.ToLower(c.Name)] = c
	}

	var chosen Grants
	answered := make(map[string]struct{}, len(selections))
	for _, sel := range selections {
		key := strings.ToLower(sel.Choice)
		choice, ok := byName[key]
		if !ok {
			return Grants{}, dnderr.Validationf("unknown choice %q", sel.Choice).
				WithMeta("choice", sel.Choice)
		}
		if _, dup := answered[key]; dup {
			return Grants{}, dnderr.Validationf("choice %q answered more than once", sel.Choice).
				WithMeta("choice", sel.Choice)
		}
		answered[key] = struct{}{}

		if err := ValidateSelection(choice, sel.Picked); err != nil {
			return Grants{}, err
		}

		switch choice.Kind {
		case rulebook.ChoiceKindSkill:
			chosen.Skills = append(chosen.Skills, sel.Picked...)
		case rulebook.ChoiceKindTool:
			chosen.Tools = append(chosen.Tools, sel.Picked...)
		case rulebook.ChoiceKindLanguage:
			chosen.Languages = append(chosen.Languages, sel.Picked...)
		case rulebook.ChoiceKindAbility:
			for _, pick := range sel.Picked {
				ability, ok := rulebook.ParseAbility(pick)
				if !ok {
					return Grants{}, dnderr.Validationf("%s: %q is not an ability", choice.Name, pick).
						WithMeta("choice", choice.Name)
				}
				chosen.AbilityBonuses = append(chosen.AbilityBonuses, rulebook.AbilityBonus{
					Ability: ability,
					Bonus:   choice.Bonus,
				})
			}
		}
	}

	for _, c := range choices {
		if _, ok := answered[strings.ToLower(c.Name)]; !ok {
			return Grants{}, dnderr.Validationf("choice %q requires a selection", c.Name).
				WithMeta("choice", c.Name)
		}
	}

	return chosen, nil
}

// ValidateSelection checks a submitted selection against its choice block:
// the count must match exactly, every pick must be a member of the allowed
// set, and no pick may repeat. Violations surface as validation errors and
// the character record stays untouched.
func ValidateSelection(choice rulebook.Choice, picked []string) error {
	if len(picked) != choice.Choose {
		return dnderr.Validationf("%s requires exactly %d selections, got %d",
			choice.Name, choice.Choose, len(picked)).
			WithMeta("choice", choice.Name)
	}

	seen := make(map[string]struct{}, len(picked))
	for _, pick := range picked {
		key := strings.ToLower(pick)
		if _, dup := seen[key]; dup {
			return dnderr.Validationf("%s: %q selected more than once", choice.Name, pick).
				WithMeta("choice", choice.Name)
		}
		seen[key] = struct{}{}

		if !containsFold(choice.From, pick) {
			return dnderr.Validationf("%s: %q is not an allowed option", choice.Name, pick).
				WithMeta("choice", choice.Name)
		}
	}

	return nil
}
