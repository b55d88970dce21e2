package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetforge/sheetforge/internal/character"
	dnderr "github.com/sheetforge/sheetforge/internal/errors"
	"github.com/sheetforge/sheetforge/internal/rulebook"
)

func TestResolveStandard(t *testing.T) {
	grants := rulebook.GrantSet{
		Languages: []string{"Common", "Dwarvish"},
		Skills:    []string{"Perception"},
		AbilityBonuses: []rulebook.AbilityBonus{
			{Ability: rulebook.AbilityConstitution, Bonus: 2},
		},
		Choices: []rulebook.Choice{
			{Name: "Extra Skill", Kind: rulebook.ChoiceKindSkill, Choose: 1, From: []string{"Athletics"}},
		},
	}

	std := character.ResolveStandard(grants)
	assert.Equal(t, []string{"Common", "Dwarvish"}, std.Languages)
	assert.Equal(t, []string{"Perception"}, std.Skills)
	require.Len(t, std.AbilityBonuses, 1)
	assert.Empty(t, std.Tools, "choices never leak into standard grants")
}

func TestSplitChoices(t *testing.T) {
	grants := rulebook.GrantSet{
		Choices: []rulebook.Choice{
			{
				Name:     "Artisan Training",
				Choose:   1,
				From:     []string{"Athletics", "History"},
				ToolFrom: []string{"Smith's Tools", "Mason's Tools"},
			},
		},
	}

	choices := character.SplitChoices(grants)
	require.Len(t, choices, 2)

	assert.Equal(t, rulebook.ChoiceKindSkill, choices[0].Kind, "untagged primary choices default to skills")
	assert.Equal(t, []string{"Athletics", "History"}, choices[0].From)
	assert.Empty(t, choices[0].ToolFrom)

	assert.Equal(t, "Artisan Training (tools)", choices[1].Name)
	assert.Equal(t, rulebook.ChoiceKindTool, choices[1].Kind)
	assert.Equal(t, 1, choices[1].Choose)
	assert.Equal(t, []string{"Smith's Tools", "Mason's Tools"}, choices[1].From)
}

func TestSplitChoicesToolCountCapped(t *testing.T) {
	grants := rulebook.GrantSet{
		Choices: []rulebook.Choice{
			{
				Name:     "Field Training",
				Choose:   2,
				From:     []string{"Athletics", "History", "Survival"},
				ToolFrom: []string{"Cartographer's Tools"},
			},
		},
	}

	choices := character.SplitChoices(grants)
	require.Len(t, choices, 2)
	assert.Equal(t, 2, choices[0].Choose)
	assert.Equal(t, 1, choices[1].Choose, "tool sub-choice never asks for more picks than it has options")

	require.NoError(t, character.ValidateSelection(choices[1], []string{"Cartographer's Tools"}))
}

func TestValidateSelection(t *testing.T) {
	choice := rulebook.Choice{
		Name:   "Skill Proficiencies",
		Kind:   rulebook.ChoiceKindSkill,
		Choose: 2,
		From:   []string{"Athletics", "Intimidation", "Perception", "Survival"},
	}

	tests := []struct {
		name    string
		picked  []string
		wantErr bool
	}{
		{"valid picks", []string{"Athletics", "Perception"}, false},
		{"case-insensitive membership", []string{"athletics", "SURVIVAL"}, false},
		{"too few", []string{"Athletics"}, true},
		{"too many", []string{"Athletics", "Perception", "Survival"}, true},
		{"duplicate pick", []string{"Athletics", "athletics"}, true},
		{"outside the allowed set", []string{"Athletics", "Arcana"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := character.ValidateSelection(choice, tt.picked)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dnderr.IsValidation(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestResolveChosen(t *testing.T) {
	grants := rulebook.GrantSet{
		Choices: []rulebook.Choice{
			{Name: "Skills", Kind: rulebook.ChoiceKindSkill, Choose: 2, From: []string{"Athletics", "Perception", "Stealth"}},
			{Name: "Versatility", Kind: rulebook.ChoiceKindAbility, Choose: 2, Bonus: 1, From: []string{"Strength", "Dexterity", "Wisdom"}},
		},
	}

	t.Run("all choices answered", func(t *testing.T) {
		chosen, err := character.ResolveChosen(grants, []character.Selection{
			{Choice: "Skills", Picked: []string{"Athletics", "Stealth"}},
			{Choice: "Versatility", Picked: []string{"Strength", "Wisdom"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Athletics", "Stealth"}, chosen.Skills)
		require.Len(t, chosen.AbilityBonuses, 2)
		assert.Equal(t, rulebook.AbilityBonus{Ability: rulebook.AbilityStrength, Bonus: 1}, chosen.AbilityBonuses[0])
	})

	t.Run("missing choice rejected", func(t *testing.T) {
		_, err := character.ResolveChosen(grants, []character.Selection{
			{Choice: "Skills", Picked: []string{"Athletics", "Stealth"}},
		})
		require.Error(t, err)
		assert.True(t, dnderr.IsValidation(err))
	})

	t.Run("unknown choice rejected", func(t *testing.T) {
		_, err := character.ResolveChosen(grants, []character.Selection{
			{Choice: "Feats", Picked: []string{"Alert"}},
		})
		require.Error(t, err)
	})

	t.Run("duplicate answer rejected", func(t *testing.T) {
		_, err := character.ResolveChosen(grants, []character.Selection{
			{Choice: "Skills", Picked: []string{"Athletics", "Stealth"}},
			{Choice: "skills", Picked: []string{"Athletics", "Perception"}},
			{Choice: "Versatility", Picked: []string{"Strength", "Wisdom"}},
		})
		require.Error(t, err)
	})

	t.Run("no choices resolves to empty grants", func(t *testing.T) {
		chosen, err := character.ResolveChosen(rulebook.GrantSet{Skills: []string{"Perception"}}, nil)
		require.NoError(t, err)
		assert.Empty(t, chosen.Skills)
	})
}

func TestCombinedGrants(t *testing.T) {
	a := rulebook.GrantSet{Languages: []string{"Common"}, Skills: []string{"Perception"}}
	b := rulebook.GrantSet{Languages: []string{"Elvish"}, Choices: []rulebook.Choice{{Name: "Extra", Choose: 1, From: []string{"Stealth"}}}}

	combined := character.CombinedGrants(a, b)
	assert.Equal(t, []string{"Common", "Elvish"}, combined.Languages)
	assert.Equal(t, []string{"Perception"}, combined.Skills)
	require.Len(t, combined.Choices, 1)
}
