package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetforge/sheetforge/internal/character"
	"github.com/sheetforge/sheetforge/internal/rulebook"
	"github.com/sheetforge/sheetforge/internal/testutils"
)

func TestAbilityScoreStacksAllSources(t *testing.T) {
	c := testutils.CreateTestCharacter("char-1", "owner-1", "Brun")
	// base 15, racial standard +2
	assert.Equal(t, 17, c.AbilityScore(rulebook.AbilityStrength))

	c.Race.Chosen.AbilityBonuses = []rulebook.AbilityBonus{
		{Ability: rulebook.AbilityStrength, Bonus: 1},
	}
	c.Class.Abilities.Custom = map[rulebook.Ability]int{
		rulebook.AbilityStrength: 1,
	}
	assert.Equal(t, 19, c.AbilityScore(rulebook.AbilityStrength))

	assert.Equal(t, 13, c.AbilityScore(rulebook.AbilityDexterity), "untouched abilities keep their base")
}

func TestLanguagesAndToolsDeduplicate(t *testing.T) {
	c := testutils.CreateTestCharacter("char-1", "owner-1", "Brun")
	c.Race.Standard.Languages = []string{"Common", "Dwarvish"}
	c.Description.Chosen.Languages = []string{"common", "Elvish"}
	c.Class.Standard.Tools = []string{"Smith's Tools"}
	c.Description.Standard.Tools = []string{"smith's tools"}

	assert.Equal(t, []string{"Common", "Dwarvish", "Elvish"}, c.Languages())
	assert.Equal(t, []string{"Smith's Tools"}, c.Tools())
}

func TestHasSkillProficiency(t *testing.T) {
	c := testutils.CreateTestCharacter("char-1", "owner-1", "Brun")

	assert.True(t, c.HasSkillProficiency("athletics"), "chosen class skill")
	assert.False(t, c.HasSkillProficiency("Stealth"))

	c.Game.CustomSkills = []string{"Stealth"}
	assert.True(t, c.HasSkillProficiency("Stealth"))
	assert.False(t, c.HasGrantedSkillProficiency("Stealth"), "custom skills are not grants")
}

func TestClone(t *testing.T) {
	c := testutils.CreateTestCharacter("char-1", "owner-1", "Brun")
	c.Game.SpellSlotsUsed = map[int]int{1: 2}
	c.Misc.Notes = []character.Note{{ID: "note-1", Title: "A"}}

	clone := c.Clone()
	require.Equal(t, *c, clone)

	clone.Equipment.Items[0] = "Swapped"
	clone.Game.SpellSlotsUsed[1] = 9
	clone.Misc.Notes[0].Title = "B"
	clone.Class.Abilities.Base[rulebook.AbilityStrength] = 3

	assert.Equal(t, "Chain Shirt", c.Equipment.Items[0])
	assert.Equal(t, 2, c.Game.SpellSlotsUsed[1])
	assert.Equal(t, "A", c.Misc.Notes[0].Title)
	assert.Equal(t, 15, c.Class.Abilities.Base[rulebook.AbilityStrength])
}
