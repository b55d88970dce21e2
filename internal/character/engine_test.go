package character_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/sheetforge/sheetforge/internal/character"
	dnderr "github.com/sheetforge/sheetforge/internal/errors"
	"github.com/sheetforge/sheetforge/internal/rulebook"
	"github.com/sheetforge/sheetforge/internal/testutils"
	mockuuid "github.com/sheetforge/sheetforge/internal/uuid/mocks"
)

type EngineTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	mockIDs *mockuuid.MockGenerator
	engine  *character.Engine
	now     time.Time
}

func (s *EngineTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockIDs = mockuuid.NewMockGenerator(s.ctrl)
	s.now = time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)

	cat, err := testutils.CreateTestCatalog()
	s.Require().NoError(err)

	s.engine, err = character.NewEngine(&character.EngineConfig{
		Catalog:     cat,
		IDGenerator: s.mockIDs,
		Now:         func() time.Time { return s.now },
	})
	s.Require().NoError(err)
}

func (s *EngineTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) char() character.Character {
	return *testutils.CreateTestCharacter("char-1", "owner-1", "Brun")
}

func (s *EngineTestSuite) caster() character.Character {
	c := s.char()
	c.Class.Class = "Sage"
	c.Game.Spells.Known = []string{"Glimmer Bolt"}
	return c
}

func (s *EngineTestSuite) TestApplyDoesNotMutateInput() {
	before := s.char()
	before.Game.CurrentHP = 10

	_, err := s.engine.Apply(before, character.SetHP{Type: character.HPChangeDamage, Amount: 5})
	s.Require().NoError(err)

	s.Equal(10, before.Game.CurrentHP)
}

func (s *EngineTestSuite) TestApplyReturnsInputUnchangedOnError() {
	before := s.char()
	got, err := s.engine.Apply(before, character.UseSpellSlot{Level: 12})
	s.Require().Error(err)
	s.Equal(before, got)
}

func (s *EngineTestSuite) TestLevelUp() {
	c := s.char()
	// level 3 Warden, con 14: 28 max HP, +8 per level
	next, err := s.engine.Apply(c, character.LevelUp{})
	s.Require().NoError(err)

	s.Equal(4, next.Game.Level)
	s.Equal(36, next.Game.CurrentHP, "gained hit points apply immediately")
	s.Equal(4, next.Game.CurrentHD)
	s.Equal(s.now, next.UpdatedAt)
}

func (s *EngineTestSuite) TestLevelUpCapsAtTwenty() {
	c := s.char()
	c.Game.Level = 20

	_, err := s.engine.Apply(c, character.LevelUp{})
	s.Require().Error(err)
	s.True(dnderr.IsValidation(err))
}

func (s *EngineTestSuite) TestLongRest() {
	c := s.caster()
	c.Game.Level = 3
	c.Game.CurrentHP = 5
	c.Game.CurrentHD = 1
	c.Game.SpellSlotsUsed = map[int]int{1: 3}

	next, err := s.engine.Apply(c, character.LongRest{})
	s.Require().NoError(err)

	// level 3 Sage, con 14: 6+2 + 2*(4+2) = 20
	s.Equal(20, next.Game.CurrentHP)
	s.Empty(next.Game.SpellSlotsUsed)
	s.Equal(1, next.Game.CurrentHD, "long rests do not restore hit dice")
}

func (s *EngineTestSuite) TestExpendHitDie() {
	c := s.char()
	c.Game.CurrentHD = 1

	next, err := s.engine.Apply(c, character.ExpendHitDie{})
	s.Require().NoError(err)
	s.Equal(0, next.Game.CurrentHD)

	_, err = s.engine.Apply(next, character.ExpendHitDie{})
	s.Require().Error(err)
	s.True(dnderr.IsValidation(err))
}

func (s *EngineTestSuite) TestUseSpellSlot() {
	c := s.caster()
	// level 3 Sage: 4 first-level, 2 second-level slots

	next, err := s.engine.Apply(c, character.UseSpellSlot{Level: 2})
	s.Require().NoError(err)
	s.Equal(1, next.Game.SpellSlotsUsed[2])

	next, err = s.engine.Apply(next, character.UseSpellSlot{Level: 2})
	s.Require().NoError(err)

	_, err = s.engine.Apply(next, character.UseSpellSlot{Level: 2})
	s.Require().Error(err, "no slots left at that level")
	s.True(dnderr.IsValidation(err))
}

func (s *EngineTestSuite) TestUseSpellSlotNonCaster() {
	_, err := s.engine.Apply(s.char(), character.UseSpellSlot{Level: 1})
	s.Require().Error(err)
}

func (s *EngineTestSuite) TestSetHPClamps() {
	c := s.char()
	c.Game.CurrentHP = 20

	healed, err := s.engine.Apply(c, character.SetHP{Type: character.HPChangeHeal, Amount: 100})
	s.Require().NoError(err)
	s.Equal(28, healed.Game.CurrentHP, "healing clamps to max")

	damaged, err := s.engine.Apply(c, character.SetHP{Type: character.HPChangeDamage, Amount: 100})
	s.Require().NoError(err)
	s.Equal(0, damaged.Game.CurrentHP, "damage clamps to zero")

	_, err = s.engine.Apply(c, character.SetHP{Type: "drain", Amount: 5})
	s.Require().Error(err)
}

func (s *EngineTestSuite) TestItemLifecycle() {
	c := s.char()

	next, err := s.engine.Apply(c, character.AddItem{Name: "Rope"})
	s.Require().NoError(err)
	s.Equal([]string{"Chain Shirt", "Rope", "Rope"}, next.Equipment.Items, "duplicates are allowed")

	next, err = s.engine.Apply(next, character.RemoveItem{Name: "rope"})
	s.Require().NoError(err)
	s.Equal([]string{"Chain Shirt", "Rope"}, next.Equipment.Items)

	// removing an absent item is a no-op
	next, err = s.engine.Apply(next, character.RemoveItem{Name: "Lantern"})
	s.Require().NoError(err)
	s.Len(next.Equipment.Items, 2)
}

func (s *EngineTestSuite) TestEquip() {
	c := s.char()

	next, err := s.engine.Apply(c, character.EquipItem{Name: "Chain Shirt"})
	s.Require().NoError(err)
	s.Equal("Chain Shirt", next.Equipment.EquippedArmor)

	_, err = s.engine.Apply(c, character.EquipItem{Name: "Rope"})
	s.Require().Error(err, "gear is not wearable")

	_, err = s.engine.Apply(c, character.EquipItem{Name: "Shield"})
	s.Require().Error(err, "shield must be carried first")

	next, err = s.engine.Apply(next, character.AddItem{Name: "Shield"})
	s.Require().NoError(err)
	next, err = s.engine.Apply(next, character.EquipItem{Name: "Shield"})
	s.Require().NoError(err)
	s.True(next.Equipment.Shield)

	next, err = s.engine.Apply(next, character.UnequipItem{Name: "Shield"})
	s.Require().NoError(err)
	s.False(next.Equipment.Shield)
	s.Equal("Chain Shirt", next.Equipment.EquippedArmor)

	// removing the last copy of equipped armor unequips it
	next, err = s.engine.Apply(next, character.RemoveItem{Name: "Chain Shirt"})
	s.Require().NoError(err)
	s.Empty(next.Equipment.EquippedArmor)
}

func (s *EngineTestSuite) TestDefenses() {
	c := s.char()
	fire := character.Defense{Type: character.DefenseResistance, Name: "Fire"}

	next, err := s.engine.Apply(c, character.AddDefense{Defense: fire})
	s.Require().NoError(err)
	s.Len(next.Game.Defenses, 1)

	// adding the same defense twice is a no-op
	next, err = s.engine.Apply(next, character.AddDefense{Defense: fire})
	s.Require().NoError(err)
	s.Len(next.Game.Defenses, 1)

	next, err = s.engine.Apply(next, character.RemoveDefense{Defense: fire})
	s.Require().NoError(err)
	s.Empty(next.Game.Defenses)

	// removing an absent defense is a no-op
	next, err = s.engine.Apply(next, character.RemoveDefense{Defense: fire})
	s.Require().NoError(err)
	s.Empty(next.Game.Defenses)

	_, err = s.engine.Apply(c, character.AddDefense{Defense: character.Defense{Type: "weakness", Name: "Cold"}})
	s.Require().Error(err)
}

func (s *EngineTestSuite) TestNotes() {
	s.mockIDs.EXPECT().New().Return("note-1")

	c := s.char()
	next, err := s.engine.Apply(c, character.AddNote{Title: "Session 1", Body: "Met the baron"})
	s.Require().NoError(err)
	s.Require().Len(next.Misc.Notes, 1)
	s.Equal("note-1", next.Misc.Notes[0].ID)
	s.Equal(s.now, next.Misc.Notes[0].CreatedAt)

	next, err = s.engine.Apply(next, character.UpdateNote{Note: character.Note{
		ID:    "note-1",
		Title: "Session 1",
		Body:  "Met and fled the baron",
	}})
	s.Require().NoError(err)
	s.Equal("Met and fled the baron", next.Misc.Notes[0].Body)
	s.Equal(s.now, next.Misc.Notes[0].CreatedAt, "updates preserve creation time")

	_, err = s.engine.Apply(next, character.UpdateNote{Note: character.Note{ID: "missing"}})
	s.Require().Error(err)
	s.True(dnderr.IsNotFound(err))

	next, err = s.engine.Apply(next, character.RemoveNote{ID: "note-1"})
	s.Require().NoError(err)
	s.Empty(next.Misc.Notes)

	// idempotent removal
	_, err = s.engine.Apply(next, character.RemoveNote{ID: "note-1"})
	s.Require().NoError(err)
}

func (s *EngineTestSuite) TestExtras() {
	s.mockIDs.EXPECT().New().Return("extra-1")

	next, err := s.engine.Apply(s.char(), character.AddExtra{
		Collection: "spells",
		Name:       "Glimmer Bolt",
		Rating:     5,
	})
	s.Require().NoError(err)
	s.Require().Len(next.Game.Extras, 1)
	s.Equal("extra-1", next.Game.Extras[0].ID)
	s.Equal("Glimmer Bolt", next.Game.Extras[0].Name)

	next, err = s.engine.Apply(next, character.RemoveExtra{ID: "extra-1"})
	s.Require().NoError(err)
	s.Empty(next.Game.Extras)
}

func (s *EngineTestSuite) TestSpellBookkeeping() {
	c := s.caster()

	next, err := s.engine.Apply(c, character.PrepareSpell{Name: "glimmer bolt"})
	s.Require().NoError(err)
	s.Len(next.Game.Spells.Prepared, 1)

	_, err = s.engine.Apply(c, character.PrepareSpell{Name: "Fireball"})
	s.Require().Error(err, "only known spells can be prepared")

	next, err = s.engine.Apply(next, character.ForgetSpell{Name: "Glimmer Bolt"})
	s.Require().NoError(err)
	s.Empty(next.Game.Spells.Known)
	s.Empty(next.Game.Spells.Prepared, "forgetting unprepares")
}

func (s *EngineTestSuite) TestSetAbilityBonus() {
	c := s.char()
	base := c.AbilityScore(rulebook.AbilityDexterity)

	next, err := s.engine.Apply(c, character.SetAbilityBonus{Ability: rulebook.AbilityDexterity, Bonus: 2})
	s.Require().NoError(err)
	s.Equal(base+2, next.AbilityScore(rulebook.AbilityDexterity))
	s.Equal(base, c.AbilityScore(rulebook.AbilityDexterity), "input record keeps its scores")

	next, err = s.engine.Apply(next, character.SetAbilityBonus{Ability: rulebook.AbilityDexterity, Bonus: 0})
	s.Require().NoError(err)
	s.Equal(base, next.AbilityScore(rulebook.AbilityDexterity), "zero clears the adjustment")

	_, err = s.engine.Apply(c, character.SetAbilityBonus{Ability: "luck", Bonus: 1})
	s.Require().Error(err)
}

func (s *EngineTestSuite) TestToggleCustomSkill() {
	c := s.char()

	next, err := s.engine.Apply(c, character.ToggleCustomSkill{Skill: "Stealth", Proficient: true})
	s.Require().NoError(err)
	s.True(next.HasSkillProficiency("Stealth"))

	next, err = s.engine.Apply(next, character.ToggleCustomSkill{Skill: "Stealth", Proficient: false})
	s.Require().NoError(err)
	s.False(next.HasSkillProficiency("Stealth"))

	_, err = s.engine.Apply(c, character.ToggleCustomSkill{Skill: "Athletics", Proficient: false})
	s.Require().Error(err, "granted proficiencies cannot be toggled off")

	_, err = s.engine.Apply(c, character.ToggleCustomSkill{Skill: "Juggling", Proficient: true})
	s.Require().Error(err)
}

func (s *EngineTestSuite) TestSetChosenProficiencies() {
	c := s.char()

	next, err := s.engine.Apply(c, character.SetChosenProficiencies{
		Source: character.GrantSourceClass,
		Selections: []character.Selection{
			{Choice: "Skill Proficiencies", Picked: []string{"Intimidation", "Survival"}},
		},
	})
	s.Require().NoError(err)
	s.Equal([]string{"Intimidation", "Survival"}, next.Class.Chosen.Skills)

	_, err = s.engine.Apply(c, character.SetChosenProficiencies{
		Source: character.GrantSourceClass,
		Selections: []character.Selection{
			{Choice: "Skill Proficiencies", Picked: []string{"Arcana", "Survival"}},
		},
	})
	s.Require().Error(err)

	_, err = s.engine.Apply(c, character.SetChosenProficiencies{Source: "feat"})
	s.Require().Error(err)
}

func (s *EngineTestSuite) TestConditionsAndFeats() {
	c := s.char()

	next, err := s.engine.Apply(c, character.AddCondition{Name: "Prone"})
	s.Require().NoError(err)
	next, err = s.engine.Apply(next, character.AddCondition{Name: "prone"})
	s.Require().NoError(err)
	s.Len(next.Game.Conditions, 1, "conditions do not stack")

	next, err = s.engine.Apply(next, character.RemoveCondition{Name: "PRONE"})
	s.Require().NoError(err)
	s.Empty(next.Game.Conditions)

	next, err = s.engine.Apply(next, character.AddFeat{Name: "Alert"})
	s.Require().NoError(err)
	s.Equal([]string{"Alert"}, next.Game.Feats)
}

func (s *EngineTestSuite) TestRejectsNilAndUnknownActions() {
	_, err := s.engine.Apply(s.char(), nil)
	s.Require().Error(err)
}

func (s *EngineTestSuite) TestRaceChoicesIncludeSubrace() {
	c := s.char()
	// Mountain Folk has no published choices, so an empty selection passes
	next, err := s.engine.Apply(c, character.SetChosenProficiencies{
		Source: character.GrantSourceRace,
	})
	s.Require().NoError(err)
	s.Empty(next.Race.Chosen.Skills)
}
