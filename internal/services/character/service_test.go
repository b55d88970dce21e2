package character_test

import (
	"errors"

	"go.uber.org/mock/gomock"

	charEntity "github.com/sheetforge/sheetforge/internal/character"
	dnderr "github.com/sheetforge/sheetforge/internal/errors"
	"github.com/sheetforge/sheetforge/internal/rulebook"
	"github.com/sheetforge/sheetforge/internal/services/character"
	"github.com/sheetforge/sheetforge/internal/testutils"
)

func standardArrayScores() map[rulebook.Ability]int {
	return map[rulebook.Ability]int{
		rulebook.AbilityStrength:     15,
		rulebook.AbilityDexterity:    13,
		rulebook.AbilityConstitution: 14,
		rulebook.AbilityIntelligence: 8,
		rulebook.AbilityWisdom:       12,
		rulebook.AbilityCharisma:     10,
	}
}

func (s *CharacterServiceTestSuite) createInput() *character.CreateCharacterInput {
	return &character.CreateCharacterInput{
		OwnerID:    "owner-1",
		Name:       "Brun",
		Race:       "Mountain Folk",
		Class:      "Warden",
		RollMethod: charEntity.RollMethodStandardArray,
		BaseScores: standardArrayScores(),
		ClassSelections: []charEntity.Selection{
			{Choice: "Skill Proficiencies", Picked: []string{"Athletics", "Perception"}},
		},
	}
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_Success() {
	s.mockIDs.EXPECT().New().Return("char-1")

	var stored *charEntity.Character
	s.mockRepository.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ any, char *charEntity.Character) error {
			stored = char
			return nil
		})

	out, err := s.service.CreateCharacter(s.ctx, s.createInput())
	s.Require().NoError(err)
	s.Require().NotNil(out.Character)
	s.Same(stored, out.Character)

	char := out.Character
	s.Equal("char-1", char.ID)
	s.Equal("owner-1", char.OwnerID)
	s.Equal("Brun", char.Description.Name)
	s.Equal(1, char.Game.Level)
	s.Equal(1, char.Game.CurrentHD)

	// Warden d10, con 14: 12 starting HP
	s.Equal(12, char.Game.CurrentHP)

	// racial bonus snapshotted as standard
	s.Equal(17, char.AbilityScore(rulebook.AbilityStrength))
	s.Equal([]string{"Common"}, char.Race.Standard.Languages)
	s.Equal([]string{"Athletics", "Perception"}, char.Class.Chosen.Skills)
	s.Equal(s.now, char.CreatedAt)
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_RolledScores() {
	s.mockIDs.EXPECT().New().Return("char-1")
	s.mockRepository.EXPECT().Create(s.ctx, gomock.Any()).Return(nil)

	// 4d6 drop lowest per ability, six abilities
	s.roller.SetRolls([]int{
		6, 5, 4, 1, // 15
		6, 6, 6, 6, // 18
		2, 2, 2, 2, // 6
		3, 3, 3, 1, // 9
		4, 4, 4, 4, // 12
		5, 4, 3, 2, // 12
	})

	input := s.createInput()
	input.RollMethod = charEntity.RollMethodRolled
	input.BaseScores = nil

	out, err := s.service.CreateCharacter(s.ctx, input)
	s.Require().NoError(err)

	base := out.Character.Class.Abilities.Base
	s.Equal(15, base[rulebook.AbilityStrength])
	s.Equal(18, base[rulebook.AbilityDexterity])
	s.Equal(6, base[rulebook.AbilityConstitution])
	s.Equal(9, base[rulebook.AbilityIntelligence])
	s.Equal(charEntity.RollMethodRolled, out.Character.Class.Abilities.Method)
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_PointBuy() {
	s.mockIDs.EXPECT().New().Return("char-1")
	s.mockRepository.EXPECT().Create(s.ctx, gomock.Any()).Return(nil)

	input := s.createInput()
	input.RollMethod = charEntity.RollMethodPointBuy
	input.BaseScores = map[rulebook.Ability]int{
		rulebook.AbilityStrength:     15,
		rulebook.AbilityDexterity:    15,
		rulebook.AbilityConstitution: 13,
		rulebook.AbilityIntelligence: 8,
		rulebook.AbilityWisdom:       10,
		rulebook.AbilityCharisma:     10,
	}

	_, err := s.service.CreateCharacter(s.ctx, input)
	s.Require().NoError(err)
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_PointBuyOverBudget() {
	input := s.createInput()
	input.RollMethod = charEntity.RollMethodPointBuy
	input.BaseScores = map[rulebook.Ability]int{
		rulebook.AbilityStrength:     15,
		rulebook.AbilityDexterity:    15,
		rulebook.AbilityConstitution: 15,
		rulebook.AbilityIntelligence: 8,
		rulebook.AbilityWisdom:       10,
		rulebook.AbilityCharisma:     10,
	}

	_, err := s.service.CreateCharacter(s.ctx, input)
	s.Require().Error(err)
	s.True(dnderr.IsValidation(err))
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_BadStandardArray() {
	input := s.createInput()
	input.BaseScores[rulebook.AbilityStrength] = 18

	_, err := s.service.CreateCharacter(s.ctx, input)
	s.Require().Error(err)
	s.True(dnderr.IsValidation(err))
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_UnknownRace() {
	input := s.createInput()
	input.Race = "Cloud Folk"

	_, err := s.service.CreateCharacter(s.ctx, input)
	s.Require().Error(err)
	s.True(dnderr.IsNotFound(err))
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_BadSelection() {
	input := s.createInput()
	input.ClassSelections = []charEntity.Selection{
		{Choice: "Skill Proficiencies", Picked: []string{"Athletics", "Arcana"}},
	}

	_, err := s.service.CreateCharacter(s.ctx, input)
	s.Require().Error(err)
	s.True(dnderr.IsValidation(err))
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_MissingName() {
	input := s.createInput()
	input.Name = "  "

	_, err := s.service.CreateCharacter(s.ctx, input)
	s.Require().Error(err)
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *CharacterServiceTestSuite) TestGetCharacter() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "Brun")
	s.mockRepository.EXPECT().Get(s.ctx, "char-1").Return(char, nil)

	got, err := s.service.GetCharacter(s.ctx, "char-1")
	s.Require().NoError(err)
	s.Equal(char, got)
}

func (s *CharacterServiceTestSuite) TestListCharacters_SortedByName() {
	s.mockRepository.EXPECT().GetByOwner(s.ctx, "owner-1").Return([]*charEntity.Character{
		testutils.CreateTestCharacter("char-2", "owner-1", "Mira"),
		testutils.CreateTestCharacter("char-1", "owner-1", "Brun"),
	}, nil)

	chars, err := s.service.ListCharacters(s.ctx, "owner-1")
	s.Require().NoError(err)
	s.Require().Len(chars, 2)
	s.Equal("Brun", chars[0].Description.Name)
	s.Equal("Mira", chars[1].Description.Name)
}

func (s *CharacterServiceTestSuite) TestUpdateCharacter() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "Brun")
	char.Game.CurrentHP = 20

	s.mockRepository.EXPECT().Get(s.ctx, "char-1").Return(char, nil)

	var updated *charEntity.Character
	s.mockRepository.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ any, c *charEntity.Character) error {
			updated = c
			return nil
		})

	got, err := s.service.UpdateCharacter(s.ctx, "char-1", charEntity.SetHP{
		Type:   charEntity.HPChangeDamage,
		Amount: 7,
	})
	s.Require().NoError(err)
	s.Equal(13, got.Game.CurrentHP)
	s.Equal(13, updated.Game.CurrentHP)
	s.Equal(20, char.Game.CurrentHP, "input record is not mutated")
}

func (s *CharacterServiceTestSuite) TestUpdateCharacter_MissingCharacter() {
	s.mockRepository.EXPECT().
		Get(s.ctx, "ghost").
		Return(nil, dnderr.NotFoundf("character with ID 'ghost' not found"))

	_, err := s.service.UpdateCharacter(s.ctx, "ghost", charEntity.LongRest{})
	s.Require().Error(err)
	s.True(dnderr.IsNotFound(err))
}

func (s *CharacterServiceTestSuite) TestUpdateCharacter_EngineErrorSkipsWrite() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "Brun")
	char.Game.CurrentHD = 0
	s.mockRepository.EXPECT().Get(s.ctx, "char-1").Return(char, nil)

	_, err := s.service.UpdateCharacter(s.ctx, "char-1", charEntity.ExpendHitDie{})
	s.Require().Error(err)
}

func (s *CharacterServiceTestSuite) TestGetSheet() {
	char := testutils.CreateTestCharacter("char-1", "owner-1", "Brun")
	s.mockRepository.EXPECT().Get(s.ctx, "char-1").Return(char, nil)

	sheet, err := s.service.GetSheet(s.ctx, "char-1")
	s.Require().NoError(err)
	s.Equal("Brun", sheet.Name)
	s.Equal(28, sheet.MaxHP)
}

func (s *CharacterServiceTestSuite) TestDeleteCharacter() {
	s.mockRepository.EXPECT().Delete(s.ctx, "char-1").Return(nil)
	s.Require().NoError(s.service.DeleteCharacter(s.ctx, "char-1"))
}

func (s *CharacterServiceTestSuite) TestRepositoryErrorsPropagate() {
	repoErr := errors.New("connection refused")
	s.mockRepository.EXPECT().GetByOwner(s.ctx, "owner-1").Return(nil, repoErr)

	_, err := s.service.ListCharacters(s.ctx, "owner-1")
	s.Require().ErrorIs(err, repoErr)
}
