package testutils

import (
	"time"

	"github.com/sheetforge/sheetforge/internal/catalog"
	"github.com/sheetforge/sheetforge/internal/character"
	"github.com/sheetforge/sheetforge/internal/rulebook"
)

// CreateTestRace creates a test race entry
func CreateTestRace(name string) rulebook.Race {
	return rulebook.Race{
		Name:   name,
		Source: "PHB",
		Speed:  30,
		Grants: rulebook.GrantSet{
			Languages: []string{"Common"},
			AbilityBonuses: []rulebook.AbilityBonus{
				{Ability: rulebook.AbilityStrength, Bonus: 2},
			},
		},
	}
}

// CreateTestClass creates a test class entry with d10 hit dice and two
// skill picks
func CreateTestClass(name string) rulebook.Class {
	return rulebook.Class{
		Name:         name,
		Source:       "PHB",
		HitDie:       10,
		SavingThrows: []rulebook.Ability{rulebook.AbilityStrength, rulebook.AbilityConstitution},
		Grants: rulebook.GrantSet{
			Choices: []rulebook.Choice{
				{
					Name:   "Skill Proficiencies",
					Kind:   rulebook.ChoiceKindSkill,
					Choose: 2,
					From:   []string{"Athletics", "Intimidation", "Perception", "Survival"},
				},
			},
		},
	}
}

// CreateTestCaster creates a test class entry with wizard-style slots
func CreateTestCaster(name string) rulebook.Class {
	return rulebook.Class{
		Name:         name,
		Source:       "PHB",
		HitDie:       6,
		SavingThrows: []rulebook.Ability{rulebook.AbilityIntelligence, rulebook.AbilityWisdom},
		Spellcasting: &rulebook.Spellcasting{
			Ability: rulebook.AbilityIntelligence,
			Slots: [][9]int{
				{2, 0, 0, 0, 0, 0, 0, 0, 0},
				{3, 0, 0, 0, 0, 0, 0, 0, 0},
				{4, 2, 0, 0, 0, 0, 0, 0, 0},
				{4, 3, 0, 0, 0, 0, 0, 0, 0},
				{4, 3, 2, 0, 0, 0, 0, 0, 0},
			},
		},
	}
}

// CreateTestCatalog builds a catalog holding one race, one martial class,
// one caster class, basic armor, and a spell
func CreateTestCatalog() (*catalog.Catalog, error) {
	return catalog.New(&catalog.Config{
		Collections: catalog.Collections{
			Races:   []rulebook.Race{CreateTestRace("Mountain Folk")},
			Classes: []rulebook.Class{CreateTestClass("Warden"), CreateTestCaster("Sage")},
			Items: []rulebook.Item{
				{
					Name:   "Chain Shirt",
					Source: "PHB",
					Kind:   rulebook.ItemKindArmor,
					Armor: &rulebook.ArmorInfo{
						Category:    "medium",
						BaseAC:      13,
						DexBonus:    true,
						MaxDexBonus: 2,
					},
				},
				{
					Name:   "Shield",
					Source: "PHB",
					Kind:   rulebook.ItemKindArmor,
					Armor: &rulebook.ArmorInfo{
						Category: "shield",
						BaseAC:   2,
					},
				},
				{
					Name:   "Rope",
					Source: "PHB",
					Kind:   rulebook.ItemKindGear,
				},
			},
			Spells: []rulebook.Spell{
				{
					Name:        "Glimmer Bolt",
					Source:      "PHB",
					Level:       1,
					School:      "evocation",
					CastingTime: "action",
					Classes:     []string{"Sage"},
				},
			},
		},
		CoreSources: []string{"PHB"},
	})
}

// CreateTestCharacter creates a fully formed level 3 character
func CreateTestCharacter(id, ownerID, name string) *character.Character {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &character.Character{
		ID:      id,
		OwnerID: ownerID,
		Race: character.RaceData{
			Race: "Mountain Folk",
			Standard: character.Grants{
				Languages: []string{"Common"},
				AbilityBonuses: []rulebook.AbilityBonus{
					{Ability: rulebook.AbilityStrength, Bonus: 2},
				},
			},
		},
		Class: character.ClassData{
			Class: "Warden",
			Abilities: character.AbilityAssignment{
				Method: character.RollMethodStandardArray,
				Base: map[rulebook.Ability]int{
					rulebook.AbilityStrength:     15,
					rulebook.AbilityDexterity:    13,
					rulebook.AbilityConstitution: 14,
					rulebook.AbilityIntelligence: 8,
					rulebook.AbilityWisdom:       12,
					rulebook.AbilityCharisma:     10,
				},
			},
			Chosen: character.Grants{
				Skills: []string{"Athletics", "Perception"},
			},
		},
		Description: character.DescriptionData{
			Name: name,
		},
		Equipment: character.EquipmentData{
			Items: []string{"Chain Shirt", "Rope"},
		},
		Game: character.GameData{
			Level:     3,
			CurrentHP: 28,
			CurrentHD: 3,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
