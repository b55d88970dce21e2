package rulebook

import "strings"

// Skill pairs a skill name with its governing ability
type Skill struct {
	Name    string
	Ability Ability
}

// Skills lists the eighteen skills in display order
var Skills = []Skill{
	{Name: "Acrobatics", Ability: AbilityDexterity},
	{Name: "Animal Handling", Ability: AbilityWisdom},
	{Name: "Arcana", Ability: AbilityIntelligence},
	{Name: "Athletics", Ability: AbilityStrength},
	{Name: "Deception", Ability: AbilityCharisma},
	{Name: "History", Ability: AbilityIntelligence},
	{Name: "Insight", Ability: AbilityWisdom},
	{Name: "Intimidation", Ability: AbilityCharisma},
	{Name: "Investigation", Ability: AbilityIntelligence},
	{Name: "Medicine", Ability: AbilityWisdom},
	{Name: "Nature", Ability: AbilityIntelligence},
	{Name: "Perception", Ability: AbilityWisdom},
	{Name: "Performance", Ability: AbilityCharisma},
	{Name: "Persuasion", Ability: AbilityCharisma},
	{Name: "Religion", Ability: AbilityIntelligence},
	{Name: "Sleight of Hand", Ability: AbilityDexterity},
	{Name: "Stealth", Ability: AbilityDexterity},
	{Name: "Survival", Ability: AbilityWisdom},
}

// SkillAbility returns the governing ability for a skill name, case-insensitive
func SkillAbility(name string) (Ability, bool) {
	for _, s := range Skills {
		if strings.EqualFold(s.Name, name) {
			return s.Ability, true
		}
	}
	return AbilityNone, false
}
