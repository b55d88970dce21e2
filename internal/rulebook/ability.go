package rulebook

import "strings"

// Ability identifies one of the six ability scores
type Ability string

const (
	AbilityNone         Ability = ""
	AbilityStrength     Ability = "Str"
	AbilityDexterity    Ability = "Dex"
	AbilityConstitution Ability = "Con"
	AbilityIntelligence Ability = "Int"
	AbilityWisdom       Ability = "Wis"
	AbilityCharisma     Ability = "Cha"
)

// Abilities lists all six abilities in display order
var Abilities = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

var abilityNames = map[string]Ability{
	"str":          AbilityStrength,
	"strength":     AbilityStrength,
	"dex":          AbilityDexterity,
	"dexterity":    AbilityDexterity,
	"con":          AbilityConstitution,
	"constitution": AbilityConstitution,
	"int":          AbilityIntelligence,
	"intelligence": AbilityIntelligence,
	"wis":          AbilityWisdom,
	"wisdom":       AbilityWisdom,
	"cha":          AbilityCharisma,
	"charisma":     AbilityCharisma,
}

// ParseAbility resolves a full or abbreviated ability name, case-insensitive
func ParseAbility(name string) (Ability, bool) {
	a, ok := abilityNames[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// AbilityBonus is a flat bonus to a single ability score
type AbilityBonus struct {
	Ability Ability `json:"ability"`
	Bonus   int     `json:"bonus"`
}
