// Package character holds the character aggregate and the pure rules that
// transform it. Standard grant fields are snapshotted from the catalog when
// the character is created and never edited directly; chosen fields hold the
// player's validated picks. Derived statistics (proficiency bonus, spell
// slots, modifiers) are never stored on the record: they are recomputed from
// level and scores on every read.
package character

import (
	"strings"
	"time"

	"github.com/sheetforge/sheetforge/internal/rulebook"
)

type Character struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Race        RaceData        `json:"race_data"`
	Class       ClassData       `json:"class_data"`
	Description DescriptionData `json:"description_data"`
	Equipment   EquipmentData   `json:"equipment_data"`
	Game        GameData        `json:"game_data"`
	Misc        MiscData        `json:"misc_data"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Grants holds proficiency and bonus lists. The same shape serves both the
// standard (catalog-derived) and chosen (player-selected) subsets.
type Grants struct {
	Languages      []string                `json:"languages,omitempty"`
	Skills         []string                `json:"skills,omitempty"`
	Tools          []string                `json:"tools,omitempty"`
	AbilityBonuses []rulebook.AbilityBonus `json:"ability_bonuses,omitempty"`
}

type RaceData struct {
	Race     string `json:"race"`
	Subrace  string `json:"subrace,omitempty"`
	Standard Grants `json:"standard"`
	Chosen   Grants `json:"chosen"`
}

// RollMethod records how the base ability scores were generated
type RollMethod string

const (
	RollMethodStandardArray RollMethod = "standard_array"
	RollMethodPointBuy      RollMethod = "point_buy"
	RollMethodRolled        RollMethod = "rolled"
)

// AbilityAssignment keeps the base scores separate from adjustments so the
// total can always be rebuilt: base + racial standard + racial chosen +
// custom.
type AbilityAssignment struct {
	Method RollMethod              `json:"method"`
	Base   map[rulebook.Ability]int `json:"base"`
	Custom map[rulebook.Ability]int `json:"custom,omitempty"`
}

type ClassData struct {
	Class     string            `json:"class"`
	Subclass  string            `json:"subclass,omitempty"`
	Abilities AbilityAssignment `json:"abilities"`
	Standard  Grants            `json:"standard"`
	Chosen    Grants            `json:"chosen"`
}

type DescriptionData struct {
	Name       string `json:"name"`
	Alignment  string `json:"alignment,omitempty"`
	Age        string `json:"age,omitempty"`
	Height     string `json:"height,omitempty"`
	Weight     string `json:"weight,omitempty"`
	Eyes       string `json:"eyes,omitempty"`
	Skin       string `json:"skin,omitempty"`
	Hair       string `json:"hair,omitempty"`
	Backstory  string `json:"backstory,omitempty"`
	Background string `json:"background,omitempty"`
	Standard   Grants `json:"standard"`
	Chosen     Grants `json:"chosen"`
}

// EquipmentData lists owned item names. Duplicates are allowed: the same
// name appearing twice means two copies.
type EquipmentData struct {
	Items         []string `json:"items,omitempty"`
	EquippedArmor string   `json:"equipped_armor,omitempty"`
	Shield        bool     `json:"shield,omitempty"`
}

type GameData struct {
	Level          int         `json:"level"`
	CurrentHP      int         `json:"current_hp"`
	CurrentHD      int         `json:"current_hd"`
	SpellSlotsUsed map[int]int `json:"spell_slots_used,omitempty"`
	Spells         SpellData   `json:"spells"`
	Feats          []string    `json:"feats,omitempty"`
	Conditions     []string    `json:"conditions,omitempty"`
	Defenses       []Defense   `json:"defenses,omitempty"`
	Extras         []Extra     `json:"extras,omitempty"`
	CustomSkills   []string    `json:"custom_skills,omitempty"`
}

type SpellData struct {
	Known    []string `json:"known,omitempty"`
	Prepared []string `json:"prepared,omitempty"`
}

// DefenseType is immunity, resistance, or vulnerability
type DefenseType string

const (
	DefenseImmunity      DefenseType = "immunity"
	DefenseResistance    DefenseType = "resistance"
	DefenseVulnerability DefenseType = "vulnerability"
)

// Defense pairs a defense type with a damage-or-condition name
type Defense struct {
	Type DefenseType `json:"type"`
	Name string      `json:"name"`
}

// Extra is a user-curated bookmark of a reference entry
type Extra struct {
	ID         string `json:"id"`
	Collection string `json:"collection"`
	Name       string `json:"name"`
	Rating     int    `json:"rating,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type MiscData struct {
	Notes []Note `json:"notes,omitempty"`
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// AbilityScore is the total for one ability: base score plus racial standard
// and chosen bonuses plus any custom adjustment
func (c *Character) AbilityScore(a rulebook.Ability) int {
	score := c.Class.Abilities.Base[a]
	for _, b := range c.Race.Standard.AbilityBonuses {
		if b.Ability == a {
			score += b.Bonus
		}
	}
	for _, b := range c.Race.Chosen.AbilityBonuses {
		if b.Ability == a {
			score += b.Bonus
		}
	}
	score += c.Class.Abilities.Custom[a]
	return score
}

// grantedSkills aggregates skill proficiencies from race, class, and
// background grants, excluding user-toggled custom proficiencies
func (c *Character) grantedSkills() []string {
	var skills []string
	skills = append(skills, c.Race.Standard.Skills...)
	skills = append(skills, c.Race.Chosen.Skills...)
	skills = append(skills, c.Class.Standard.Skills...)
	skills = append(skills, c.Class.Chosen.Skills...)
	skills = append(skills, c.Description.Standard.Skills...)
	skills = append(skills, c.Description.Chosen.Skills...)
	return skills
}

// HasGrantedSkillProficiency reports a skill proficiency granted by race,
// class, or background. Custom toggles do not count.
func (c *Character) HasGrantedSkillProficiency(skill string) bool {
	return containsFold(c.grantedSkills(), skill)
}

// HasSkillProficiency reports proficiency from any source, including the
// user-toggled custom list
func (c *Character) HasSkillProficiency(skill string) bool {
	return c.HasGrantedSkillProficiency(skill) || containsFold(c.Game.CustomSkills, skill)
}

// Languages aggregates granted and chosen languages without duplicates
func (c *Character) Languages() []string {
	return dedupeFold(
		c.Race.Standard.Languages, c.Race.Chosen.Languages,
		c.Class.Standard.Languages, c.Class.Chosen.Languages,
		c.Description.Standard.Languages, c.Description.Chosen.Languages,
	)
}

// Tools aggregates granted and chosen tool proficiencies without duplicates
func (c *Character) Tools() []string {
	return dedupeFold(
		c.Race.Standard.Tools, c.Race.Chosen.Tools,
		c.Class.Standard.Tools, c.Class.Chosen.Tools,
		c.Description.Standard.Tools, c.Description.Chosen.Tools,
	)
}

func containsFold(list []string, value string) bool {
	for _, v := range list {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

func dedupeFold(lists ...[]string) []string {
	var result []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, v := range list {
			key := strings.ToLower(v)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, v)
		}
	}
	return result
}
