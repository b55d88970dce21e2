package character

import (
	"github.com/sheetforge/sheetforge/internal/catalog"
	"github.com/sheetforge/sheetforge/internal/rulebook"
	"github.com/sheetforge/sheetforge/internal/rules"
)

// Sheet is the fully derived view of a character. Every field here is
// computed from the character record plus catalog data and is never
// persisted.
type Sheet struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Race  string `json:"race"`
	Class string `json:"class"`
	Level int    `json:"level"`

	Abilities    []AbilityBlock `json:"abilities"`
	SavingThrows []SaveBlock    `json:"saving_throws"`
	Skills       []SkillBlock   `json:"skills"`

	ProficiencyBonus  int `json:"proficiency_bonus"`
	ArmorClass        int `json:"armor_class"`
	Initiative        int `json:"initiative"`
	Speed             int `json:"speed"`
	Darkvision        int `json:"darkvision,omitempty"`
	PassivePerception int `json:"passive_perception"`

	MaxHP     int `json:"max_hp"`
	CurrentHP int `json:"current_hp"`
	HitDie    int `json:"hit_die"`
	TotalHD   int `json:"total_hd"`
	CurrentHD int `json:"current_hd"`

	Languages []string `json:"languages,omitempty"`
	Tools     []string `json:"tools,omitempty"`

	Features   []rulebook.ClassFeature `json:"features,omitempty"`
	Feats      []string                `json:"feats,omitempty"`
	Conditions []string                `json:"conditions,omitempty"`
	Defenses   []Defense               `json:"defenses,omitempty"`

	Spellcasting *SpellcastingBlock `json:"spellcasting,omitempty"`
}

type AbilityBlock struct {
	Ability  rulebook.Ability `json:"ability"`
	Score    int              `json:"score"`
	Modifier int              `json:"modifier"`
}

type SaveBlock struct {
	Ability    rulebook.Ability `json:"ability"`
	Modifier   int              `json:"modifier"`
	Proficient bool             `json:"proficient"`
}

type SkillBlock struct {
	Skill      string           `json:"skill"`
	Ability    rulebook.Ability `json:"ability"`
	Modifier   int              `json:"modifier"`
	Proficient bool             `json:"proficient"`
}

type SpellcastingBlock struct {
	Ability     rulebook.Ability `json:"ability"`
	AttackBonus int              `json:"attack_bonus"`
	SaveDC      int              `json:"save_dc"`
	Slots       []SlotBlock      `json:"slots,omitempty"`
	Known       []string         `json:"known,omitempty"`
	Prepared    []string         `json:"prepared,omitempty"`

	// Known spells with a catalog entry, grouped for display. Spells whose
	// catalog record is gone appear in Known only.
	KnownByLevel  map[int][]string    `json:"known_by_level,omitempty"`
	ByCastingTime map[string][]string `json:"by_casting_time,omitempty"`
}

type SlotBlock struct {
	Level int `json:"level"`
	Max   int `json:"max"`
	Used  int `json:"used"`
}

// BuildSheet derives the presentation sheet for a character. Stale race or
// class references degrade the affected sections instead of failing: the
// sheet always renders.
func BuildSheet(c *Character, cat *catalog.Catalog) *Sheet {
	s := &Sheet{
		ID:         c.ID,
		Name:       c.Description.Name,
		Race:       c.Race.Race,
		Class:      c.Class.Class,
		Level:      c.Game.Level,
		CurrentHP:  c.Game.CurrentHP,
		CurrentHD:  c.Game.CurrentHD,
		TotalHD:    rules.HitDiceTotal(c.Game.Level),
		Languages:  c.Languages(),
		Tools:      c.Tools(),
		Feats:      append([]string(nil), c.Game.Feats...),
		Conditions: append([]string(nil), c.Game.Conditions...),
		Defenses:   append([]Defense(nil), c.Game.Defenses...),
	}

	s.ProficiencyBonus = rules.ProficiencyBonus(c.Game.Level)

	scores := make(map[rulebook.Ability]int, len(rulebook.Abilities))
	for _, a := range rulebook.Abilities {
		score := c.AbilityScore(a)
		scores[a] = score
		s.Abilities = append(s.Abilities, AbilityBlock{
			Ability:  a,
			Score:    score,
			Modifier: rules.AbilityModifier(score),
		})
	}

	class, haveClass := cat.Class(c.Class.Class)

	for _, a := range rulebook.Abilities {
		proficient := haveClass && containsAbility(class.SavingThrows, a)
		s.SavingThrows = append(s.SavingThrows, SaveBlock{
			Ability:    a,
			Modifier:   rules.SavingThrowModifier(scores[a], c.Game.Level, proficient),
			Proficient: proficient,
		})
	}

	for _, sk := range rulebook.Skills {
		proficient := c.HasSkillProficiency(sk.Name)
		mod := rules.SkillModifier(scores[sk.Ability], c.Game.Level, proficient)
		s.Skills = append(s.Skills, SkillBlock{
			Skill:      sk.Name,
			Ability:    sk.Ability,
			Modifier:   mod,
			Proficient: proficient,
		})
		if sk.Name == "Perception" {
			s.PassivePerception = 10 + mod
		}
	}

	dexMod := rules.AbilityModifier(scores[rulebook.AbilityDexterity])
	s.Initiative = dexMod
	s.ArmorClass = armorClass(c, cat, dexMod)

	if haveClass {
		s.HitDie = class.HitDie
		conMod := rules.AbilityModifier(scores[rulebook.AbilityConstitution])
		s.MaxHP = rules.MaxHP(c.Game.Level, class.HitDie, conMod)
		s.Features = class.FeaturesAt(c.Class.Subclass, c.Game.Level)
		s.Spellcasting = spellcastingBlock(c, cat, class, scores)
	}

	if race, ok := cat.Race(c.Race.Race); ok {
		s.Speed = rules.Speed(race, c.Race.Subrace)
		s.Darkvision = rules.Darkvision(race, c.Race.Subrace)
	}

	return s
}

func armorClass(c *Character, cat *catalog.Catalog, dexMod int) int {
	if c.Equipment.EquippedArmor == "" {
		ac := rules.UnarmoredAC(dexMod)
		if c.Equipment.Shield {
			ac += 2
		}
		return ac
	}
	item, ok := cat.Item(c.Equipment.EquippedArmor)
	if !ok || item.Armor == nil {
		ac := rules.UnarmoredAC(dexMod)
		if c.Equipment.Shield {
			ac += 2
		}
		return ac
	}
	return rules.ArmoredAC(item.Armor, dexMod, c.Equipment.Shield)
}

func spellcastingBlock(c *Character, cat *catalog.Catalog, class *rulebook.Class, scores map[rulebook.Ability]int) *SpellcastingBlock {
	casting := rules.CastingSource(class, c.Class.Subclass)
	if casting == nil {
		return nil
	}

	score := scores[casting.Ability]
	block := &SpellcastingBlock{
		Ability:     casting.Ability,
		AttackBonus: rules.SpellAttackBonus(c.Game.Level, score),
		SaveDC:      rules.SpellSaveDC(c.Game.Level, score),
		Known:       append([]string(nil), c.Game.Spells.Known...),
		Prepared:    append([]string(nil), c.Game.Spells.Prepared...),
	}

	var resolved []*rulebook.Spell
	for _, name := range c.Game.Spells.Known {
		if sp, ok := cat.Spell(name); ok {
			resolved = append(resolved, sp)
		}
	}
	if len(resolved) > 0 {
		block.KnownByLevel = spellNames(rules.PartitionSpellsByLevel(resolved))
		block.ByCastingTime = spellNames(rules.PartitionSpellsByCastingTime(resolved))
	}

	slots := rules.SpellSlots(class, c.Class.Subclass, c.Game.Level)
	for level := 1; level <= 9; level++ {
		max, ok := slots[level]
		if !ok || max == 0 {
			continue
		}
		block.Slots = append(block.Slots, SlotBlock{
			Level: level,
			Max:   max,
			Used:  c.Game.SpellSlotsUsed[level],
		})
	}
	return block
}

func spellNames[K comparable](groups map[K][]*rulebook.Spell) map[K][]string {
	names := make(map[K][]string, len(groups))
	for key, spells := range groups {
		for _, sp := range spells {
			names[key] = append(names[key], sp.Name)
		}
	}
	return names
}

func containsAbility(list []rulebook.Ability, a rulebook.Ability) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}
