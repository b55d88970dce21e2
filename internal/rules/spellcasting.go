package rules

import (
	"strings"

	"github.com/sheetforge/sheetforge/internal/rulebook"
)

// CastingSource returns the spellcasting progression that applies to a
// class/subclass pair: the subclass's own progression wins when it grants
// one (e.g. an Eldritch Knight fighter), else the class's. Nil for
// non-casters.
func CastingSource(class *rulebook.Class, subclassName string) *rulebook.Spellcasting {
	if class == nil {
		return nil
	}
	if sub, ok := class.Subclass(subclassName); ok && sub.Spellcasting != nil {
		return sub.Spellcasting
	}
	return class.Spellcasting
}

// SpellSlots returns the slot counts per spell level (1-9) at a character
// level. The map is empty for non-casters and for levels with no table row:
// callers treat "no entry" as zero slots, never as an error.
func SpellSlots(class *rulebook.Class, subclassName string, level int) map[int]int {
	slots := make(map[int]int)

	casting := CastingSource(class, subclassName)
	if casting == nil {
		return slots
	}

	row, ok := casting.SlotsAt(level)
	if !ok {
		return slots
	}

	for i, count := range row {
		slots[i+1] = count
	}
	return slots
}

// SpellAttackBonus is proficiency bonus plus the casting ability modifier
func SpellAttackBonus(level, castingScore int) int {
	return ProficiencyBonus(level) + AbilityModifier(castingScore)
}

// SpellSaveDC is 8 plus the spell attack bonus
func SpellSaveDC(level, castingScore int) int {
	return 8 + SpellAttackBonus(level, castingScore)
}

// PartitionSpellsByLevel groups spells by declared spell level
func PartitionSpellsByLevel(spells []*rulebook.Spell) map[int][]*rulebook.Spell {
	byLevel := make(map[int][]*rulebook.Spell)
	for _, s := range spells {
		if s == nil {
			continue
		}
		byLevel[s.Level] = append(byLevel[s.Level], s)
	}
	return byLevel
}

// PartitionSpellsByCastingTime groups spells by casting-time tag for the
// actions display ("action", "bonus", "reaction"). Pure group-by: any tag
// the data declares becomes a bucket.
func PartitionSpellsByCastingTime(spells []*rulebook.Spell) map[string][]*rulebook.Spell {
	byTime := make(map[string][]*rulebook.Spell)
	for _, s := range spells {
		if s == nil {
			continue
		}
		tag := strings.ToLower(strings.TrimSpace(s.CastingTime))
		byTime[tag] = append(byTime[tag], s)
	}
	return byTime
}
