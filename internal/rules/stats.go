// Package rules holds the pure derivation functions for character
// statistics. Everything here is deterministic and side-effect free, cheap
// enough to recompute on every read: derived values are never stored, so
// they can never drift from the level and scores they derive from.
package rules

import "github.com/sheetforge/sheetforge/internal/rulebook"

// AbilityModifier returns floor((score-10)/2). Integer division in Go
// truncates toward zero, which is wrong for odd scores below 10 (a score of
// 9 is -1, not 0), so this floors explicitly.
func AbilityModifier(score int) int {
	return floorDiv(score-10, 2)
}

// ProficiencyBonus derives the proficiency bonus from character level
func ProficiencyBonus(level int) int {
	if level <= 0 {
		return 2
	}
	return ceilDiv(level, 4) + 1
}

// SavingThrowModifier is the ability modifier plus proficiency bonus when
// the class grants proficiency in that save
func SavingThrowModifier(score, level int, proficient bool) int {
	mod := AbilityModifier(score)
	if proficient {
		mod += ProficiencyBonus(level)
	}
	return mod
}

// SkillModifier follows the same pattern as saving throws
func SkillModifier(score, level int, proficient bool) int {
	return SavingThrowModifier(score, level, proficient)
}

// MaxHP uses the average-roll convention: level 1 contributes the full die
// plus the Constitution modifier, each further level the rounded-up average.
func MaxHP(level, hitDie, conMod int) int {
	if level < 1 || hitDie < 1 {
		return 0
	}
	hp := hitDie + conMod
	perLevel := ceilDiv(1+hitDie, 2) + conMod
	return hp + (level-1)*perLevel
}

// HitDiceTotal is one die per level
func HitDiceTotal(level int) int {
	if level < 1 {
		return 0
	}
	return level
}

// UnarmoredAC is the baseline when no armor is equipped
func UnarmoredAC(dexMod int) int {
	return 10 + dexMod
}

// ArmoredAC applies the equipped armor's base, its capped Dex bonus, and a
// shield if carried
func ArmoredAC(armor *rulebook.ArmorInfo, dexMod int, shield bool) int {
	ac := UnarmoredAC(dexMod)
	if armor != nil {
		ac = armor.BaseAC
		if armor.DexBonus {
			bonus := dexMod
			if armor.MaxDexBonus > 0 && bonus > armor.MaxDexBonus {
				bonus = armor.MaxDexBonus
			}
			ac += bonus
		}
	}
	if shield {
		ac += 2
	}
	return ac
}

// Speed returns the subrace value when it provides one, else the race value
func Speed(race *rulebook.Race, subraceName string) int {
	if race == nil {
		return 0
	}
	if sub, ok := race.Subrace(subraceName); ok && sub.Speed > 0 {
		return sub.Speed
	}
	return race.Speed
}

// Darkvision returns the subrace value when it provides one, else the race value
func Darkvision(race *rulebook.Race, subraceName string) int {
	if race == nil {
		return 0
	}
	if sub, ok := race.Subrace(subraceName); ok && sub.Darkvision > 0 {
		return sub.Darkvision
	}
	return race.Darkvision
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ceilDiv divides rounding up; callers only pass positive operands
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
