package character

import "github.com/sheetforge/sheetforge/internal/rulebook"

// Clone returns a deep copy so reducer transitions never alias the input
// record's slices and maps
func (c Character) Clone() Character {
	clone := c

	clone.Race.Standard = c.Race.Standard.clone()
	clone.Race.Chosen = c.Race.Chosen.clone()
	clone.Class.Standard = c.Class.Standard.clone()
	clone.Class.Chosen = c.Class.Chosen.clone()
	clone.Description.Standard = c.Description.Standard.clone()
	clone.Description.Chosen = c.Description.Chosen.clone()

	clone.Class.Abilities.Base = copyIntMap(c.Class.Abilities.Base)
	clone.Class.Abilities.Custom = copyIntMap(c.Class.Abilities.Custom)

	clone.Equipment.Items = append([]string(nil), c.Equipment.Items...)

	if c.Game.SpellSlotsUsed != nil {
		clone.Game.SpellSlotsUsed = make(map[int]int, len(c.Game.SpellSlotsUsed))
		for k, v := range c.Game.SpellSlotsUsed {
			clone.Game.SpellSlotsUsed[k] = v
		}
	}
	clone.Game.Spells.Known = append([]string(nil), c.Game.Spells.Known...)
	clone.Game.Spells.Prepared = append([]string(nil), c.Game.Spells.Prepared...)
	clone.Game.Feats = append([]string(nil), c.Game.Feats...)
	clone.Game.Conditions = append([]string(nil), c.Game.Conditions...)
	clone.Game.Defenses = append([]Defense(nil), c.Game.Defenses...)
	clone.Game.Extras = append([]Extra(nil), c.Game.Extras...)
	clone.Game.CustomSkills = append([]string(nil), c.Game.CustomSkills...)

	clone.Misc.Notes = append([]Note(nil), c.Misc.Notes...)

	return clone
}

func (g Grants) clone() Grants {
	return Grants{
		Languages:      append([]string(nil), g.Languages...),
		Skills:         append([]string(nil), g.Skills...),
		Tools:          append([]string(nil), g.Tools...),
		AbilityBonuses: append([]rulebook.AbilityBonus(nil), g.AbilityBonuses...),
	}
}

func copyIntMap[K comparable](m map[K]int) map[K]int {
	if m == nil {
		return nil
	}
	copied := make(map[K]int, len(m))
	for k, v := range m {
		copied[k] = v
	}
	return copied
}
