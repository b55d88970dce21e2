package catalog

import (
	dnderr "github.com/sheetforge/sheetforge/internal/errors"
	"github.com/sheetforge/sheetforge/internal/rulebook"
)

// validateCollections checks content shape once at load so use sites can
// trust the typed entities instead of re-checking everywhere.
func validateCollections(col *Collections) error {
	for i := range col.Classes {
		cl := &col.Classes[i]
		if cl.HitDie < 4 || cl.HitDie > 12 {
			return dnderr.Validationf("classes: %q has invalid hit die %d", cl.Name, cl.HitDie)
		}
		if err := validateGrants("class", cl.Name, &cl.Grants); err != nil {
			return err
		}
		if cl.Spellcasting != nil && cl.Spellcasting.Ability == rulebook.AbilityNone {
			return dnderr.Validationf("classes: %q grants spellcasting without a casting ability", cl.Name)
		}
	}

	for i := range col.Races {
		r := &col.Races[i]
		if r.Speed <= 0 {
			return dnderr.Validationf("races: %q has invalid speed %d", r.Name, r.Speed)
		}
		if err := validateGrants("race", r.Name, &r.Grants); err != nil {
			return err
		}
		for j := range r.Subraces {
			if err := validateGrants("subrace", r.Subraces[j].Name, &r.Subraces[j].Grants); err != nil {
				return err
			}
		}
	}

	for i := range col.Backgrounds {
		if err := validateGrants("background", col.Backgrounds[i].Name, &col.Backgrounds[i].Grants); err != nil {
			return err
		}
	}

	for i := range col.Spells {
		s := &col.Spells[i]
		if s.Level < 0 || s.Level > 9 {
			return dnderr.Validationf("spells: %q has invalid level %d", s.Name, s.Level)
		}
	}

	for i := range col.Items {
		it := &col.Items[i]
		switch it.Kind {
		case rulebook.ItemKindWeapon:
			if it.Weapon == nil {
				return dnderr.Validationf("items: weapon %q is missing weapon info", it.Name)
			}
		case rulebook.ItemKindArmor:
			if it.Armor == nil {
				return dnderr.Validationf("items: armor %q is missing armor info", it.Name)
			}
		case rulebook.ItemKindGear:
		default:
			return dnderr.Validationf("items: %q has unknown kind %q", it.Name, it.Kind)
		}
	}

	return nil
}

func validateGrants(kind, name string, g *rulebook.GrantSet) error {
	for _, choice := range g.Choices {
		if choice.Choose < 1 {
			return dnderr.Validationf("%s %q: choice %q must choose at least 1", kind, name, choice.Name)
		}
		// A mixed block is answered as two independent choices after the
		// skill/tool split, so the primary pool alone must cover the count.
		if len(choice.From) > 0 && len(choice.From) < choice.Choose {
			return dnderr.Validationf("%s %q: choice %q asks for %d picks from %d options",
				kind, name, choice.Name, choice.Choose, len(choice.From))
		}
		if len(choice.From) == 0 && len(choice.ToolFrom) < choice.Choose {
			return dnderr.Validationf("%s %q: choice %q asks for %d picks from %d tool options",
				kind, name, choice.Name, choice.Choose, len(choice.ToolFrom))
		}
	}
	return nil
}
