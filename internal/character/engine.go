package character

import (
	"strings"
	"time"

	"github.com/sheetforge/sheetforge/internal/catalog"
	dnderr "github.com/sheetforge/sheetforge/internal/errors"
	"github.com/sheetforge/sheetforge/internal/rulebook"
	"github.com/sheetforge/sheetforge/internal/rules"
	"github.com/sheetforge/sheetforge/internal/uuid"
)

// Engine applies actions to characters. Apply never mutates its input: the
// character is cloned before any change, so callers can safely hand the
// same record to concurrent readers.
type Engine struct {
	catalog *catalog.Catalog
	ids     uuid.Generator
	now     func() time.Time
}

type EngineConfig struct {
	Catalog     *catalog.Catalog
	IDGenerator uuid.Generator
	// Now overrides timestamping, used in tests. Defaults to time.Now.
	Now func() time.Time
}

func NewEngine(cfg *EngineConfig) (*Engine, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("config is required")
	}
	if cfg.Catalog == nil {
		return nil, dnderr.InvalidArgument("catalog is required")
	}
	if cfg.IDGenerator == nil {
		return nil, dnderr.InvalidArgument("id generator is required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		catalog: cfg.Catalog,
		ids:     cfg.IDGenerator,
		now:     now,
	}, nil
}

// Apply executes a single action against the character and returns the
// resulting state. On error the original character is returned unchanged.
func (e *Engine) Apply(c Character, action Action) (Character, error) {
	if action == nil {
		return c, dnderr.InvalidArgument("action is required")
	}

	next := c.Clone()

	var err error
	switch a := action.(type) {
	case LevelUp:
		err = e.levelUp(&next)
	case LongRest:
		err = e.longRest(&next)
	case ExpendHitDie:
		err = e.expendHitDie(&next)
	case UseSpellSlot:
		err = e.useSpellSlot(&next, a)
	case SetHP:
		err = e.setHP(&next, a)
	case AddItem:
		err = e.addItem(&next, a)
	case RemoveItem:
		err = e.removeItem(&next, a)
	case EquipItem:
		err = e.equipItem(&next, a)
	case UnequipItem:
		err = e.unequipItem(&next, a)
	case AddFeat:
		next.Game.Feats = addUniqueFold(next.Game.Feats, a.Name)
	case RemoveFeat:
		next.Game.Feats = removeFold(next.Game.Feats, a.Name)
	case AddCondition:
		next.Game.Conditions = addUniqueFold(next.Game.Conditions, a.Name)
	case RemoveCondition:
		next.Game.Conditions = removeFold(next.Game.Conditions, a.Name)
	case AddDefense:
		err = e.addDefense(&next, a)
	case RemoveDefense:
		e.removeDefense(&next, a)
	case AddNote:
		e.addNote(&next, a)
	case UpdateNote:
		err = e.updateNote(&next, a)
	case RemoveNote:
		e.removeNote(&next, a)
	case AddExtra:
		err = e.addExtra(&next, a)
	case RemoveExtra:
		e.removeExtra(&next, a)
	case LearnSpell:
		next.Game.Spells.Known = addUniqueFold(next.Game.Spells.Known, a.Name)
	case ForgetSpell:
		next.Game.Spells.Known = removeFold(next.Game.Spells.Known, a.Name)
		next.Game.Spells.Prepared = removeFold(next.Game.Spells.Prepared, a.Name)
	case PrepareSpell:
		err = e.prepareSpell(&next, a)
	case UnprepareSpell:
		next.Game.Spells.Prepared = removeFold(next.Game.Spells.Prepared, a.Name)
	case SetChosenProficiencies:
		err = e.setChosenProficiencies(&next, a)
	case SetAbilityBonus:
		err = e.setAbilityBonus(&next, a)
	case ToggleCustomSkill:
		err = e.toggleCustomSkill(&next, a)
	default:
		return c, dnderr.InvalidArgumentf("unknown action %q", action.ActionName())
	}
	if err != nil {
		return c, err
	}

	next.UpdatedAt = e.now().UTC()
	return next, nil
}

func (e *Engine) levelUp(c *Character) error {
	if c.Game.Level >= 20 {
		return dnderr.Validationf("character is already at level 20").
			WithMeta("character_id", c.ID)
	}

	oldMax := e.maxHP(c)
	c.Game.Level++
	newMax := e.maxHP(c)

	// gained hit points apply immediately
	if newMax > oldMax && oldMax > 0 {
		c.Game.CurrentHP += newMax - oldMax
	}
	if c.Game.CurrentHD < c.Game.Level {
		c.Game.CurrentHD++
	}
	return nil
}

func (e *Engine) longRest(c *Character) error {
	max := e.maxHP(c)
	if max > 0 {
		c.Game.CurrentHP = max
	}
	c.Game.SpellSlotsUsed = make(map[int]int)
	return nil
}

func (e *Engine) expendHitDie(c *Character) error {
	if c.Game.CurrentHD <= 0 {
		return dnderr.Validationf("no hit dice remaining").
			WithMeta("character_id", c.ID)
	}
	c.Game.CurrentHD--
	return nil
}

func (e *Engine) useSpellSlot(c *Character, a UseSpellSlot) error {
	if a.Level < 1 || a.Level > 9 {
		return dnderr.InvalidArgumentf("invalid spell slot level %d", a.Level)
	}

	slots := e.spellSlots(c)
	max := slots[a.Level]
	if c.Game.SpellSlotsUsed == nil {
		c.Game.SpellSlotsUsed = make(map[int]int)
	}
	if c.Game.SpellSlotsUsed[a.Level] >= max {
		return dnderr.Validationf("no level %d spell slots remaining", a.Level).
			WithMeta("character_id", c.ID)
	}
	c.Game.SpellSlotsUsed[a.Level]++
	return nil
}

func (e *Engine) setHP(c *Character, a SetHP) error {
	if a.Amount < 0 {
		return dnderr.InvalidArgument("hp amount must be non-negative")
	}

	switch a.Type {
	case HPChangeHeal:
		c.Game.CurrentHP += a.Amount
		if max := e.maxHP(c); max > 0 && c.Game.CurrentHP > max {
			c.Game.CurrentHP = max
		}
	case HPChangeDamage:
		c.Game.CurrentHP -= a.Amount
		if c.Game.CurrentHP < 0 {
			c.Game.CurrentHP = 0
		}
	default:
		return dnderr.InvalidArgumentf("unknown hp change type %q", a.Type)
	}
	return nil
}

func (e *Engine) addItem(c *Character, a AddItem) error {
	if strings.TrimSpace(a.Name) == "" {
		return dnderr.InvalidArgument("item name is required")
	}
	c.Equipment.Items = append(c.Equipment.Items, a.Name)
	return nil
}

func (e *Engine) removeItem(c *Character, a RemoveItem) error {
	for i, name := range c.Equipment.Items {
		if strings.EqualFold(name, a.Name) {
			c.Equipment.Items = append(c.Equipment.Items[:i], c.Equipment.Items[i+1:]...)
			if containsFold(c.Equipment.Items, a.Name) {
				return nil
			}
			if strings.EqualFold(c.Equipment.EquippedArmor, a.Name) {
				c.Equipment.EquippedArmor = ""
			}
			if item, ok := e.catalog.Item(a.Name); ok && item.IsShield() {
				c.Equipment.Shield = false
			}
			return nil
		}
	}
	return nil
}

func (e *Engine) equipItem(c *Character, a EquipItem) error {
	if !containsFold(c.Equipment.Items, a.Name) {
		return dnderr.Validationf("item %q is not carried", a.Name).
			WithMeta("character_id", c.ID)
	}

	item, ok := e.catalog.Item(a.Name)
	if !ok {
		return dnderr.NotFoundf("item %q not found", a.Name)
	}
	if item.Kind != rulebook.ItemKindArmor || item.Armor == nil {
		return dnderr.Validationf("item %q is not wearable", a.Name)
	}
	if item.IsShield() {
		c.Equipment.Shield = true
	} else {
		c.Equipment.EquippedArmor = item.Name
	}
	return nil
}

func (e *Engine) unequipItem(c *Character, a UnequipItem) error {
	if strings.EqualFold(c.Equipment.EquippedArmor, a.Name) {
		c.Equipment.EquippedArmor = ""
		return nil
	}
	if item, ok := e.catalog.Item(a.Name); ok && item.IsShield() {
		c.Equipment.Shield = false
	}
	return nil
}

func (e *Engine) addDefense(c *Character, a AddDefense) error {
	switch a.Defense.Type {
	case DefenseImmunity, DefenseResistance, DefenseVulnerability:
	default:
		return dnderr.InvalidArgumentf("unknown defense type %q", a.Defense.Type)
	}
	for _, d := range c.Game.Defenses {
		if d.Type == a.Defense.Type && strings.EqualFold(d.Name, a.Defense.Name) {
			return nil
		}
	}
	c.Game.Defenses = append(c.Game.Defenses, a.Defense)
	return nil
}

func (e *Engine) removeDefense(c *Character, a RemoveDefense) {
	for i, d := range c.Game.Defenses {
		if d.Type == a.Defense.Type && strings.EqualFold(d.Name, a.Defense.Name) {
			c.Game.Defenses = append(c.Game.Defenses[:i], c.Game.Defenses[i+1:]...)
			return
		}
	}
}

func (e *Engine) addNote(c *Character, a AddNote) {
	c.Misc.Notes = append(c.Misc.Notes, Note{
		ID:        e.ids.New(),
		Title:     a.Title,
		Body:      a.Body,
		CreatedAt: e.now().UTC(),
	})
}

func (e *Engine) updateNote(c *Character, a UpdateNote) error {
	for i, n := range c.Misc.Notes {
		if n.ID == a.Note.ID {
			updated := a.Note
			updated.CreatedAt = n.CreatedAt
			c.Misc.Notes[i] = updated
			return nil
		}
	}
	return dnderr.NotFoundf("note %q not found", a.Note.ID)
}

func (e *Engine) removeNote(c *Character, a RemoveNote) {
	for i, n := range c.Misc.Notes {
		if n.ID == a.ID {
			c.Misc.Notes = append(c.Misc.Notes[:i], c.Misc.Notes[i+1:]...)
			return
		}
	}
}

func (e *Engine) addExtra(c *Character, a AddExtra) error {
	if strings.TrimSpace(a.Name) == "" {
		return dnderr.InvalidArgument("extra name is required")
	}
	c.Game.Extras = append(c.Game.Extras, Extra{
		ID:         e.ids.New(),
		Collection: a.Collection,
		Name:       a.Name,
		Rating:     a.Rating,
		Notes:      a.Notes,
	})
	return nil
}

func (e *Engine) removeExtra(c *Character, a RemoveExtra) {
	for i, x := range c.Game.Extras {
		if x.ID == a.ID {
			c.Game.Extras = append(c.Game.Extras[:i], c.Game.Extras[i+1:]...)
			return
		}
	}
}

func (e *Engine) prepareSpell(c *Character, a PrepareSpell) error {
	if !containsFold(c.Game.Spells.Known, a.Name) {
		return dnderr.Validationf("spell %q is not known", a.Name).
			WithMeta("character_id", c.ID)
	}
	c.Game.Spells.Prepared = addUniqueFold(c.Game.Spells.Prepared, a.Name)
	return nil
}

func (e *Engine) setChosenProficiencies(c *Character, a SetChosenProficiencies) error {
	switch a.Source {
	case GrantSourceRace:
		race, ok := e.catalog.Race(c.Race.Race)
		if !ok {
			return dnderr.NotFoundf("race %q not found", c.Race.Race)
		}
		grants := race.Grants
		if sub, ok := race.Subrace(c.Race.Subrace); ok {
			grants = CombinedGrants(race.Grants, sub.Grants)
		}
		chosen, err := ResolveChosen(grants, a.Selections)
		if err != nil {
			return err
		}
		c.Race.Chosen = chosen
	case GrantSourceClass:
		class, ok := e.catalog.Class(c.Class.Class)
		if !ok {
			return dnderr.NotFoundf("class %q not found", c.Class.Class)
		}
		chosen, err := ResolveChosen(class.Grants, a.Selections)
		if err != nil {
			return err
		}
		c.Class.Chosen = chosen
	case GrantSourceBackground:
		bg, ok := e.catalog.Background(c.Description.Background)
		if !ok {
			return dnderr.NotFoundf("background %q not found", c.Description.Background)
		}
		chosen, err := ResolveChosen(bg.Grants, a.Selections)
		if err != nil {
			return err
		}
		c.Description.Chosen = chosen
	default:
		return dnderr.InvalidArgumentf("unknown grant source %q", a.Source)
	}
	return nil
}

func (e *Engine) setAbilityBonus(c *Character, a SetAbilityBonus) error {
	ability, ok := rulebook.ParseAbility(string(a.Ability))
	if !ok {
		return dnderr.InvalidArgumentf("unknown ability %q", a.Ability)
	}
	if a.Bonus == 0 {
		delete(c.Class.Abilities.Custom, ability)
		return nil
	}
	if c.Class.Abilities.Custom == nil {
		c.Class.Abilities.Custom = make(map[rulebook.Ability]int)
	}
	c.Class.Abilities.Custom[ability] = a.Bonus
	return nil
}

func (e *Engine) toggleCustomSkill(c *Character, a ToggleCustomSkill) error {
	if _, ok := rulebook.SkillAbility(a.Skill); !ok {
		return dnderr.InvalidArgumentf("unknown skill %q", a.Skill)
	}
	if !a.Proficient && c.HasGrantedSkillProficiency(a.Skill) {
		return dnderr.Validationf("skill %q proficiency is granted and cannot be removed", a.Skill).
			WithMeta("character_id", c.ID)
	}
	if a.Proficient {
		c.Game.CustomSkills = addUniqueFold(c.Game.CustomSkills, a.Skill)
	} else {
		c.Game.CustomSkills = removeFold(c.Game.CustomSkills, a.Skill)
	}
	return nil
}

// maxHP derives maximum hit points from the catalog's class record. Returns
// 0 when the class reference is stale so HP clamping degrades to a no-op
// rather than failing the whole action.
func (e *Engine) maxHP(c *Character) int {
	class, ok := e.catalog.Class(c.Class.Class)
	if !ok {
		return 0
	}
	conMod := rules.AbilityModifier(c.AbilityScore(rulebook.AbilityConstitution))
	return rules.MaxHP(c.Game.Level, class.HitDie, conMod)
}

func (e *Engine) spellSlots(c *Character) map[int]int {
	class, ok := e.catalog.Class(c.Class.Class)
	if !ok {
		return nil
	}
	return rules.SpellSlots(class, c.Class.Subclass, c.Game.Level)
}

func addUniqueFold(list []string, name string) []string {
	if strings.TrimSpace(name) == "" || containsFold(list, name) {
		return list
	}
	return append(list, name)
}

func removeFold(list []string, name string) []string {
	for i, s := range list {
		if strings.EqualFold(s, name) {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
