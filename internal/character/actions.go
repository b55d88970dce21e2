package character

import "github.com/sheetforge/sheetforge/internal/rulebook"

// Action is a named, parameterized state transition over a character's play
// state. The engine applies each action atomically: either the whole
// transition happens or the input record is returned unchanged with an
// error.
type Action interface {
	// ActionName is the wire name dispatched by the UI layer
	ActionName() string
}

type LevelUp struct{}

func (LevelUp) ActionName() string { return "level_up" }

type LongRest struct{}

func (LongRest) ActionName() string { return "long_rest" }

// ExpendHitDie spends one hit die during a short rest. The rolled recovery
// is applied separately via SetHP: dice execution lives outside this core.
type ExpendHitDie struct{}

func (ExpendHitDie) ActionName() string { return "expend_hit_die" }

type UseSpellSlot struct {
	Level int `json:"level"`
}

func (UseSpellSlot) ActionName() string { return "use_spell_slot" }

// HPChangeType is "heal" or "damage"
type HPChangeType string

const (
	HPChangeHeal   HPChangeType = "heal"
	HPChangeDamage HPChangeType = "damage"
)

type SetHP struct {
	Type   HPChangeType `json:"type"`
	Amount int          `json:"hp"`
}

func (SetHP) ActionName() string { return "set_hp" }

type AddItem struct {
	Name string `json:"name"`
}

func (AddItem) ActionName() string { return "add_item" }

type RemoveItem struct {
	Name string `json:"name"`
}

func (RemoveItem) ActionName() string { return "remove_item" }

type EquipItem struct {
	Name string `json:"name"`
}

func (EquipItem) ActionName() string { return "equip_item" }

type UnequipItem struct {
	Name string `json:"name"`
}

func (UnequipItem) ActionName() string { return "unequip_item" }

type AddFeat struct {
	Name string `json:"name"`
}

func (AddFeat) ActionName() string { return "add_feat" }

type RemoveFeat struct {
	Name string `json:"name"`
}

func (RemoveFeat) ActionName() string { return "remove_feat" }

type AddCondition struct {
	Name string `json:"name"`
}

func (AddCondition) ActionName() string { return "add_condition" }

type RemoveCondition struct {
	Name string `json:"name"`
}

func (RemoveCondition) ActionName() string { return "remove_condition" }

type AddDefense struct {
	Defense Defense `json:"defense"`
}

func (AddDefense) ActionName() string { return "add_defense" }

type RemoveDefense struct {
	Defense Defense `json:"defense"`
}

func (RemoveDefense) ActionName() string { return "remove_defense" }

type AddNote struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (AddNote) ActionName() string { return "add_note" }

// UpdateNote replaces the full note record matched by id
type UpdateNote struct {
	Note Note `json:"note"`
}

func (UpdateNote) ActionName() string { return "update_note" }

type RemoveNote struct {
	ID string `json:"id"`
}

func (RemoveNote) ActionName() string { return "remove_note" }

type AddExtra struct {
	Collection string `json:"collection"`
	Name       string `json:"name"`
	Rating     int    `json:"rating"`
	Notes      string `json:"notes"`
}

func (AddExtra) ActionName() string { return "add_extra" }

type RemoveExtra struct {
	ID string `json:"id"`
}

func (RemoveExtra) ActionName() string { return "remove_extra" }

type LearnSpell struct {
	Name string `json:"name"`
}

func (LearnSpell) ActionName() string { return "learn_spell" }

type ForgetSpell struct {
	Name string `json:"name"`
}

func (ForgetSpell) ActionName() string { return "forget_spell" }

type PrepareSpell struct {
	Name string `json:"name"`
}

func (PrepareSpell) ActionName() string { return "prepare_spell" }

type UnprepareSpell struct {
	Name string `json:"name"`
}

func (UnprepareSpell) ActionName() string { return "unprepare_spell" }

// GrantSource identifies which part of the character a grant came from
type GrantSource string

const (
	GrantSourceRace       GrantSource = "race"
	GrantSourceClass      GrantSource = "class"
	GrantSourceBackground GrantSource = "background"
)

// SetChosenProficiencies replaces every choice answer for one grant source.
// All of the source's published choices must be answered in the same action.
type SetChosenProficiencies struct {
	Source     GrantSource `json:"source"`
	Selections []Selection `json:"selections"`
}

func (SetChosenProficiencies) ActionName() string { return "set_chosen_proficiencies" }

// SetAbilityBonus records a manual adjustment to one ability score, such as
// an Ability Score Improvement. A bonus of zero clears the adjustment.
type SetAbilityBonus struct {
	Ability rulebook.Ability `json:"ability"`
	Bonus   int              `json:"bonus"`
}

func (SetAbilityBonus) ActionName() string { return "set_ability_bonus" }

// ToggleCustomSkill toggles a user-chosen skill proficiency. Toggling off a
// proficiency granted by race, class, or background is rejected.
type ToggleCustomSkill struct {
	Skill      string `json:"skill"`
	Proficient bool   `json:"proficient"`
}

func (ToggleCustomSkill) ActionName() string { return "toggle_custom_skill" }
