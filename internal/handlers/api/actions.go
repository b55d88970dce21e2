package api

import (
	"encoding/json"
	"io"

	"github.com/sheetforge/sheetforge/internal/character"
	dnderr "github.com/sheetforge/sheetforge/internal/errors"
)

// actionEnvelope is the wire form of a mutation request: a named action
// plus its parameters
type actionEnvelope struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ParseAction decodes a PATCH body into a typed action
func ParseAction(r io.Reader) (character.Action, error) {
	var env actionEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, dnderr.InvalidArgument("invalid action body")
	}
	if env.Action == "" {
		return nil, dnderr.InvalidArgument("action name is required")
	}

	action, ok := actionByName(env.Action)
	if !ok {
		return nil, dnderr.InvalidArgumentf("unknown action %q", env.Action)
	}

	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, action); err != nil {
			return nil, dnderr.InvalidArgumentf("invalid payload for action %q", env.Action)
		}
	}

	return deref(action), nil
}

// actionByName returns a pointer to a zero value of the named action so the
// payload can be unmarshaled into it
func actionByName(name string) (character.Action, bool) {
	switch name {
	case character.LevelUp{}.ActionName():
		return &character.LevelUp{}, true
	case character.LongRest{}.ActionName():
		return &character.LongRest{}, true
	case character.ExpendHitDie{}.ActionName(), "short_rest":
		return &character.ExpendHitDie{}, true
	case character.UseSpellSlot{}.ActionName():
		return &character.UseSpellSlot{}, true
	case character.SetHP{}.ActionName():
		return &character.SetHP{}, true
	case character.AddItem{}.ActionName():
		return &character.AddItem{}, true
	case character.RemoveItem{}.ActionName():
		return &character.RemoveItem{}, true
	case character.EquipItem{}.ActionName():
		return &character.EquipItem{}, true
	case character.UnequipItem{}.ActionName():
		return &character.UnequipItem{}, true
	case character.AddFeat{}.ActionName():
		return &character.AddFeat{}, true
	case character.RemoveFeat{}.ActionName():
		return &character.RemoveFeat{}, true
	case character.AddCondition{}.ActionName():
		return &character.AddCondition{}, true
	case character.RemoveCondition{}.ActionName():
		return &character.RemoveCondition{}, true
	case character.AddDefense{}.ActionName():
		return &character.AddDefense{}, true
	case character.RemoveDefense{}.ActionName():
		return &character.RemoveDefense{}, true
	case character.AddNote{}.ActionName():
		return &character.AddNote{}, true
	case character.UpdateNote{}.ActionName():
		return &character.UpdateNote{}, true
	case character.RemoveNote{}.ActionName():
		return &character.RemoveNote{}, true
	case character.AddExtra{}.ActionName():
		return &character.AddExtra{}, true
	case character.RemoveExtra{}.ActionName():
		return &character.RemoveExtra{}, true
	case character.LearnSpell{}.ActionName():
		return &character.LearnSpell{}, true
	case character.ForgetSpell{}.ActionName():
		return &character.ForgetSpell{}, true
	case character.PrepareSpell{}.ActionName():
		return &character.PrepareSpell{}, true
	case character.UnprepareSpell{}.ActionName():
		return &character.UnprepareSpell{}, true
	case character.SetChosenProficiencies{}.ActionName():
		return &character.SetChosenProficiencies{}, true
	case character.SetAbilityBonus{}.ActionName():
		return &character.SetAbilityBonus{}, true
	case character.ToggleCustomSkill{}.ActionName():
		return &character.ToggleCustomSkill{}, true
	default:
		return nil, false
	}
}

// deref unwraps the pointer used for unmarshaling back to the value form
// the engine dispatches on
func deref(action character.Action) character.Action {
	switch a := action.(type) {
	case *character.LevelUp:
		return *a
	case *character.LongRest:
		return *a
	case *character.ExpendHitDie:
		return *a
	case *character.UseSpellSlot:
		return *a
	case *character.SetHP:
		return *a
	case *character.AddItem:
		return *a
	case *character.RemoveItem:
		return *a
	case *character.EquipItem:
		return *a
	case *character.UnequipItem:
		return *a
	case *character.AddFeat:
		return *a
	case *character.RemoveFeat:
		return *a
	case *character.AddCondition:
		return *a
	case *character.RemoveCondition:
		return *a
	case *character.AddDefense:
		return *a
	case *character.RemoveDefense:
		return *a
	case *character.AddNote:
		return *a
	case *character.UpdateNote:
		return *a
	case *character.RemoveNote:
		return *a
	case *character.AddExtra:
		return *a
	case *character.RemoveExtra:
		return *a
	case *character.LearnSpell:
		return *a
	case *character.ForgetSpell:
		return *a
	case *character.PrepareSpell:
		return *a
	case *character.UnprepareSpell:
		return *a
	case *character.SetChosenProficiencies:
		return *a
	case *character.SetAbilityBonus:
		return *a
	case *character.ToggleCustomSkill:
		return *a
	default:
		return action
	}
}
