package rulebook

// ItemKind tags the item variant; exactly one of Weapon/Armor is set for
// the weapon and armor kinds, neither for gear
type ItemKind string

const (
	ItemKindWeapon ItemKind = "weapon"
	ItemKindArmor  ItemKind = "armor"
	ItemKindGear   ItemKind = "gear"
)

type Item struct {
	Name        string      `json:"name"`
	Source      string      `json:"source"`
	Kind        ItemKind    `json:"kind"`
	Weapon      *WeaponInfo `json:"weapon,omitempty"`
	Armor       *ArmorInfo  `json:"armor,omitempty"`
	Weight      float64     `json:"weight,omitempty"`
	Cost        string      `json:"cost,omitempty"`
	Description string      `json:"description,omitempty"`
}

type WeaponInfo struct {
	Category   string   `json:"category"` // "simple" or "martial"
	Damage     string   `json:"damage"`   // e.g. "1d8"
	DamageType string   `json:"damage_type"`
	Range      string   `json:"range,omitempty"`
	Properties []string `json:"properties,omitempty"`
}

type ArmorInfo struct {
	Category            string `json:"category"` // "light", "medium", "heavy", "shield"
	BaseAC              int    `json:"base_ac"`
	DexBonus            bool   `json:"dex_bonus"`
	MaxDexBonus         int    `json:"max_dex_bonus,omitempty"` // 0 = uncapped
	StrMinimum          int    `json:"str_minimum,omitempty"`
	StealthDisadvantage bool   `json:"stealth_disadvantage,omitempty"`
}

// IsShield reports whether the item is a shield
func (i *Item) IsShield() bool {
	return i.Kind == ItemKindArmor && i.Armor != nil && i.Armor.Category == "shield"
}
