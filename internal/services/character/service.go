package character

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sheetforge/sheetforge/internal/catalog"
	"github.com/sheetforge/sheetforge/internal/character"
	"github.com/sheetforge/sheetforge/internal/dice"
	dnderr "github.com/sheetforge/sheetforge/internal/errors"
	characterRepo "github.com/sheetforge/sheetforge/internal/repositories/characters"
	"github.com/sheetforge/sheetforge/internal/rulebook"
	"github.com/sheetforge/sheetforge/internal/rules"
	"github.com/sheetforge/sheetforge/internal/uuid"
)

// Repository is an alias for the character repository interface
type Repository = characterRepo.Repository

// Service defines the character service interface
type Service interface {
	// CreateCharacter creates a new character with the given details
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)

	// GetCharacter retrieves a character by ID
	GetCharacter(ctx context.Context, characterID string) (*character.Character, error)

	// ListCharacters lists all characters for an owner
	ListCharacters(ctx context.Context, ownerID string) ([]*character.Character, error)

	// UpdateCharacter applies a single action to a character and persists
	// the result
	UpdateCharacter(ctx context.Context, characterID string, action character.Action) (*character.Character, error)

	// GetSheet derives the full presentation sheet for a character
	GetSheet(ctx context.Context, characterID string) (*character.Sheet, error)

	// DeleteCharacter removes a character
	DeleteCharacter(ctx context.Context, characterID string) error
}

// CreateCharacterInput contains all data needed to create a character
type CreateCharacterInput struct {
	OwnerID    string
	Name       string
	Race       string
	Subrace    string
	Class      string
	Subclass   string
	Background string

	RollMethod character.RollMethod
	// BaseScores are the pre-racial ability scores. Required for standard
	// array and point buy; ignored for rolled scores.
	BaseScores map[rulebook.Ability]int

	RaceSelections       []character.Selection
	ClassSelections      []character.Selection
	BackgroundSelections []character.Selection
}

// CreateCharacterOutput contains the created character
type CreateCharacterOutput struct {
	Character *character.Character
}

// service implements the Service interface
type service struct {
	catalog       *catalog.Catalog
	engine        *character.Engine
	repository    Repository
	roller        dice.Roller
	uuidGenerator uuid.Generator
	now           func() time.Time
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Catalog       *catalog.Catalog
	Engine        *character.Engine
	Repository    Repository
	Roller        dice.Roller
	UUIDGenerator uuid.Generator
	// Now overrides timestamping, used in tests
	Now func() time.Time
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("config is required")
	}
	if cfg.Catalog == nil {
		return nil, dnderr.InvalidArgument("catalog is required")
	}
	if cfg.Engine == nil {
		return nil, dnderr.InvalidArgument("engine is required")
	}
	if cfg.Repository == nil {
		return nil, dnderr.InvalidArgument("repository is required")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &service{
		catalog:       cfg.Catalog,
		engine:        cfg.Engine,
		repository:    cfg.Repository,
		roller:        roller,
		uuidGenerator: gen,
		now:           now,
	}, nil
}

// CreateCharacter validates the build against the catalog, snapshots the
// standard grants, resolves every choice, rolls or accepts ability scores,
// and persists the finished character at level 1.
func (s *service) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}
	if input.OwnerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, dnderr.InvalidArgument("character name is required")
	}

	race, ok := s.catalog.Race(input.Race)
	if !ok {
		return nil, dnderr.NotFoundf("race %q not found", input.Race)
	}
	raceGrants := race.Grants
	if input.Subrace != "" {
		sub, ok := race.Subrace(input.Subrace)
		if !ok {
			return nil, dnderr.NotFoundf("subrace %q not found for race %q", input.Subrace, race.Name)
		}
		raceGrants = character.CombinedGrants(race.Grants, sub.Grants)
	}

	class, ok := s.catalog.Class(input.Class)
	if !ok {
		return nil, dnderr.NotFoundf("class %q not found", input.Class)
	}
	if input.Subclass != "" {
		if _, ok := class.Subclass(input.Subclass); !ok {
			return nil, dnderr.NotFoundf("subclass %q not found for class %q", input.Subclass, class.Name)
		}
	}

	var backgroundGrants rulebook.GrantSet
	if input.Background != "" {
		bg, ok := s.catalog.Background(input.Background)
		if !ok {
			return nil, dnderr.NotFoundf("background %q not found", input.Background)
		}
		backgroundGrants = bg.Grants
	}

	raceChosen, err := character.ResolveChosen(raceGrants, input.RaceSelections)
	if err != nil {
		return nil, err
	}
	classChosen, err := character.ResolveChosen(class.Grants, input.ClassSelections)
	if err != nil {
		return nil, err
	}
	var backgroundChosen character.Grants
	if input.Background != "" {
		backgroundChosen, err = character.ResolveChosen(backgroundGrants, input.BackgroundSelections)
		if err != nil {
			return nil, err
		}
	}

	scores, err := s.resolveAbilityScores(input.RollMethod, input.BaseScores)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	char := &character.Character{
		ID:      s.uuidGenerator.New(),
		OwnerID: input.OwnerID,
		Race: character.RaceData{
			Race:     race.Name,
			Subrace:  input.Subrace,
			Standard: character.ResolveStandard(raceGrants),
			Chosen:   raceChosen,
		},
		Class: character.ClassData{
			Class:    class.Name,
			Subclass: input.Subclass,
			Abilities: character.AbilityAssignment{
				Method: input.RollMethod,
				Base:   scores,
			},
			Standard: character.ResolveStandard(class.Grants),
			Chosen:   classChosen,
		},
		Description: character.DescriptionData{
			Name:       strings.TrimSpace(input.Name),
			Background: input.Background,
			Standard:   character.ResolveStandard(backgroundGrants),
			Chosen:     backgroundChosen,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	char.Game.Level = 1
	char.Game.CurrentHD = 1
	char.Game.CurrentHP = startingHP(char, class)

	if err := s.repository.Create(ctx, char); err != nil {
		return nil, err
	}

	return &CreateCharacterOutput{Character: char}, nil
}

// GetCharacter retrieves a character by ID
func (s *service) GetCharacter(ctx context.Context, characterID string) (*character.Character, error) {
	if characterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}
	return s.repository.Get(ctx, characterID)
}

// ListCharacters lists all characters for an owner, sorted by name
func (s *service) ListCharacters(ctx context.Context, ownerID string) ([]*character.Character, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	chars, err := s.repository.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	sort.Slice(chars, func(i, j int) bool {
		return chars[i].Description.Name < chars[j].Description.Name
	})
	return chars, nil
}

// UpdateCharacter reads the character, applies the action through the
// engine, and writes back the result
func (s *service) UpdateCharacter(ctx context.Context, characterID string, action character.Action) (*character.Character, error) {
	if characterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}
	if action == nil {
		return nil, dnderr.InvalidArgument("action is required")
	}

	char, err := s.repository.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}

	next, err := s.engine.Apply(*char, action)
	if err != nil {
		return nil, err
	}

	if err := s.repository.Update(ctx, &next); err != nil {
		return nil, err
	}

	return &next, nil
}

// GetSheet derives the full presentation sheet for a character
func (s *service) GetSheet(ctx context.Context, characterID string) (*character.Sheet, error) {
	char, err := s.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	return character.BuildSheet(char, s.catalog), nil
}

// DeleteCharacter removes a character
func (s *service) DeleteCharacter(ctx context.Context, characterID string) error {
	if characterID == "" {
		return dnderr.InvalidArgument("character ID is required")
	}
	return s.repository.Delete(ctx, characterID)
}

// resolveAbilityScores produces the base score assignment for the chosen
// roll method. Rolled scores use 4d6 drop lowest per ability in canonical
// order.
func (s *service) resolveAbilityScores(method character.RollMethod, base map[rulebook.Ability]int) (map[rulebook.Ability]int, error) {
	switch method {
	case character.RollMethodStandardArray:
		if err := validateStandardArray(base); err != nil {
			return nil, err
		}
		return copyScores(base), nil
	case character.RollMethodPointBuy:
		if err := validatePointBuy(base); err != nil {
			return nil, err
		}
		return copyScores(base), nil
	case character.RollMethodRolled:
		scores := make(map[rulebook.Ability]int, len(rulebook.Abilities))
		for _, a := range rulebook.Abilities {
			score, err := s.rollScore()
			if err != nil {
				return nil, err
			}
			scores[a] = score
		}
		return scores, nil
	default:
		return nil, dnderr.InvalidArgumentf("unknown roll method %q", method)
	}
}

// rollScore rolls 4d6 and keeps the highest three
func (s *service) rollScore() (int, error) {
	result, err := s.roller.Roll(4, 6, 0)
	if err != nil {
		return 0, err
	}

	lowest := result.Rolls[0]
	for _, r := range result.Rolls[1:] {
		if r < lowest {
			lowest = r
		}
	}
	return result.Total - lowest, nil
}

func copyScores(scores map[rulebook.Ability]int) map[rulebook.Ability]int {
	out := make(map[rulebook.Ability]int, len(scores))
	for a, v := range scores {
		out[a] = v
	}
	return out
}

func startingHP(char *character.Character, class *rulebook.Class) int {
	conMod := rules.AbilityModifier(char.AbilityScore(rulebook.AbilityConstitution))
	hp := rules.MaxHP(1, class.HitDie, conMod)
	if hp < 1 {
		hp = 1
	}
	return hp
}
