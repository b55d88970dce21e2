package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sheetforge/sheetforge/internal/catalog"
	"github.com/sheetforge/sheetforge/internal/character"
	dnderr "github.com/sheetforge/sheetforge/internal/errors"
	"github.com/sheetforge/sheetforge/internal/rulebook"
	charservice "github.com/sheetforge/sheetforge/internal/services/character"
)

// Handler serves the character builder REST API
type Handler struct {
	characterSvc charservice.Service
	catalog      *catalog.Catalog

	// filterSources hides non-core content from catalog listings
	filterSources bool
}

// NewHandler creates a new API handler with the required dependencies
func NewHandler(characterSvc charservice.Service, cat *catalog.Catalog, filterSources bool) *Handler {
	return &Handler{
		characterSvc:  characterSvc,
		catalog:       cat,
		filterSources: filterSources,
	}
}

// createCharacterRequest is the wire form of a character build submission
type createCharacterRequest struct {
	OwnerID    string `json:"owner_id"`
	Name       string `json:"name"`
	Race       string `json:"race"`
	Subrace    string `json:"subrace,omitempty"`
	Class      string `json:"class"`
	Subclass   string `json:"subclass,omitempty"`
	Background string `json:"background,omitempty"`

	RollMethod string         `json:"roll_method"`
	BaseScores map[string]int `json:"base_scores,omitempty"`

	RaceSelections       []character.Selection `json:"race_selections,omitempty"`
	ClassSelections      []character.Selection `json:"class_selections,omitempty"`
	BackgroundSelections []character.Selection `json:"background_selections,omitempty"`
}

// CreateCharacter builds and persists a new character.
// POST /characters
func (h *Handler) CreateCharacter(c echo.Context) error {
	var req createCharacterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	scores := make(map[rulebook.Ability]int, len(req.BaseScores))
	for name, score := range req.BaseScores {
		ability, ok := rulebook.ParseAbility(name)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown ability "+name)
		}
		scores[ability] = score
	}

	out, err := h.characterSvc.CreateCharacter(c.Request().Context(), &charservice.CreateCharacterInput{
		OwnerID:              req.OwnerID,
		Name:                 req.Name,
		Race:                 req.Race,
		Subrace:              req.Subrace,
		Class:                req.Class,
		Subclass:             req.Subclass,
		Background:           req.Background,
		RollMethod:           character.RollMethod(req.RollMethod),
		BaseScores:           scores,
		RaceSelections:       req.RaceSelections,
		ClassSelections:      req.ClassSelections,
		BackgroundSelections: req.BackgroundSelections,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, out.Character)
}

// GetCharacter returns a stored character record.
// GET /characters/:id
func (h *Handler) GetCharacter(c echo.Context) error {
	char, err := h.characterSvc.GetCharacter(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, char)
}

// ListCharacters returns all characters belonging to an owner.
// GET /characters?owner_id=...
func (h *Handler) ListCharacters(c echo.Context) error {
	ownerID := c.QueryParam("owner_id")
	chars, err := h.characterSvc.ListCharacters(c.Request().Context(), ownerID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  chars,
		"total": len(chars),
	})
}

// UpdateCharacter applies a named action to a character.
// PATCH /characters/:id
func (h *Handler) UpdateCharacter(c echo.Context) error {
	action, err := ParseAction(c.Request().Body)
	if err != nil {
		if dnderr.IsInvalidArgument(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	char, err := h.characterSvc.UpdateCharacter(c.Request().Context(), c.Param("id"), action)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, char)
}

// GetSheet returns the derived character sheet.
// GET /characters/:id/sheet
func (h *Handler) GetSheet(c echo.Context) error {
	sheet, err := h.characterSvc.GetSheet(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sheet)
}

// DeleteCharacter removes a character.
// DELETE /characters/:id
func (h *Handler) DeleteCharacter(c echo.Context) error {
	if err := h.characterSvc.DeleteCharacter(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetCatalog lists one reference collection, filtered to the allowed
// sources.
// GET /catalog/:collection
func (h *Handler) GetCatalog(c echo.Context) error {
	var data any
	switch strings.ToLower(c.Param("collection")) {
	case "races":
		data = h.catalog.Races(h.filterSources)
	case "classes":
		data = h.catalog.Classes(h.filterSources)
	case "backgrounds":
		data = h.catalog.Backgrounds(h.filterSources)
	case "feats":
		data = h.catalog.Feats(h.filterSources)
	case "items":
		data = h.catalog.Items(h.filterSources)
	case "spells":
		data = h.catalog.Spells(h.filterSources)
	case "actions":
		data = h.catalog.Actions(h.filterSources)
	case "conditions":
		data = h.catalog.Conditions(h.filterSources)
	case "languages":
		data = h.catalog.Languages(h.filterSources)
	default:
		return echo.NewHTTPError(http.StatusNotFound, "unknown collection")
	}
	return c.JSON(http.StatusOK, data)
}

// httpError maps coded service errors onto HTTP statuses
func httpError(err error) error {
	switch dnderr.GetCode(err) {
	case dnderr.CodeNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case dnderr.CodeInvalidArgument, dnderr.CodeValidation:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case dnderr.CodeAlreadyExists:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		log.Printf("internal error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
