package handler

import (
	"net/http"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/dependencies/clock"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/storage"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/apierr"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/response"
)

// DMHandler handles the game-master character endpoints
type DMHandler struct {
	storage storage.Storage
	clock   clock.Clock
}

// NewDMHandler creates a new DM handler
func NewDMHandler(storage storage.Storage, clock clock.Clock) *DMHandler {
	return &DMHandler{
		storage: storage,
		clock:   clock,
	}
}

// Pending handles GET /api/dm/characters/pending
func (h *DMHandler) Pending(w http.ResponseWriter, r *http.Request) {
	chars, err := h.storage.ListCharacters(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	pending := make([]*model.Character, 0)
	for _, ch := range chars {
		if ch.Status == model.CharacterPending {
			pending = append(pending, ch)
		}
	}

	response.JSON(w, http.StatusOK, response.CharacterListFrom(pending))
}

// All handles GET /api/dm/characters
func (h *DMHandler) All(w http.ResponseWriter, r *http.Request) {
	chars, err := h.storage.ListCharacters(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CharacterListFrom(chars))
}

// Approve handles POST /api/dm/characters/{id}/approve
func (h *DMHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, model.CharacterPending, model.CharacterApproved, model.ErrCharacterNotPending)
}

// Kill handles POST /api/dm/characters/{id}/kill
func (h *DMHandler) Kill(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, model.CharacterApproved, model.CharacterDead, model.ErrCharacterNotApproved)
}

// Activate handles POST /api/dm/characters/{id}/activate
func (h *DMHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, model.CharacterDead, model.CharacterApproved, model.ErrCharacterNotDead)
}

// transition moves a character between lifecycle states, rejecting the
// request when the character is not in the required state.
func (h *DMHandler) transition(w http.ResponseWriter, r *http.Request, from, to model.CharacterStatus, stateErr error) {
	id, err := characterIDVar(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	ch, err := h.storage.GetCharacter(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if ch.Status != from {
		apierr.WriteError(w, stateErr)
		return
	}

	ch.Status = to
	ch.UpdatedAt = h.clock.Now()

	if err := h.storage.SaveCharacter(r.Context(), ch); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, ch)
}
