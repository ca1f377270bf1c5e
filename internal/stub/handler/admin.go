package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/dependencies/clock"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/storage"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/apierr"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/request"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/response"
)

// AdminHandler handles the administrator endpoints
type AdminHandler struct {
	storage storage.Storage
	clock   clock.Clock
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(storage storage.Storage, clock clock.Clock) *AdminHandler {
	return &AdminHandler{
		storage: storage,
		clock:   clock,
	}
}

// Players handles GET /api/admin/players
func (h *AdminHandler) Players(w http.ResponseWriter, r *http.Request) {
	players, err := h.storage.ListPlayers(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, players)
}

// Roles handles GET /api/admin/roles
func (h *AdminHandler) Roles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.storage.ListRoles(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	out := make([]response.RoleInfo, 0, len(roles))
	for _, role := range roles {
		out = append(out, response.RoleInfo{ID: role.ID, Name: string(role.Name)})
	}

	response.JSON(w, http.StatusOK, out)
}

// AssignRole handles POST /api/admin/players/{id}/roles/{roleId}
func (h *AdminHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	player, role, err := h.playerAndRole(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if !player.HasRole(role.Name) {
		player.Roles = append(player.Roles, role.Name)
		if err := h.storage.SavePlayer(r.Context(), player); err != nil {
			apierr.WriteError(w, err)
			return
		}
	}

	response.JSON(w, http.StatusOK, player)
}

// RemoveRole handles DELETE /api/admin/players/{id}/roles/{roleId}
func (h *AdminHandler) RemoveRole(w http.ResponseWriter, r *http.Request) {
	player, role, err := h.playerAndRole(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	kept := player.Roles[:0]
	for _, have := range player.Roles {
		if have != role.Name {
			kept = append(kept, have)
		}
	}
	player.Roles = kept

	if err := h.storage.SavePlayer(r.Context(), player); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, player)
}

// UpdateGold handles PUT /api/admin/characters/{id}/gold
func (h *AdminHandler) UpdateGold(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateGoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Gold < 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("gold must be 0 or greater"))
		return
	}

	h.updateCharacter(w, r, func(ch *model.Character) {
		ch.Gold = req.Gold
	})
}

// UpdateExperience handles PUT /api/admin/characters/{id}/experience
func (h *AdminHandler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.XP < 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("xp must be 0 or greater"))
		return
	}

	h.updateCharacter(w, r, func(ch *model.Character) {
		ch.Experience = req.XP
	})
}

// DeleteCharacter handles DELETE /api/admin/characters/{id}
func (h *AdminHandler) DeleteCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := characterIDVar(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if _, err := h.storage.GetCharacter(r.Context(), id); err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.storage.DeleteCharacter(r.Context(), id); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// UpdateSlots handles PUT /api/admin/players/{id}/slots
func (h *AdminHandler) UpdateSlots(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.MaxSlots < model.MinPartySize || req.MaxSlots > model.MaxPartySize {
		apierr.WriteError(w, apierr.NewInvalidRequestError("maxSlots must be between 1 and 10"))
		return
	}

	player, err := h.storage.GetPlayer(r.Context(), model.PlayerID(mux.Vars(r)["id"]))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	player.MaxSlots = req.MaxSlots
	if err := h.storage.SavePlayer(r.Context(), player); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, player)
}

func (h *AdminHandler) updateCharacter(w http.ResponseWriter, r *http.Request, apply func(*model.Character)) {
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

	apply(ch)
	ch.UpdatedAt = h.clock.Now()

	if err := h.storage.SaveCharacter(r.Context(), ch); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, ch)
}

func (h *AdminHandler) playerAndRole(r *http.Request) (*model.Player, *model.RoleRecord, error) {
	vars := mux.Vars(r)

	player, err := h.storage.GetPlayer(r.Context(), model.PlayerID(vars["id"]))
	if err != nil {
		return nil, nil, err
	}

	role, err := h.storage.GetRole(r.Context(), vars["roleId"])
	if err != nil {
		return nil, nil, err
	}

	return player, role, nil
}
