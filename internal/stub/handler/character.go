package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/dependencies/clock"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/storage"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/apierr"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/middleware"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/request"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/response"
)

const maxUploadBytes = 8 << 20

// CharacterHandler handles the player-facing character endpoints
type CharacterHandler struct {
	storage   storage.Storage
	clock     clock.Clock
	uploadDir string
}

// NewCharacterHandler creates a new character handler
func NewCharacterHandler(storage storage.Storage, clock clock.Clock, uploadDir string) *CharacterHandler {
	return &CharacterHandler{
		storage:   storage,
		clock:     clock,
		uploadDir: uploadDir,
	}
}

// Mine handles GET /api/characters/my
func (h *CharacterHandler) Mine(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	chars, err := h.storage.ListCharactersByPlayer(r.Context(), player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CharacterListFrom(chars))
}

// Get handles GET /api/characters/{id}
func (h *CharacterHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	response.JSON(w, http.StatusOK, ch)
}

// Create handles POST /api/characters
func (h *CharacterHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateCharacterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("name is required"))
		return
	}

	// An account only holds so many living characters at once
	existing, err := h.storage.ListCharactersByPlayer(r.Context(), player.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	active := 0
	for _, ch := range existing {
		if ch.Active() {
			active++
		}
	}
	if active >= player.MaxSlots {
		apierr.WriteError(w, model.ErrNoSlotsLeft)
		return
	}

	id, err := h.storage.NextCharacterID(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	now := h.clock.Now()
	ch := &model.Character{
		ID:         id,
		PlayerID:   player.ID,
		PlayerName: player.Username,
		Name:       req.Name,
		Status:     model.CharacterPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.storage.SaveCharacter(r.Context(), ch); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, ch)
}

// Retire handles POST /api/characters/{id}/retire
func (h *CharacterHandler) Retire(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

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
	if ch.PlayerID != player.ID {
		apierr.WriteError(w, model.ErrNotCharacterOwner)
		return
	}
	if !ch.Active() {
		apierr.WriteError(w, model.ErrCharacterNotApproved)
		return
	}

	ch.Status = model.CharacterRetired
	ch.UpdatedAt = h.clock.Now()

	if err := h.storage.SaveCharacter(r.Context(), ch); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, ch)
}

// UploadImage handles POST /api/characters/{id}/image
func (h *CharacterHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

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
	if ch.PlayerID != player.ID {
		apierr.WriteError(w, model.ErrNotCharacterOwner)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid multipart body"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("image file is required"))
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("%d-%s", ch.ID, filepath.Base(header.Filename))
	if h.uploadDir != "" {
		if err := saveUpload(h.uploadDir, filename, file); err != nil {
			apierr.WriteError(w, err)
			return
		}
	}

	ch.ImageURL = "/uploads/" + filename
	ch.UpdatedAt = h.clock.Now()

	if err := h.storage.SaveCharacter(r.Context(), ch); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, ch)
}

func saveUpload(dir, filename string, file io.Reader) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	out, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, file)
	return err
}
