package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/apierr"
)

// characterIDVar parses the {id} path variable as a character id
func characterIDVar(r *http.Request, name string) (model.CharacterID, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apierr.NewInvalidRequestError("invalid character id")
	}
	return model.CharacterID(id), nil
}

// sessionIDVar parses the {id} path variable as a session id
func sessionIDVar(r *http.Request, name string) (model.SessionID, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apierr.NewInvalidRequestError("invalid session id")
	}
	return model.SessionID(id), nil
}
