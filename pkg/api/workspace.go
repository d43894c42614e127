package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"journaldb/pkg/logger"
	"journaldb/pkg/models"
	"journaldb/pkg/utils"
	"journaldb/pkg/validation"
	"journaldb/pkg/workspace"
)

type workspacePatchBody struct {
	Messages []models.ChatMessage `json:"messages"`
	Cards    []models.Card        `json:"cards"`
}

// getWorkspace handles GET /v1/workspace/{date}. A date with no stored
// workspace returns the empty defaults without persisting them.
func (a *API) getWorkspace(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if err := validation.ValidateDate(date); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	ws, err := a.Workspace.Load(date)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ws == nil {
		ws = &models.WorkspaceState{Date: date, Messages: []models.ChatMessage{}, Cards: []models.Card{}}
	}
	_ = utils.JSONWrite(w, http.StatusOK, ws)
}

// patchWorkspace handles PATCH /v1/workspace/{date}. Present arrays
// replace the stored ones wholesale.
func (a *API) patchWorkspace(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if err := validation.ValidateDate(date); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	var body workspacePatchBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	for _, m := range body.Messages {
		if err := validation.ValidateChatRole(m.Role); err != nil {
			utils.JSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	ws, err := a.Workspace.Merge(date, workspace.Patch{Messages: body.Messages, Cards: body.Cards})
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logger.Info("workspace_merged", "date", date, "messages", len(ws.Messages))
	_ = utils.JSONWrite(w, http.StatusOK, ws)
}

// clearWorkspace handles DELETE /v1/workspace/{date}. The record is
// removed entirely; the next read starts fresh.
func (a *API) clearWorkspace(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if err := validation.ValidateDate(date); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.Workspace.Clear(date); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logger.Info("workspace_cleared", "date", date)
	w.WriteHeader(http.StatusNoContent)
}
