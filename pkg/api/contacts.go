package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"journaldb/pkg/logger"
	"journaldb/pkg/models"
	"journaldb/pkg/utils"
	"journaldb/pkg/validation"
)

// threadSummary is the list projection of a thread: metadata plus the
// newest message as a preview, without the full transcript.
type threadSummary struct {
	ThreadID    string                 `json:"threadId"`
	ItemID      string                 `json:"itemId"`
	ItemTitle   string                 `json:"itemTitle"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
	Messages    int                    `json:"messageCount"`
	LastMessage *models.ContactMessage `json:"lastMessage,omitempty"`
}

func summarize(t models.ContactThread) threadSummary {
	return threadSummary{
		ThreadID:    t.ThreadID,
		ItemID:      t.ItemID,
		ItemTitle:   t.ItemTitle,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
		Messages:    len(t.Messages),
		LastMessage: t.LastMessage(),
	}
}

// listThreads handles GET /v1/contacts/threads, newest activity first.
func (a *API) listThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := a.Contacts.List()
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]threadSummary, 0, len(threads))
	for _, t := range threads {
		out = append(out, summarize(t))
	}
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		Threads []threadSummary `json:"threads"`
	}{Threads: out})
}

// ensureThread handles POST /v1/contacts/threads with
// {"itemId": ..., "itemTitle": ...}. Repeated calls for the same item
// return the same thread.
func (a *API) ensureThread(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemID    string `json:"itemId"`
		ItemTitle string `json:"itemTitle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.ItemID == "" {
		utils.JSONError(w, http.StatusBadRequest, "itemId is required")
		return
	}
	if body.ItemTitle == "" {
		if it, err := a.Community.Get(body.ItemID); err == nil && it != nil {
			body.ItemTitle = it.Title
		}
	}
	th, err := a.Contacts.Ensure(body.ItemID, body.ItemTitle)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logger.Info("contact_thread_ensured", "thread", th.ThreadID, "item", th.ItemID)
	_ = utils.JSONWrite(w, http.StatusOK, th)
}

// getThread handles GET /v1/contacts/threads/{id} with the full
// transcript.
func (a *API) getThread(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	th, err := a.Contacts.Get(id)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if th == nil {
		utils.JSONError(w, http.StatusNotFound, "thread not found")
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, th)
}

// appendThreadMessage handles POST /v1/contacts/threads/{id}/messages.
// Appending to an unknown thread succeeds with no effect, mirroring the
// store's silent no-op.
func (a *API) appendThreadMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var body struct {
		Role models.ContactRole `json:"role"`
		Text string             `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Role == "" {
		body.Role = models.ContactRoleMe
	}
	if err := validation.ValidateContactRole(body.Role); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Text == "" {
		utils.JSONError(w, http.StatusBadRequest, "text is required")
		return
	}
	th, err := a.Contacts.AppendMessage(id, body.Role, body.Text)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if th == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	logger.Info("contact_message_appended", "thread", id)
	_ = utils.JSONWrite(w, http.StatusOK, th)
}
