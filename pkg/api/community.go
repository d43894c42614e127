package api

import (
	"encoding/json"
	"net/http"

	"journaldb/pkg/community"
	"journaldb/pkg/logger"
	"journaldb/pkg/models"
	"journaldb/pkg/utils"
	"journaldb/pkg/validation"
)

// getFeed handles GET /v1/community/feed?q=&sort=. The default order
// is memos first then public diaries; sort=unified interleaves the two
// groups by recency.
func (a *API) getFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	unified := r.URL.Query().Get("sort") == "unified"
	items, err := a.Community.Feed(q, unified)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		Items []models.CommunityItem `json:"items"`
	}{Items: items})
}

// createMemo handles POST /v1/community/memos.
func (a *API) createMemo(w http.ResponseWriter, r *http.Request) {
	var in community.MemoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Title == "" && in.Body == "" {
		utils.JSONError(w, http.StatusBadRequest, "memo needs a title or body")
		return
	}
	if in.Mood != nil {
		if err := validation.ValidateScale("mood", *in.Mood); err != nil {
			utils.JSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if in.Intensity != nil {
		if err := validation.ValidateScale("intensity", *in.Intensity); err != nil {
			utils.JSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	item, err := a.Community.CreateMemo(in)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logger.Info("memo_created", "id", item.ID)
	_ = utils.JSONWrite(w, http.StatusCreated, item)
}
