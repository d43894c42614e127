package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"journaldb/pkg/diary"
	"journaldb/pkg/logger"
	"journaldb/pkg/models"
	"journaldb/pkg/utils"
	"journaldb/pkg/validation"
)

// diaryPatchBody is the wire form of a draft patch. Absent fields are
// left untouched; a present tags array replaces the stored tags.
type diaryPatchBody struct {
	Mood          *int               `json:"mood"`
	Intensity     *int               `json:"intensity"`
	Tags          []string           `json:"tags"`
	Text          *string            `json:"text"`
	Visibility    *models.Visibility `json:"visibility"`
	FromSessionID *string            `json:"fromSessionId"`
}

func (b diaryPatchBody) validate() error {
	if b.Mood != nil {
		if err := validation.ValidateScale("mood", *b.Mood); err != nil {
			return err
		}
	}
	if b.Intensity != nil {
		if err := validation.ValidateScale("intensity", *b.Intensity); err != nil {
			return err
		}
	}
	if b.Visibility != nil {
		if err := validation.ValidateVisibility(*b.Visibility); err != nil {
			return err
		}
	}
	return nil
}

// getDiary handles GET /v1/diary/{date}. A date with no stored draft
// returns the defaults without persisting them.
func (a *API) getDiary(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if err := validation.ValidateDate(date); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := a.Diary.Load(date)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if d == nil {
		d = &models.DiaryDraft{Date: date, Tags: []string{}, Text: ""}
	}
	_ = utils.JSONWrite(w, http.StatusOK, d)
}

// patchDiary handles PATCH /v1/diary/{date}.
func (a *API) patchDiary(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if err := validation.ValidateDate(date); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	var body diaryPatchBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := body.validate(); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := a.Diary.Merge(date, diary.Patch{
		Mood:          body.Mood,
		Intensity:     body.Intensity,
		Tags:          body.Tags,
		Text:          body.Text,
		Visibility:    body.Visibility,
		FromSessionID: body.FromSessionID,
	})
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logger.Info("diary_merged", "date", date)
	_ = utils.JSONWrite(w, http.StatusOK, d)
}

// appendDiary handles POST /v1/diary/{date}/append with {"text": ...}.
func (a *API) appendDiary(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if err := validation.ValidateDate(date); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	d, err := a.Diary.AppendText(date, body.Text)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logger.Info("diary_appended", "date", date)
	_ = utils.JSONWrite(w, http.StatusOK, d)
}

// listDiary handles GET /v1/diary?from=&to= returning stored drafts in
// ascending date order.
func (a *API) listDiary(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	for _, d := range []string{from, to} {
		if d != "" {
			if err := validation.ValidateDate(d); err != nil {
				utils.JSONError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
	}
	drafts, err := a.Diary.Range(from, to)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, struct {
		Drafts []models.DiaryDraft `json:"drafts"`
	}{Drafts: drafts})
}
