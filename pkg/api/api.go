// Package api exposes the journal's HTTP surface: diary drafts, chat
// workspaces, the community feed, contact threads, insights and the
// model proxy.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"journaldb/pkg/community"
	"journaldb/pkg/contacts"
	"journaldb/pkg/diary"
	"journaldb/pkg/llm"
	"journaldb/pkg/sleepday"
	"journaldb/pkg/store"
	"journaldb/pkg/utils"
	"journaldb/pkg/workspace"
)

// API bundles the feature stores behind the HTTP handlers.
type API struct {
	Diary      *diary.Store
	Workspace  *workspace.Store
	Community  *community.Store
	Contacts   *contacts.Store
	LLM        *llm.Client
	CutoffHour int

	limiters *limiterPool
	now      func() time.Time
}

// Options carries the tunables the API needs from config.
type Options struct {
	CutoffHour int
	RateRPS    float64
	RateBurst  int
}

// New builds the API over the feature stores.
func New(d *diary.Store, w *workspace.Store, c *community.Store, ct *contacts.Store, client *llm.Client, opts Options) *API {
	cutoff := opts.CutoffHour
	if cutoff <= 0 || cutoff > 23 {
		cutoff = sleepday.DefaultCutoffHour
	}
	return &API{
		Diary:      d,
		Workspace:  w,
		Community:  c,
		Contacts:   ct,
		LLM:        client,
		CutoffHour: cutoff,
		limiters:   &limiterPool{rps: opts.RateRPS, burst: opts.RateBurst},
		now:        time.Now,
	}
}

// Handler returns the versioned API router.
func (a *API) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", readyz).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(countRequests)
	v1.HandleFunc("/sleepday", a.getSleepDay).Methods(http.MethodGet)

	v1.HandleFunc("/diary", a.listDiary).Methods(http.MethodGet)
	v1.HandleFunc("/diary/{date}", a.getDiary).Methods(http.MethodGet)
	v1.HandleFunc("/diary/{date}", a.patchDiary).Methods(http.MethodPatch)
	v1.HandleFunc("/diary/{date}/append", a.appendDiary).Methods(http.MethodPost)

	v1.HandleFunc("/workspace/{date}", a.getWorkspace).Methods(http.MethodGet)
	v1.HandleFunc("/workspace/{date}", a.patchWorkspace).Methods(http.MethodPatch)
	v1.HandleFunc("/workspace/{date}", a.clearWorkspace).Methods(http.MethodDelete)

	v1.HandleFunc("/community/feed", a.getFeed).Methods(http.MethodGet)
	v1.HandleFunc("/community/memos", a.createMemo).Methods(http.MethodPost)

	v1.HandleFunc("/contacts/threads", a.listThreads).Methods(http.MethodGet)
	v1.HandleFunc("/contacts/threads", a.ensureThread).Methods(http.MethodPost)
	v1.HandleFunc("/contacts/threads/{id}", a.getThread).Methods(http.MethodGet)
	v1.HandleFunc("/contacts/threads/{id}/messages", a.appendThreadMessage).Methods(http.MethodPost)

	v1.HandleFunc("/insights/weekly", a.getWeeklyInsights).Methods(http.MethodGet)
	v1.HandleFunc("/insights/monthly", a.getMonthlyInsights).Methods(http.MethodGet)
	v1.HandleFunc("/insights/summary", a.getInsightsSummary).Methods(http.MethodGet)
	v1.HandleFunc("/insights/recommendations", a.getRecommendations).Methods(http.MethodGet)

	v1.Handle("/chat", a.limiters.middleware(http.HandlerFunc(a.postChat))).Methods(http.MethodPost)

	return r
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func readyz(w http.ResponseWriter, r *http.Request) {
	if !store.Ready() {
		utils.JSONError(w, http.StatusServiceUnavailable, "store not ready")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// getSleepDay reports the current sleep-day key and the cutoff in use.
func (a *API) getSleepDay(w http.ResponseWriter, r *http.Request) {
	_ = utils.JSONWrite(w, http.StatusOK, map[string]any{
		"date":       sleepday.Key(a.CutoffHour, a.now()),
		"cutoffHour": a.CutoffHour,
	})
}
