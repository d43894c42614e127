package api

import (
	"encoding/json"
	"net/http"

	"journaldb/pkg/llm"
	"journaldb/pkg/logger"
	"journaldb/pkg/utils"
)

type chatRequest struct {
	Mode string `json:"mode"`

	// insights_summary
	Prompt string          `json:"prompt,omitempty"`
	Input  json.RawMessage `json:"input,omitempty"`

	// companion_chat and default
	SleepDay string        `json:"sleepDay,omitempty"`
	Messages []llm.Message `json:"messages,omitempty"`
}

// postChat handles POST /v1/chat, the model proxy. Modes:
//
//	insights_summary: prompt + input data, returns {"text": ...}
//	companion_chat:   sleepDay + transcript, returns the structured reply
//	anything else:    plain completion over the messages
func (a *API) postChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return
	}

	switch req.Mode {
	case "insights_summary":
		a.chatSummary(w, r, req)
	case "companion_chat":
		a.chatCompanion(w, r, req)
	default:
		a.chatPlain(w, r, req)
	}
}

func (a *API) chatSummary(w http.ResponseWriter, r *http.Request, req chatRequest) {
	if !a.LLM.Configured() {
		_ = utils.JSONWrite(w, http.StatusOK, map[string]string{"text": llm.NoSummaryText})
		return
	}
	input := "{}"
	if len(req.Input) > 0 {
		input = string(req.Input)
	}
	user := req.Prompt + "\n\nHere is the user's data (JSON):\n" + input
	text, err := a.LLM.Complete(r.Context(), llm.SummarySystemPrompt, user)
	if err != nil {
		logger.Warn("chat_summary_failed", "error", err.Error())
		utils.JSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	if text == "" {
		text = llm.NoSummaryText
	}
	_ = utils.JSONWrite(w, http.StatusOK, map[string]string{"text": text})
}

func (a *API) chatCompanion(w http.ResponseWriter, r *http.Request, req chatRequest) {
	if !a.LLM.Configured() {
		_ = utils.JSONWrite(w, http.StatusOK, llm.ParseStructured(""))
		return
	}
	transcript, err := json.Marshal(req.Messages)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid messages")
		return
	}
	user := "Sleep-day: " + req.SleepDay +
		"\nChat messages JSON:\n" + string(transcript) +
		"\n\nReturn the structured JSON now."
	raw, err := a.LLM.Complete(r.Context(), llm.ChatSystemPrompt, user)
	if err != nil {
		logger.Warn("chat_companion_failed", "error", err.Error())
		utils.JSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	// Malformed model output degrades to the apology reply, never a 5xx.
	_ = utils.JSONWrite(w, http.StatusOK, llm.ParseStructured(raw))
}

func (a *API) chatPlain(w http.ResponseWriter, r *http.Request, req chatRequest) {
	if !a.LLM.Configured() {
		_ = utils.JSONWrite(w, http.StatusOK, map[string]string{"text": ""})
		return
	}
	msgs := req.Messages
	if len(msgs) == 0 {
		msgs = []llm.Message{{Role: "user", Content: "Hello"}}
	}
	text, err := a.LLM.CompleteMessages(r.Context(), msgs)
	if err != nil {
		logger.Warn("chat_plain_failed", "error", err.Error())
		utils.JSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, map[string]string{"text": text})
}
