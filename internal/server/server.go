package server

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"assistant/internal/chat"
	"assistant/internal/interaction"
	"assistant/internal/logx"
)

//go:embed web
var webFS embed.FS

// streamChunkSize bounds one flushed write of the reply stream.
const streamChunkSize = 256

// defaultSession is used when a chat request carries no session id.
const defaultSession = "default"

// Responder produces one turn's final reply and its turn id.
type Responder interface {
	Respond(ctx context.Context, sessionID, message, modelOverride string) (string, string)
}

// Server HTTP 入口：聊天、反馈、训练导出与静态页面。
// Server is the HTTP surface: the chat UI, the chat endpoint, feedback
// collection, and the training-export trigger.
type Server struct {
	responder Responder
	log       *interaction.Log
}

func New(responder Responder, log *interaction.Log) *Server {
	return &Server{responder: responder, log: log}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(webFS, "web")
	if err != nil {
		// embed guarantees the subtree exists at build time
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", http.FileServerFS(static))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /feedback", s.handleFeedback)
	mux.HandleFunc("POST /train", s.handleTrain)
	return mux
}

type chatRequest struct {
	Message string `json:"message"`
	Model   string `json:"model"`
	Session string `json:"session"`
}

// handleChat runs one turn and streams the reply as plain text. The turn id
// travels in a response header so the UI can attach feedback later.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	sessionID := strings.TrimSpace(req.Session)
	if sessionID == "" {
		sessionID = defaultSession
	}

	reply, turnID := s.responder.Respond(r.Context(), sessionID, message, req.Model)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Turn-Id", turnID)
	w.WriteHeader(http.StatusOK)
	streamText(w, reply)
}

// streamText writes the reply in flushed chunks, never splitting a rune. A
// client that went away just stops the writes; there is nothing to cancel.
func streamText(w http.ResponseWriter, text string) {
	flusher, _ := w.(http.Flusher)
	for len(text) > 0 {
		n := streamChunkSize
		if n >= len(text) {
			n = len(text)
		} else {
			for n > 0 && !utf8.RuneStart(text[n]) {
				n--
			}
		}
		if _, err := w.Write([]byte(text[:n])); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
		text = text[n:]
	}
}

type feedbackRequest struct {
	TurnID  string `json:"turn_id"`
	Rating  string `json:"rating"`
	Session string `json:"session"`
	Comment string `json:"comment"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.TurnID) == "" {
		writeError(w, http.StatusBadRequest, "turn_id is required")
		return
	}
	rating := strings.ToLower(strings.TrimSpace(req.Rating))
	if rating != "good" && rating != "bad" {
		writeError(w, http.StatusBadRequest, "rating must be good or bad")
		return
	}

	fb := chat.Feedback{
		TurnID:    req.TurnID,
		Rating:    rating,
		Comment:   req.Comment,
		Session:   req.Session,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.log.AppendFeedback(fb); err != nil {
		logx.Error().Err(err).Str("turn_id", req.TurnID).Msg("failed to persist feedback")
		writeError(w, http.StatusInternalServerError, "could not persist feedback")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"turn_id": req.TurnID,
		"rating":  rating,
	})
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	stats, path, err := s.log.ExportTraining()
	if err != nil {
		logx.Error().Err(err).Msg("training export failed")
		writeError(w, http.StatusInternalServerError, "training export failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":                "ok",
		"prepared":              stats.Prepared,
		"output_file":           path,
		"interactions_consumed": stats.Interactions,
		"feedback_consumed":     stats.Feedback,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]any{"status": "error", "detail": detail})
}
