package chatbot

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hamzasdq/earnlybot/internal/transcript"
)

// messageRequest is the HTTP chat contract.
type messageRequest struct {
	Message   string `json:"message"`
	UserName  string `json:"user_name"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// RegisterRoutes mounts the chat API. The transcript store may be nil; when
// present, turns are persisted after the synchronous engine call returns so
// the engine itself stays free of I/O.
func RegisterRoutes(r chi.Router, engine *Engine, transcripts *transcript.Store) {
	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/message", handleMessage(engine, transcripts))
		r.Get("/history", handleHistory(engine))
		r.Delete("/history", handleClear(engine, transcripts))
		r.Get("/stats", handleStats(engine))
	})
}

func handleMessage(engine *Engine, transcripts *transcript.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req messageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		// Empty input is rejected here, not inside the engine.
		if strings.TrimSpace(req.Message) == "" {
			http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
			return
		}

		resp := engine.ProcessMessage(req.Message, req.UserName, req.UserID, req.SessionID)

		if transcripts != nil {
			persistExchange(r.Context(), transcripts, req, resp)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func persistExchange(ctx context.Context, transcripts *transcript.Store, req messageRequest, resp Response) {
	userID := req.UserID
	if userID == "" {
		userID = "anonymous"
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "default"
	}
	if err := transcripts.Save(ctx, transcript.Entry{
		UserID: userID, SessionID: sessionID,
		Role: RoleUser, Message: req.Message, Language: resp.Language,
	}); err != nil {
		log.Printf("chatbot: persisting user turn: %v", err)
	}
	if err := transcripts.Save(ctx, transcript.Entry{
		UserID: userID, SessionID: sessionID,
		Role: RoleBot, Message: resp.Response, Intent: resp.Intent,
		Language: resp.Language, Confidence: resp.Confidence,
	}); err != nil {
		log.Printf("chatbot: persisting bot turn: %v", err)
	}
}

func handleHistory(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		sessionID := r.URL.Query().Get("session_id")
		if userID == "" || sessionID == "" {
			http.Error(w, `{"error":"user_id and session_id are required"}`, http.StatusBadRequest)
			return
		}

		turns := engine.ConversationHistory(userID, sessionID)
		if turns == nil {
			turns = []Turn{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(turns)
	}
}

func handleClear(engine *Engine, transcripts *transcript.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		sessionID := r.URL.Query().Get("session_id")
		if userID == "" || sessionID == "" {
			http.Error(w, `{"error":"user_id and session_id are required"}`, http.StatusBadRequest)
			return
		}

		engine.ClearConversation(userID, sessionID)
		if transcripts != nil {
			if err := transcripts.Clear(r.Context(), userID, sessionID); err != nil {
				log.Printf("chatbot: clearing transcript: %v", err)
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleStats(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(engine.Stats())
	}
}
