package chatbot

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket frame format.
type wsRequest struct {
	UserName  string `json:"user_name"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"` // empty starts a new session
	Content   string `json:"content"`
}

// wsResponse wraps the engine response with the session id so the client
// can continue the conversation.
type wsResponse struct {
	Type      string `json:"type"` // "response" or "error"
	SessionID string `json:"session_id"`
	Response
}

// RegisterWebSocket mounts the live chat endpoint.
func RegisterWebSocket(r chi.Router, engine *Engine) {
	r.Get("/ws/chat", handleWebSocket(engine))
}

func handleWebSocket(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("chatbot: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("chatbot: websocket read: %v", err)
				}
				return
			}

			var req wsRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sendWSError(conn, "", "invalid message format")
				continue
			}
			if req.Content == "" {
				sendWSError(conn, req.SessionID, "content is required")
				continue
			}
			if req.SessionID == "" {
				req.SessionID = uuid.New().String()
			}

			resp := engine.ProcessMessage(req.Content, req.UserName, req.UserID, req.SessionID)
			out := wsResponse{Type: "response", SessionID: req.SessionID, Response: resp}
			if err := conn.WriteJSON(out); err != nil {
				log.Printf("chatbot: websocket write: %v", err)
			}
		}
	}
}

func sendWSError(conn *websocket.Conn, sessionID, message string) {
	out := wsResponse{Type: "error", SessionID: sessionID}
	out.Response.Response = message
	if err := conn.WriteJSON(out); err != nil {
		log.Printf("chatbot: websocket write error: %v", err)
	}
}
