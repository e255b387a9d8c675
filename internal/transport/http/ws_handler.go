package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"fanzone-service/internal/app"
	"fanzone-service/internal/domain"
)

// WSHandler serves the live fan session: quiz completion over a socket plus a
// leaderboard stream pushed after every accepted completion.
type WSHandler struct {
	service  *app.FanService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.FanService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type completeQuizPayload struct {
	QuizID  string                    `json:"quizId"`
	Answers []domain.AnswerSubmission `json:"answers"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type infoPayload struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ServeWS upgrades the request and wires the connection into the fan session.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[infoPayload]{Type: "error", Payload: infoPayload{Message: err.Error()}})
		return
	}

	updates, cancel, err := h.service.SubscribeLeaderboard(r.Context())
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[infoPayload]{Type: "error", Payload: infoPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// A single writer goroutine owns the connection's write side.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "leaderboard", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "profile", Payload: profile}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "completeQuiz":
			var payload completeQuizPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: infoPayload{Message: "invalid quiz payload"}}
				continue
			}
			outcome, err := h.service.CompleteQuiz(r.Context(), userID, payload.QuizID, payload.Answers)
			if errors.Is(err, domain.ErrQuizAlreadyTaken) {
				send <- outboundMessage[any]{Type: "info", Payload: infoPayload{
					Message: "you already played today, come back tomorrow",
					Code:    "already_played",
				}}
				continue
			}
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: infoPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "quizOutcome", Payload: outcome}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: infoPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
