package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fanzone-service/internal/app"
	"fanzone-service/internal/domain"
)

// APIHandler exposes the fan-engagement use cases over JSON/HTTP.
type APIHandler struct {
	service *app.FanService
}

func NewAPIHandler(service *app.FanService) *APIHandler {
	return &APIHandler{service: service}
}

// Routes registers every endpoint on the router.
func (h *APIHandler) Routes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", h.Register).Methods("POST")
	api.HandleFunc("/profile/{id}", h.Profile).Methods("GET")
	api.HandleFunc("/profile/{id}/prizes", h.Prizes).Methods("GET")
	api.HandleFunc("/profile/{id}/cards", h.Cards).Methods("GET")
	api.HandleFunc("/quiz/{quizId}/complete", h.CompleteQuiz).Methods("POST")
	api.HandleFunc("/ranking", h.Ranking).Methods("GET")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/sweepstakes/draw", h.DrawSweepstakes).Methods("POST")
	admin.HandleFunc("/sweepstakes/reset", h.ResetSweepstakes).Methods("POST")
	admin.HandleFunc("/profile/{id}/sweepstakes", h.SetSweepstakes).Methods("PUT")

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")
}

type registerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	FavoriteMode string `json:"favoriteMode"`
}

func (h *APIHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}
	mode := domain.FavoriteMode(req.FavoriteMode)
	if mode != domain.ModeGames && mode != domain.ModeFootball {
		mode = domain.ModeGames
	}

	profile, err := h.service.Register(r.Context(), req.Name, req.Email, mode)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *APIHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Profile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type completeQuizRequest struct {
	UserID  string                    `json:"userId"`
	Answers []domain.AnswerSubmission `json:"answers"`
}

func (h *APIHandler) CompleteQuiz(w http.ResponseWriter, r *http.Request) {
	var req completeQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	outcome, err := h.service.CompleteQuiz(r.Context(), req.UserID, mux.Vars(r)["quizId"], req.Answers)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *APIHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	lb, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lb)
}

func (h *APIHandler) Prizes(w http.ResponseWriter, r *http.Request) {
	prizes, err := h.service.Prizes(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prizes)
}

func (h *APIHandler) Cards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.Cards(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (h *APIHandler) DrawSweepstakes(w http.ResponseWriter, r *http.Request) {
	winner, err := h.service.DrawSweepstakes(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, winner)
}

func (h *APIHandler) ResetSweepstakes(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetSweepstakes(r.Context()); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setSweepstakesRequest struct {
	InSweepstakes bool `json:"inSweepstakes"`
}

func (h *APIHandler) SetSweepstakes(w http.ResponseWriter, r *http.Request) {
	var req setSweepstakesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	profile, err := h.service.SetSweepstakes(r.Context(), mux.Vars(r)["id"], req.InSweepstakes)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeServiceError maps domain errors onto HTTP statuses, keeping the
// informational "already played today" distinct from genuine faults.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrQuizAlreadyTaken):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: "you already played today, come back tomorrow",
			Code:  "already_played",
		})
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrQuizNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrOptionNotFound),
		errors.Is(err, domain.ErrDuplicateAnswer),
		errors.Is(err, domain.ErrNegativeDelta),
		errors.Is(err, domain.ErrNoEntrants):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		log.Printf("api error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "something went wrong, try again"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
