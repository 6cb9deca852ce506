package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/study-plan/internal/model"
	"github.com/sakif/study-plan/internal/service"
)

// PlanHandler manages the study-plan endpoints.
//
// OWNERSHIP AT THE API SURFACE:
// Every plan route takes the requesting account's ID (as a userId query
// parameter on reads/deletes, in the body for generation), and the
// service layer matches it against the plan's stored owner. A plan owned by
// someone else responds exactly like a plan that does not exist.
type PlanHandler struct {
	plans  *service.PlanService
	logger *slog.Logger
}

// NewPlanHandler creates a PlanHandler.
func NewPlanHandler(plans *service.PlanService, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{plans: plans, logger: logger}
}

// HandleList returns all of a user's plans, newest first.
//
// HTTP: GET /api/plans?userId=
// → 200 {plans: [...]} | 400 userId missing
func (h *PlanHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "User ID is required",
		})
		return
	}

	plans, err := h.plans.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.Plan{"plans": plans})
}

// HandleGet returns a single plan owned by the requesting user.
//
// HTTP: GET /api/plans/{id}?userId=
// → 200 {plan} | 400 userId missing | 404 not found or not owned
func (h *PlanHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "User ID is required",
		})
		return
	}

	plan, err := h.plans.Get(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*model.Plan{"plan": plan})
}

// HandleDelete removes a plan owned by the requesting user.
//
// HTTP: DELETE /api/plans/{id}?userId=
// → 200 {message} | 400 userId missing | 404 not found or not owned
//
// Repeating the delete returns 404; the second call matches nothing.
func (h *PlanHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "User ID is required",
		})
		return
	}

	if err := h.plans.Delete(r.Context(), id, userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Plano excluído com sucesso"})
}

type generateRequest struct {
	UserID   string `json:"userId"`
	Theme    string `json:"theme"`
	Duration string `json:"duration"`
}

type generateResponse struct {
	Message string      `json:"message"`
	Plan    *model.Plan `json:"plan"`
}

// HandleGenerate creates a new AI-generated plan.
//
// HTTP: POST /api/generate-plan
// BODY: {"userId": ..., "theme": ..., "duration": ...}
// → 200 {message, plan} | 400 missing fields | 500 upstream or persistence failure
func (h *PlanHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid generate-plan JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Todos os campos são obrigatórios",
		})
		return
	}

	plan, err := h.plans.Generate(r.Context(), req.UserID, req.Theme, req.Duration)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Message: "Plano gerado com sucesso",
		Plan:    plan,
	})
}
