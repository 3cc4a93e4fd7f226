package service

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/reco-labs/reco/core"
)

// recommendResponse 是 POST /recommend 的响应体。
type recommendResponse struct {
	SessionID string              `json:"session_id"`
	Status    Status              `json:"status"`
	Route     string              `json:"route,omitempty"`
	Items     []core.RankedItem   `json:"items"`
	Criteria  []string            `json:"ranking_criteria,omitempty"`
	Matches   []core.PersonaMatch `json:"persona_matches,omitempty"`
	ElapsedMs int64               `json:"elapsed_ms"`
}

// errorResponse 是统一的错误响应体。
type errorResponse struct {
	Code    string `json:"code"`
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message"`
}

// NewHandler 构建 HTTP 边界：
//
//	POST /recommend  执行一次推荐
//	GET  /personas   列出全部 persona
//	GET  /healthz    存活检查
func NewHandler(svc *Service, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &handler{svc: svc, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /recommend", h.recommend)
	mux.HandleFunc("GET /personas", h.personas)
	mux.HandleFunc("GET /healthz", h.healthz)
	return mux
}

type handler struct {
	svc *Service
	log *zap.Logger
}

func (h *handler) recommend(w http.ResponseWriter, r *http.Request) {
	var req core.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, &core.StageError{
			Stage: "boundary", Code: core.CodeInvalidInput, Message: "malformed request body", Err: err,
		})
		return
	}

	out, err := h.svc.Recommend(r.Context(), req)
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}

	items := []core.RankedItem{}
	var criteria []string
	if out.Result != nil {
		if out.Result.Items != nil {
			items = out.Result.Items
		}
		criteria = out.Result.Criteria
	}
	h.writeJSON(w, http.StatusOK, recommendResponse{
		SessionID: out.SessionID,
		Status:    out.Status,
		Route:     out.Route,
		Items:     items,
		Criteria:  criteria,
		Matches:   out.Matches,
		ElapsedMs: out.Elapsed.Milliseconds(),
	})
}

func (h *handler) personas(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"personas": h.svc.ListPersonas(),
	})
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor 把管道错误映射为 HTTP 状态码。
func statusFor(err error) int {
	se, ok := core.AsStageError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch se.Code {
	case core.CodeInvalidInput, core.CodeClassification:
		return http.StatusBadRequest
	case core.CodeNotFound:
		return http.StatusNotFound
	case core.CodeMatch:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Code: "INTERNAL", Message: err.Error()}
	if se, ok := core.AsStageError(err); ok {
		resp.Code = se.Code
		resp.Stage = se.Stage
		resp.Message = se.Message
	}
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	h.writeJSON(w, status, resp)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("write response", zap.Error(err))
	}
}
