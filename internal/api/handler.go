package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/analyzer"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/models"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/prompt"
	"github.com/rs/zerolog"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// analyzeBody is the wire form of the request. UserInput is a pointer so
// a missing field is distinguishable from an empty string: an empty
// string is legitimate input, an absent field is a client error.
type analyzeBody struct {
	UserInput         *string `json:"user_input"`
	PromptOverrideKey *string `json:"prompt_override_key"`
}

type Handler struct {
	analyzer *analyzer.Analyzer
	logger   *zerolog.Logger
}

func NewHandler(analyzer *analyzer.Analyzer, logger *zerolog.Logger) *Handler {
	return &Handler{
		analyzer: analyzer,
		logger:   logger,
	}
}

// POST /api/v1/analyze
// Body: AnalyzeRequest
// Returns: Verdict
func (h *Handler) Analyze(req *restful.Request, resp *restful.Response) {
	var body analyzeBody
	if err := req.ReadEntity(&body); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if body.UserInput == nil {
		middleware.HandleError(resp, fmt.Errorf("missing required field user_input"), http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Int("input_length", len(*body.UserInput)).
		Msg("Start analysis")

	ctx := req.Request.Context()
	verdict, err := h.analyzer.Analyze(ctx, models.AnalyzeRequest{
		UserInput:         *body.UserInput,
		PromptOverrideKey: body.PromptOverrideKey,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Analysis pipeline failed")
		switch {
		case errors.Is(err, prompt.ErrInvalidKey):
			middleware.HandleError(resp, err, http.StatusBadRequest)
		default:
			// Template missing, transport failure, broken envelope: the
			// pipeline is at fault, never the content.
			middleware.HandleError(resp, err, http.StatusBadGateway)
		}
		return
	}

	h.logger.Info().
		Bool("safe", verdict.Safe).
		Msg("Analysis complete")

	resp.WriteHeaderAndEntity(http.StatusOK, verdict)
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}
