package api

import (
	"errors"

	models "SignalFuse/internal/domain/models"
	"SignalFuse/internal/services/category"
	"SignalFuse/internal/usecase"
	xhttp "SignalFuse/pkg/http"
	xlogger "SignalFuse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DecisionsEchoHandler exposes the fusion and execution engines over HTTP.
type DecisionsEchoHandler struct {
	logger  *xlogger.Logger
	service *usecase.DecisionService
}

func NewDecisionsEchoHandler(logger *xlogger.Logger, service *usecase.DecisionService) *DecisionsEchoHandler {
	return &DecisionsEchoHandler{logger: logger, service: service}
}

func (h *DecisionsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/consensus", h.Consensus)
	g.POST("/consensus/batch", h.ConsensusBatch)
	g.POST("/execution", h.Execution)
	g.POST("/execution/batch", h.ExecutionBatch)
	g.GET("/thresholds", h.Thresholds)
	g.GET("/decisions/latest", h.LatestDecision)
}

func (h *DecisionsEchoHandler) Consensus(c echo.Context) error {
	req := &models.ConsensusRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.service.FuseConsensus(c.Request().Context(), *req)
	if err != nil {
		return h.engineError(c, "consensus", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DecisionsEchoHandler) ConsensusBatch(c echo.Context) error {
	req := &models.ConsensusBatchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	out := h.service.FuseConsensusBatch(c.Request().Context(), req.Items)
	return xhttp.ListResponse(c, out, int64(len(out)))
}

func (h *DecisionsEchoHandler) Execution(c echo.Context) error {
	req := &models.ExecutionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.service.EstimateExecution(c.Request().Context(), *req)
	if err != nil {
		return h.engineError(c, "execution", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DecisionsEchoHandler) ExecutionBatch(c echo.Context) error {
	req := &models.ExecutionBatchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	out := h.service.EstimateExecutionBatch(c.Request().Context(), req.Items)
	return xhttp.ListResponse(c, out, int64(len(out)))
}

// Thresholds never fails: unknown categories fall back to fundamental.
func (h *DecisionsEchoHandler) Thresholds(c echo.Context) error {
	req := &models.ThresholdsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, category.ThresholdsFor(category.Parse(req.Category)))
}

func (h *DecisionsEchoHandler) LatestDecision(c echo.Context) error {
	req := &models.LatestDecisionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.service.LatestDecision(c.Request().Context(), req.Symbol)
	if err != nil {
		h.logger.Error("latest decision error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if res == nil {
		return xhttp.NotFoundResponse(c, "no decision recorded for symbol")
	}
	return xhttp.SuccessResponse(c, res)
}

// engineError maps engine rejections to 400; anything else is internal.
func (h *DecisionsEchoHandler) engineError(c echo.Context, op string, err error) error {
	var inv *models.InvalidInputError
	if errors.As(err, &inv) {
		return xhttp.AppErrorResponse(c, xhttp.InvalidInputError(inv.Field, inv.Reason))
	}
	h.logger.Error(op+" usecase error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}
