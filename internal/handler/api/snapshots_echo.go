package api

import (
	"errors"
	"time"

	models "FXLens/internal/domain/models"
	domrepo "FXLens/internal/domain/repository"
	"FXLens/internal/refdata"
	"FXLens/internal/usecase"
	xhttp "FXLens/pkg/http"
	xlogger "FXLens/pkg/logger"
	"FXLens/pkg/util"

	"github.com/labstack/echo/v4"
)

// SnapshotsEchoHandler serves the dashboard API.
type SnapshotsEchoHandler struct {
	logger    *xlogger.Logger
	refresher *usecase.Refresher
	store     domrepo.SnapshotStore // nil for the memory backend
}

func NewSnapshotsEchoHandler(logger *xlogger.Logger, refresher *usecase.Refresher, store domrepo.SnapshotStore) *SnapshotsEchoHandler {
	return &SnapshotsEchoHandler{logger: logger, refresher: refresher, store: store}
}

func (h *SnapshotsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/snapshot", h.Snapshot)
	g.POST("/refresh", h.Refresh)
	g.GET("/currencies", h.Currencies)
	g.GET("/history/:code", h.History)
	e.GET("/healthz", h.Health)
}

// Snapshot returns the latest row set, optionally filtered by group.
func (h *SnapshotsEchoHandler) Snapshot(c echo.Context) error {
	req := &models.SnapshotRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	groups, err := req.ParseGroups()
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	snap, err := h.refresher.Snapshot(c.Request().Context())
	if err != nil {
		if errors.Is(err, usecase.ErrNoData) {
			return xhttp.NotFoundResponse(c, "no data yet; trigger a refresh")
		}
		h.logger.Error("snapshot read error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, snap.FilterGroups(groups))
}

// Refresh invalidates the cache and queues a new fetch cycle.
func (h *SnapshotsEchoHandler) Refresh(c echo.Context) error {
	h.refresher.Invalidate(c.Request().Context())
	h.refresher.Trigger()
	return xhttp.AcceptedResponse(c, "refresh queued")
}

type currencyView struct {
	Code   string       `json:"code"`
	Name   string       `json:"name"`
	Group  models.Group `json:"group"`
	Pegged bool         `json:"pegged"`
}

// Currencies lists the tracked currency set.
func (h *SnapshotsEchoHandler) Currencies(c echo.Context) error {
	out := make([]currencyView, 0, len(refdata.Currencies))
	for _, def := range refdata.Currencies {
		out = append(out, currencyView{
			Code:   def.Code,
			Name:   def.Name,
			Group:  def.Group,
			Pegged: def.Pegged(),
		})
	}
	return xhttp.SuccessResponse(c, out)
}

// History returns stored raw spot observations for one currency.
func (h *SnapshotsEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	code := req.NormalizedCode()
	if _, ok := refdata.ByCode(code); !ok {
		return xhttp.NotFoundResponse(c, "unknown currency code")
	}
	if h.store == nil {
		return xhttp.NotFoundResponse(c, "history not available with memory backend")
	}

	from, to := util.DayWindow(time.Now(), req.Days)
	obs, err := h.store.SpotHistory(c.Request().Context(), code, from, to)
	if err != nil {
		h.logger.Error("spot history read error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, obs)
}

// Health reports process liveness and backend reachability.
func (h *SnapshotsEchoHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok", "backend": "memory"}
	if h.store != nil {
		status["backend"] = "clickhouse"
		if err := h.store.Health(c.Request().Context()); err != nil {
			status["backend_error"] = err.Error()
		}
	}
	return xhttp.SuccessResponse(c, status)
}
