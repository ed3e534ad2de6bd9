package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/models"
	domrepo "github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/repository"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/usecase"
	xhttp "github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/http"
	xlogger "github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/logger"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/util"
)

// MarketHandler serves the market data REST surface and the quote stream.
type MarketHandler struct {
	logger *xlogger.Logger
	market *usecase.MarketUseCase
	snaps  *usecase.SnapshotsUseCase

	// stream pushes bypass the cache and read the source directly, so
	// every tick is a fresh draw.
	source         domrepo.MarketSource
	streamInterval time.Duration
	pingInterval   time.Duration
}

func NewMarketHandler(
	logger *xlogger.Logger,
	market *usecase.MarketUseCase,
	snaps *usecase.SnapshotsUseCase,
	source domrepo.MarketSource,
	streamInterval, pingInterval time.Duration,
) *MarketHandler {
	if streamInterval <= 0 {
		streamInterval = 2 * time.Second
	}
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &MarketHandler{
		logger:         logger,
		market:         market,
		snaps:          snaps,
		source:         source,
		streamInterval: streamInterval,
		pingInterval:   pingInterval,
	}
}

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	g := e.Group("/api")
	g.GET("/quote/:symbol", h.Quote)
	g.GET("/quotes", h.Watchlist)
	g.GET("/historical/:symbol", h.Historical)
	g.GET("/movers", h.Movers)
	g.GET("/indices", h.Indices)
	g.GET("/symbols", h.Symbols)
	g.POST("/portfolio", h.Portfolio)
	g.GET("/export/quotes", h.ExportQuotes)
	g.GET("/snapshots", h.Snapshots)
	g.GET("/stream", h.Stream)
}

func (h *MarketHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *MarketHandler) Quote(c echo.Context) error {
	res, err := h.market.GetQuote(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		h.logger.Error("quote usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) Watchlist(c echo.Context) error {
	req := &models.WatchlistRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.market.GetWatchlist(c.Request().Context(), req.Symbols)
	if err != nil {
		h.logger.Error("watchlist usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) Historical(c echo.Context) error {
	req := &models.HistoricalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.market.GetHistorical(c.Request().Context(), c.Param("symbol"), req.Days)
	if err != nil {
		h.logger.Error("historical usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) Movers(c echo.Context) error {
	req := &models.MoversRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.market.GetMovers(c.Request().Context(), req.Count)
	if err != nil {
		h.logger.Error("movers usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) Indices(c echo.Context) error {
	res, err := h.market.GetSummary(c.Request().Context())
	if err != nil {
		h.logger.Error("summary usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) Symbols(c echo.Context) error {
	profiles := h.market.GetProfiles()
	return xhttp.ListResponse(c, profiles, int64(len(profiles)))
}

func (h *MarketHandler) Portfolio(c echo.Context) error {
	req := &models.PortfolioRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.market.Rollup(c.Request().Context(), req.Holdings)
	if err != nil {
		h.logger.Error("portfolio usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) ExportQuotes(c echo.Context) error {
	req := &models.ExportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.market.ExportQuotes(c.Request().Context(), req.Symbols)
	if err != nil {
		h.logger.Error("export usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) Snapshots(c echo.Context) error {
	req := &models.SnapshotsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.snaps.History(c.Request().Context(), usecase.HistoryParams{
		Index: req.Index,
		From:  util.ParseTimeDefault(req.From, time.Time{}),
		To:    util.ParseTimeDefault(req.To, time.Time{}),
		Limit: req.Limit,
	})
	if err != nil {
		h.logger.Error("snapshots usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
