package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/catalog"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/models"
	xhttp "github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/http"
	xlogger "github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/logger"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/util"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	minStreamInterval = 200 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamFrame is one pushed batch of quotes.
type streamFrame struct {
	Quotes    []models.Quote `json:"quotes"`
	Timestamp time.Time      `json:"timestamp"`
}

// Stream upgrades to a websocket and pushes fresh quote batches at the
// requested interval until the client goes away.
func (h *MarketHandler) Stream(c echo.Context) error {
	symbols, bad := h.resolveStreamSymbols(c.QueryParam("symbols"))
	if bad {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_UNKNOWN_SYMBOLS",
			Field:   "symbols",
			Message: "no requested symbol exists in the catalog",
		}})
	}

	interval := util.ParseDurationDefault(c.QueryParam("interval"), h.streamInterval)
	if interval < minStreamInterval {
		interval = minStreamInterval
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", xlogger.Error(err))
		return nil
	}

	h.logger.Info("stream client connected",
		xlogger.Strings("symbols", symbols),
		xlogger.Duration("interval", interval))

	done := make(chan struct{})
	go h.readPump(conn, done)
	h.writePump(c, conn, symbols, interval, done)
	return nil
}

// resolveStreamSymbols filters the requested list against the catalog. An
// empty request means the whole catalog; a request with no valid entry is an
// error.
func (h *MarketHandler) resolveStreamSymbols(csv string) (symbols []string, bad bool) {
	valid := make(map[string]bool)
	for _, p := range h.source.Profiles() {
		valid[p.Symbol] = true
	}

	requested := util.SplitCSV(csv)
	if len(requested) == 0 {
		for _, p := range h.source.Profiles() {
			symbols = append(symbols, p.Symbol)
		}
		return symbols, false
	}

	for _, sym := range requested {
		if norm := catalog.Normalize(sym); valid[norm] {
			symbols = append(symbols, norm)
		}
	}
	return symbols, len(symbols) == 0
}

func (h *MarketHandler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseNoStatusReceived) {
				h.logger.Warn("stream read error", xlogger.Error(err))
			}
			return
		}
	}
}

func (h *MarketHandler) writePump(c echo.Context, conn *websocket.Conn, symbols []string, interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	pinger := time.NewTicker(h.pingInterval)
	defer func() {
		ticker.Stop()
		pinger.Stop()
		conn.Close()
		h.logger.Info("stream client disconnected")
	}()

	ctx := c.Request().Context()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-pinger.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ticker.C:
			frame := streamFrame{Timestamp: time.Now()}
			for _, sym := range symbols {
				q, err := h.source.Quote(ctx, sym)
				if err != nil {
					h.logger.Error("stream quote failed", xlogger.String("symbol", sym), xlogger.Error(err))
					continue
				}
				frame.Quotes = append(frame.Quotes, *q)
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(frame); err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure,
					websocket.CloseNoStatusReceived) {
					h.logger.Warn("stream write error", xlogger.Error(err))
				}
				return
			}
		}
	}
}
