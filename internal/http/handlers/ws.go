package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/thakshilaCodes/Feedo/internal/domain"
	"github.com/thakshilaCodes/Feedo/internal/http/middleware/auth"
	"github.com/thakshilaCodes/Feedo/internal/logx"
	"github.com/thakshilaCodes/Feedo/internal/tracking"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
	wsReadLimit  = 1 << 16
	wsOutBuffer  = 32

	wsUpdateLocation = "update_location"
)

type principalResolver interface {
	Principal(r *http.Request) (auth.Principal, error)
}

type locationUpdater interface {
	UpdateLocation(ctx context.Context, id string, lat, lon float64) (domain.Driver, error)
}

type gauge interface {
	Inc()
	Dec()
}

// SocketConfig limits inbound location updates per connection.
type SocketConfig struct {
	LocationRate  float64
	LocationBurst int
}

// SocketHandler serves GET /ws: live tracking frames for the caller's rooms
// and inbound location updates from drivers.
type SocketHandler struct {
	broker    tracking.Broker
	auth      principalResolver
	locations locationUpdater
	conns     gauge
	cfg       SocketConfig
	logger    logx.Logger
	upgrader  websocket.Upgrader
}

// NewSocketHandler creates a SocketHandler. conns may be nil.
func NewSocketHandler(
	logger logx.Logger,
	broker tracking.Broker,
	resolver principalResolver,
	locations locationUpdater,
	conns gauge,
	cfg SocketConfig,
) *SocketHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	if cfg.LocationRate <= 0 {
		cfg.LocationRate = 1
	}
	if cfg.LocationBurst <= 0 {
		cfg.LocationBurst = 5
	}
	return &SocketHandler{
		broker:    broker,
		auth:      resolver,
		locations: locations,
		conns:     conns,
		cfg:       cfg,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

type wsInbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type wsFrame struct {
	Type  tracking.EventType `json:"type"`
	Title string             `json:"title,omitempty"`
	Data  map[string]any     `json:"data,omitempty"`
	At    time.Time          `json:"at"`
}

func errorFrame(msg string) wsFrame {
	return wsFrame{Type: tracking.EventError, Data: map[string]any{"message": msg}, At: time.Now()}
}

// Serve upgrades the connection. Anonymous callers are refused before the upgrade.
func (h *SocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	p, err := h.auth.Principal(r)
	if err != nil || p.Anonymous() || len(p.Rooms()) == 0 {
		writeError(h.logger, w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// апгрейдер уже ответил клиенту
		h.logger.Debug("websocket upgrade failed", logx.Err(err))
		return
	}
	if h.conns != nil {
		h.conns.Inc()
		defer h.conns.Dec()
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	out := make(chan wsFrame, wsOutBuffer)
	var wg sync.WaitGroup
	for _, room := range p.Rooms() {
		events, unsubscribe, err := h.broker.Subscribe(ctx, room)
		if err != nil {
			h.logger.Warn("tracking subscribe failed", logx.String("room", room), logx.Err(err))
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer unsubscribe()
			forward(ctx, events, out)
		}()
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeLoop(ctx, conn, out)
		cancel()
		// разблокирует ReadJSON если писатель упал первым
		_ = conn.Close()
	}()

	h.logger.Debug("websocket connected",
		logx.String("user_id", p.UserID),
		logx.String("driver_id", p.DriverID),
		logx.String("restaurant_id", p.RestaurantID),
	)
	h.readLoop(ctx, conn, p, out)

	cancel()
	<-writerDone
	wg.Wait()
}

func forward(ctx context.Context, events <-chan tracking.Event, out chan<- wsFrame) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			select {
			case out <- wsFrame{Type: e.Type, Title: e.Title, Data: e.Data, At: e.At}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (h *SocketHandler) writeLoop(ctx context.Context, conn *websocket.Conn, out <-chan wsFrame) {
	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(wsWriteWait))
			return
		case f := <-out:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(f); err != nil {
				h.logger.Debug("websocket write failed", logx.Err(err))
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}

func (h *SocketHandler) readLoop(ctx context.Context, conn *websocket.Conn, p auth.Principal, out chan<- wsFrame) {
	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	limiter := rate.NewLimiter(rate.Limit(h.cfg.LocationRate), h.cfg.LocationBurst)
	reply := func(f wsFrame) bool {
		select {
		case out <- f:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		var msg wsInbound
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("websocket read failed", logx.Err(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))

		if msg.Type != wsUpdateLocation {
			if !reply(errorFrame("unknown message type")) {
				return
			}
			continue
		}
		if !reply(h.updateLocation(ctx, p, msg.Data, limiter)) {
			return
		}
	}
}

func (h *SocketHandler) updateLocation(ctx context.Context, p auth.Principal, raw json.RawMessage, limiter *rate.Limiter) wsFrame {
	if p.Role != auth.RoleDriver || p.DriverID == "" {
		return errorFrame("only drivers can update location")
	}
	if !limiter.Allow() {
		return errorFrame("too many location updates")
	}

	var loc locationRequest
	if err := json.Unmarshal(raw, &loc); err != nil || loc.Latitude == nil || loc.Longitude == nil {
		return errorFrame("latitude and longitude are required")
	}
	d, err := h.locations.UpdateLocation(ctx, p.DriverID, *loc.Latitude, *loc.Longitude)
	if err != nil {
		h.logger.Warn("websocket location update failed",
			logx.String("driver_id", p.DriverID),
			logx.Err(err),
		)
		_, msg := classifyAppError(err, "driver not found")
		return errorFrame(msg)
	}
	data := map[string]any{
		"driverId":  d.ID,
		"latitude":  *loc.Latitude,
		"longitude": *loc.Longitude,
	}
	return wsFrame{Type: tracking.EventLocationUpdated, Data: data, At: time.Now()}
}
