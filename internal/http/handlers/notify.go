package handlers

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/steveyiyo/videocall-backend/pkg/types"
	"github.com/steveyiyo/videocall-backend/pkg/ws"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type NotifyHandler struct {
	Hub      *ws.Hub
	Log      *zap.Logger
	Upgrader websocket.Upgrader
}

// NewNotifyHandler accepts upgrades from the given browser origins. Requests
// without an Origin header (non-browser clients) are always accepted.
func NewNotifyHandler(hub *ws.Hub, log *zap.Logger, origins []string) *NotifyHandler {
	return &NotifyHandler{
		Hub: hub,
		Log: log,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				o := r.Header.Get("Origin")
				return o == "" || slices.Contains(origins, o)
			},
		},
	}
}

func (h *NotifyHandler) WS(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResp{Error: "userId is required"})
		return
	}
	raw, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Debug("notification upgrade failed", zap.Error(err))
		return
	}
	conn := ws.NewConn(raw)
	h.Hub.Add(userID, conn)
	h.Log.Info("notification subscriber joined", zap.String("user", userID))
	defer func() {
		h.Hub.Remove(userID, conn)
		conn.Close()
		h.Log.Info("notification subscriber left", zap.String("user", userID))
	}()

	raw.SetReadLimit(4 << 10)
	raw.SetReadDeadline(time.Now().Add(pongWait))
	raw.SetPongHandler(func(string) error {
		return raw.SetReadDeadline(time.Now().Add(pongWait))
	})

	if err := conn.WriteJSON(gin.H{"type": "hello", "ts": time.Now().UnixMilli()}); err != nil {
		return
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(pingPeriod)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if conn.Ping() != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	// Subscribers only listen; inbound frames are drained so control frames
	// get processed and a closed socket ends the loop.
	for {
		if _, _, err := raw.ReadMessage(); err != nil {
			return
		}
	}
}
