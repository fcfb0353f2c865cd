package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/steveyiyo/videocall-backend/internal/config"
	"github.com/steveyiyo/videocall-backend/internal/core/videocall"
	"github.com/steveyiyo/videocall-backend/internal/http/handlers"
	"github.com/steveyiyo/videocall-backend/internal/http/middleware"
	"github.com/steveyiyo/videocall-backend/pkg/ws"
)

func NewRouter(cfg config.Config, log *zap.Logger) (*gin.Engine, error) {
	ice, err := videocall.ICEServers(cfg.ICEServers)
	if err != nil {
		return nil, fmt.Errorf("ice servers: %w", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(log, cfg.RateLimitPerMin, cfg.RateLimitBurst))

	svc := videocall.NewService(cfg.SignalingServer)
	hub := ws.NewHub()
	ch := handlers.NewCallsHandler(svc, hub, log)
	wh := handlers.NewWebRTCHandler(ice)
	nh := handlers.NewNotifyHandler(hub, log, cfg.AllowedOrigins)

	api := r.Group(cfg.BasePath)
	api.POST("/generate-room", ch.GenerateRoom)
	api.POST("/schedule", ch.Schedule)
	api.POST("/start-instant-call", ch.StartInstantCall)
	api.GET("/room/*roomId", ch.RoomInfo)
	api.POST("/end-call", ch.EndCall)
	api.GET("/health", ch.Health)
	api.GET("/ice-servers", wh.ICE)
	api.GET("/notifications", nh.WS)
	return r, nil
}
