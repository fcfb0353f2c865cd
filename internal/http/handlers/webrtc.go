package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"

	"github.com/steveyiyo/videocall-backend/pkg/types"
)

// WebRTCHandler serves the ICE servers clients should put in their
// RTCPeerConnection configuration.
type WebRTCHandler struct {
	ICEServers []webrtc.ICEServer
}

func NewWebRTCHandler(servers []webrtc.ICEServer) *WebRTCHandler {
	return &WebRTCHandler{ICEServers: servers}
}

func (h *WebRTCHandler) ICE(c *gin.Context) {
	c.JSON(http.StatusOK, types.ICEServersResp{
		Success:    true,
		ICEServers: h.ICEServers,
	})
}
