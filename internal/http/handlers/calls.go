package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/steveyiyo/videocall-backend/internal/core/videocall"
	"github.com/steveyiyo/videocall-backend/pkg/types"
	"github.com/steveyiyo/videocall-backend/pkg/ws"
)

const (
	notifyIncomingCall  = "incoming-call"
	notifyCallScheduled = "call-scheduled"
)

type CallsHandler struct {
	Svc *videocall.Service
	Hub *ws.Hub
	Log *zap.Logger
}

func NewCallsHandler(svc *videocall.Service, hub *ws.Hub, log *zap.Logger) *CallsHandler {
	return &CallsHandler{Svc: svc, Hub: hub, Log: log}
}

func (h *CallsHandler) GenerateRoom(c *gin.Context) {
	h.run(c, videocall.OpGenerateRoom, http.StatusBadRequest, "Failed to create video call room", func() (any, error) {
		var req types.GenerateRoomReq
		if err := bind(c, videocall.OpGenerateRoom, &req); err != nil {
			return nil, err
		}
		return h.Svc.GenerateRoom(req)
	})
}

func (h *CallsHandler) Schedule(c *gin.Context) {
	h.run(c, videocall.OpSchedule, http.StatusBadRequest, "Failed to schedule video call", func() (any, error) {
		var req types.ScheduleCallReq
		if err := bind(c, videocall.OpSchedule, &req); err != nil {
			return nil, err
		}
		resp, err := h.Svc.ScheduleCall(req)
		if err != nil {
			return nil, err
		}
		n := types.Notification{
			Type:            notifyCallScheduled,
			RoomID:          resp.RoomID,
			AppointmentID:   resp.AppointmentID,
			ScheduledTime:   resp.ScheduledTime,
			SignalingServer: resp.SignalingServer,
			TS:              h.Svc.Now().UnixMilli(),
		}
		h.notify(req.DoctorID, withFrom(n, req.PatientID, req.PatientName, nil))
		h.notify(req.PatientID, withFrom(n, req.DoctorID, req.DoctorName, nil))
		return resp, nil
	})
}

func (h *CallsHandler) StartInstantCall(c *gin.Context) {
	h.run(c, videocall.OpInstantCall, http.StatusBadRequest, "Failed to start instant call", func() (any, error) {
		var req types.InstantCallReq
		if err := bind(c, videocall.OpInstantCall, &req); err != nil {
			return nil, err
		}
		resp, err := h.Svc.StartInstantCall(req)
		if err != nil {
			return nil, err
		}
		h.notify(req.RecipientID, withFrom(types.Notification{
			Type:            notifyIncomingCall,
			RoomID:          resp.RoomID,
			SignalingServer: resp.SignalingServer,
			TS:              h.Svc.Now().UnixMilli(),
		}, req.InitiatorID, req.InitiatorName, req.InitiatorType))
		return resp, nil
	})
}

func (h *CallsHandler) RoomInfo(c *gin.Context) {
	h.run(c, videocall.OpRoomInfo, http.StatusNotFound, "Room not found", func() (any, error) {
		return h.Svc.RoomInfo(strings.TrimPrefix(c.Param("roomId"), "/")), nil
	})
}

func (h *CallsHandler) EndCall(c *gin.Context) {
	h.run(c, videocall.OpEndCall, http.StatusBadRequest, "Failed to end call", func() (any, error) {
		var req types.EndCallReq
		if err := bind(c, videocall.OpEndCall, &req); err != nil {
			return nil, err
		}
		return h.Svc.EndCall(req), nil
	})
}

func (h *CallsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.Svc.Health())
}

// run executes fn and renders either its result or the failure envelope.
// Panics inside fn are reported as internal failures with the same status
// as any other failure of the endpoint.
func (h *CallsHandler) run(c *gin.Context, op string, failStatus int, prefix string, fn func() (any, error)) {
	resp, err := guard(op, fn)
	if err != nil {
		h.Log.Warn("video call request failed",
			zap.String("op", op),
			zap.Stringer("kind", videocall.KindOf(err)),
			zap.Error(err),
		)
		c.JSON(failStatus, types.ErrorResp{Error: prefix + ": " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func guard(op string, fn func() (any, error)) (resp any, err error) {
	defer func() {
		if v := recover(); v != nil {
			resp, err = nil, videocall.Recovered(op, v)
		}
	}()
	return fn()
}

// bind decodes the JSON body into dst. An empty body counts as {}.
func bind(c *gin.Context, op string, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return videocall.Validation(op, err)
	}
	return nil
}

func (h *CallsHandler) notify(userID *string, n types.Notification) {
	if h.Hub == nil || userID == nil || *userID == "" {
		return
	}
	if sent := h.Hub.Send(*userID, n); sent > 0 {
		h.Log.Debug("notification queued",
			zap.String("type", n.Type),
			zap.String("user", *userID),
			zap.Int("conns", sent),
		)
	}
}

func withFrom(n types.Notification, id, name, kind *string) types.Notification {
	n.FromID, n.FromName, n.FromType = id, name, kind
	return n
}
