package videocall

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/steveyiyo/videocall-backend/pkg/types"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusActive    = "ACTIVE"
	StatusOK        = "OK"
	CallTypeInstant = "INSTANT"

	ServiceName = "Video Call Service"

	roomPrefix        = "ROOM-"
	appointmentPrefix = "APPT-"
	instantPrefix     = "INSTANT-"
)

const (
	OpGenerateRoom = "generate room"
	OpSchedule     = "schedule call"
	OpInstantCall  = "start instant call"
	OpRoomInfo     = "room info"
	OpEndCall      = "end call"
)

// Service issues room and appointment identifiers. It keeps no state between
// calls; nothing it returns is stored or looked up later.
type Service struct {
	SignalingServer string
	NewID           func() (uuid.UUID, error)
	Now             func() time.Time
}

func NewService(signalingServer string) *Service {
	return &Service{
		SignalingServer: signalingServer,
		NewID:           uuid.NewRandom,
		Now:             time.Now,
	}
}

func (s *Service) GenerateRoom(req types.GenerateRoomReq) (types.GenerateRoomResp, error) {
	var roomID string
	if req.AppointmentID != nil {
		roomID = *req.AppointmentID
	} else {
		id, err := s.token(OpGenerateRoom, roomPrefix)
		if err != nil {
			return types.GenerateRoomResp{}, err
		}
		roomID = id
	}
	return types.GenerateRoomResp{
		Success:         true,
		RoomID:          roomID,
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		SignalingServer: s.SignalingServer,
		CreatedAt:       s.timestamp(),
		Message:         "Video call room created successfully",
	}, nil
}

func (s *Service) ScheduleCall(req types.ScheduleCallReq) (types.ScheduleCallResp, error) {
	apptID, err := s.token(OpSchedule, appointmentPrefix)
	if err != nil {
		return types.ScheduleCallResp{}, err
	}
	return types.ScheduleCallResp{
		Success:         true,
		AppointmentID:   apptID,
		RoomID:          roomPrefix + apptID,
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		DoctorName:      req.DoctorName,
		PatientName:     req.PatientName,
		ScheduledTime:   req.ScheduledTime,
		Status:          StatusScheduled,
		SignalingServer: s.SignalingServer,
		CreatedAt:       s.timestamp(),
		Message:         "Video call appointment scheduled successfully",
	}, nil
}

func (s *Service) StartInstantCall(req types.InstantCallReq) (types.InstantCallResp, error) {
	roomID, err := s.token(OpInstantCall, instantPrefix)
	if err != nil {
		return types.InstantCallResp{}, err
	}
	return types.InstantCallResp{
		Success:         true,
		RoomID:          roomID,
		InitiatorID:     req.InitiatorID,
		InitiatorType:   req.InitiatorType,
		InitiatorName:   req.InitiatorName,
		RecipientID:     req.RecipientID,
		RecipientName:   req.RecipientName,
		CallType:        CallTypeInstant,
		SignalingServer: s.SignalingServer,
		StartedAt:       s.timestamp(),
		Message:         "Instant video call initiated successfully",
	}, nil
}

// RoomInfo reports every room as active. There is no room registry to
// consult, so unknown and empty ids are answered the same way.
func (s *Service) RoomInfo(roomID string) types.RoomInfoResp {
	return types.RoomInfoResp{
		Success:         true,
		RoomID:          roomID,
		Status:          StatusActive,
		SignalingServer: s.SignalingServer,
		Message:         "Room information retrieved successfully",
	}
}

func (s *Service) EndCall(req types.EndCallReq) types.EndCallResp {
	return types.EndCallResp{
		Success:  true,
		RoomID:   req.RoomID,
		UserID:   req.UserID,
		Duration: req.Duration,
		EndedAt:  s.timestamp(),
		Message:  "Video call ended successfully",
	}
}

func (s *Service) Health() types.HealthResp {
	return types.HealthResp{
		Status:    StatusOK,
		Service:   ServiceName,
		Timestamp: s.timestamp(),
	}
}

func (s *Service) token(op, prefix string) (string, error) {
	id, err := s.NewID()
	if err != nil {
		return "", Internal(op, err)
	}
	return prefix + id.String(), nil
}

func (s *Service) timestamp() string {
	return LocalTimestamp(s.Now())
}

// LocalTimestamp renders t as an ISO-8601 local date-time with no offset.
// Seconds are dropped when they and the fraction are zero, and the fraction
// is printed as 3, 6 or 9 digits, whichever is the shortest exact form.
func LocalTimestamp(t time.Time) string {
	out := t.Format("2006-01-02T15:04")
	sec, nano := t.Second(), t.Nanosecond()
	if sec == 0 && nano == 0 {
		return out
	}
	out += fmt.Sprintf(":%02d", sec)
	switch {
	case nano == 0:
	case nano%1_000_000 == 0:
		out += fmt.Sprintf(".%03d", nano/1_000_000)
	case nano%1_000 == 0:
		out += fmt.Sprintf(".%06d", nano/1_000)
	default:
		out += fmt.Sprintf(".%09d", nano)
	}
	return out
}
