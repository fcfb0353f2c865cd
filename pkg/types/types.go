package types

import "github.com/pion/webrtc/v4"

// Request fields are pointers: a key missing from the body stays nil and is
// echoed back as null.

type GenerateRoomReq struct {
	DoctorID      *string `json:"doctorId"`
	PatientID     *string `json:"patientId"`
	AppointmentID *string `json:"appointmentId"`
}

type GenerateRoomResp struct {
	Success         bool    `json:"success"`
	RoomID          string  `json:"roomId"`
	DoctorID        *string `json:"doctorId"`
	PatientID       *string `json:"patientId"`
	SignalingServer string  `json:"signalingServer"`
	CreatedAt       string  `json:"createdAt"`
	Message         string  `json:"message"`
}

type ScheduleCallReq struct {
	DoctorID      *string `json:"doctorId"`
	PatientID     *string `json:"patientId"`
	DoctorName    *string `json:"doctorName"`
	PatientName   *string `json:"patientName"`
	ScheduledTime *string `json:"scheduledTime"`
}

type ScheduleCallResp struct {
	Success         bool    `json:"success"`
	AppointmentID   string  `json:"appointmentId"`
	RoomID          string  `json:"roomId"`
	DoctorID        *string `json:"doctorId"`
	PatientID       *string `json:"patientId"`
	DoctorName      *string `json:"doctorName"`
	PatientName     *string `json:"patientName"`
	ScheduledTime   *string `json:"scheduledTime"`
	Status          string  `json:"status"`
	SignalingServer string  `json:"signalingServer"`
	CreatedAt       string  `json:"createdAt"`
	Message         string  `json:"message"`
}

type InstantCallReq struct {
	InitiatorID   *string `json:"initiatorId"`
	InitiatorType *string `json:"initiatorType"`
	InitiatorName *string `json:"initiatorName"`
	RecipientID   *string `json:"recipientId"`
	RecipientName *string `json:"recipientName"`
}

type InstantCallResp struct {
	Success         bool    `json:"success"`
	RoomID          string  `json:"roomId"`
	InitiatorID     *string `json:"initiatorId"`
	InitiatorType   *string `json:"initiatorType"`
	InitiatorName   *string `json:"initiatorName"`
	RecipientID     *string `json:"recipientId"`
	RecipientName   *string `json:"recipientName"`
	CallType        string  `json:"callType"`
	SignalingServer string  `json:"signalingServer"`
	StartedAt       string  `json:"startedAt"`
	Message         string  `json:"message"`
}

type RoomInfoResp struct {
	Success         bool   `json:"success"`
	RoomID          string `json:"roomId"`
	Status          string `json:"status"`
	SignalingServer string `json:"signalingServer"`
	Message         string `json:"message"`
}

type EndCallReq struct {
	RoomID   *string `json:"roomId"`
	UserID   *string `json:"userId"`
	Duration *int    `json:"duration"`
}

type EndCallResp struct {
	Success  bool    `json:"success"`
	RoomID   *string `json:"roomId"`
	UserID   *string `json:"userId"`
	Duration *int    `json:"duration"`
	EndedAt  string  `json:"endedAt"`
	Message  string  `json:"message"`
}

type HealthResp struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

type ICEServersResp struct {
	Success    bool               `json:"success"`
	ICEServers []webrtc.ICEServer `json:"iceServers"`
}

type ErrorResp struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Notification is pushed over the notification websocket.
type Notification struct {
	Type            string  `json:"type"`
	RoomID          string  `json:"roomId"`
	AppointmentID   string  `json:"appointmentId,omitempty"`
	FromID          *string `json:"fromId,omitempty"`
	FromName        *string `json:"fromName,omitempty"`
	FromType        *string `json:"fromType,omitempty"`
	ScheduledTime   *string `json:"scheduledTime,omitempty"`
	SignalingServer string  `json:"signalingServer"`
	TS              int64   `json:"ts"`
}
