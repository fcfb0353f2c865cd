package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/steveyiyo/videocall-backend/internal/core/videocall"
)

var uuidRe = `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`

func init() { gin.SetMode(gin.TestMode) }

func newCallsEngine(svc *videocall.Service) *gin.Engine {
	h := NewCallsHandler(svc, nil, zap.NewNop())
	r := gin.New()
	r.POST("/generate-room", h.GenerateRoom)
	r.POST("/schedule", h.Schedule)
	r.POST("/start-instant-call", h.StartInstantCall)
	r.GET("/room/*roomId", h.RoomInfo)
	r.POST("/end-call", h.EndCall)
	r.GET("/health", h.Health)
	return r
}

func call(t *testing.T, r http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func TestGenerateRoomScenario(t *testing.T) {
	r := newCallsEngine(videocall.NewService("http://localhost:4000"))

	code, body := call(t, r, http.MethodPost, "/generate-room", `{"doctorId":"D1","patientId":"P1"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Regexp(t, regexp.MustCompile(`^ROOM-`+uuidRe+`$`), body["roomId"])
	assert.Equal(t, "D1", body["doctorId"])
	assert.Equal(t, "P1", body["patientId"])
	assert.Equal(t, "http://localhost:4000", body["signalingServer"])
	assert.NotEmpty(t, body["createdAt"])
	assert.Equal(t, "Video call room created successfully", body["message"])
	assert.NotContains(t, body, "error")

	_, again := call(t, r, http.MethodPost, "/generate-room", `{"doctorId":"D1","patientId":"P1"}`)
	assert.NotEqual(t, body["roomId"], again["roomId"])
}

func TestGenerateRoomWithAppointment(t *testing.T) {
	r := newCallsEngine(videocall.NewService("http://localhost:4000"))

	_, body := call(t, r, http.MethodPost, "/generate-room", `{"appointmentId":"APPT-7","extra":"ignored"}`)
	assert.Equal(t, "APPT-7", body["roomId"])
	assert.Contains(t, body, "doctorId")
	assert.Nil(t, body["doctorId"])
}

func TestScheduleScenario(t *testing.T) {
	r := newCallsEngine(videocall.NewService("http://localhost:4000"))

	code, body := call(t, r, http.MethodPost, "/schedule",
		`{"doctorId":"D1","patientId":"P1","scheduledTime":"2024-01-01T10:00"}`)
	require.Equal(t, http.StatusOK, code)
	appt, _ := body["appointmentId"].(string)
	assert.Regexp(t, regexp.MustCompile(`^APPT-`+uuidRe+`$`), appt)
	assert.Equal(t, "ROOM-"+appt, body["roomId"])
	assert.Equal(t, "SCHEDULED", body["status"])
	assert.Equal(t, "2024-01-01T10:00", body["scheduledTime"])
	assert.Nil(t, body["doctorName"])
}

func TestStartInstantCall(t *testing.T) {
	r := newCallsEngine(videocall.NewService("http://localhost:4000"))

	code, body := call(t, r, http.MethodPost, "/start-instant-call",
		`{"initiatorId":"D1","initiatorType":"doctor","initiatorName":"Dr. Who","recipientId":"P1"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Regexp(t, regexp.MustCompile(`^INSTANT-`+uuidRe+`$`), body["roomId"])
	assert.Equal(t, "INSTANT", body["callType"])
	assert.Equal(t, "doctor", body["initiatorType"])
	assert.NotEmpty(t, body["startedAt"])
}

func TestRoomInfoReportsAnyRoomActive(t *testing.T) {
	r := newCallsEngine(videocall.NewService("http://localhost:4000"))

	tests := []struct {
		path string
		want string
	}{
		{"/room/ROOM-123", "ROOM-123"},
		{"/room/never-issued", "never-issued"},
		{"/room/", ""},
		{"/room/with/slash", "with/slash"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, body := call(t, r, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, code)
			assert.Equal(t, true, body["success"])
			assert.Equal(t, tt.want, body["roomId"])
			assert.Equal(t, "ACTIVE", body["status"])
		})
	}
}

func TestEndCall(t *testing.T) {
	r := newCallsEngine(videocall.NewService("http://localhost:4000"))

	code, body := call(t, r, http.MethodPost, "/end-call", `{"roomId":"ROOM-1","userId":"U1","duration":-30}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ROOM-1", body["roomId"])
	assert.Equal(t, float64(-30), body["duration"])
	assert.NotEmpty(t, body["endedAt"])
}

func TestEmptyBodyIsEmptyRequest(t *testing.T) {
	r := newCallsEngine(videocall.NewService("http://localhost:4000"))

	code, body := call(t, r, http.MethodPost, "/end-call", "")
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, body["roomId"])
	assert.Nil(t, body["duration"])
}

func TestMalformedInputFailsWithEnvelope(t *testing.T) {
	r := newCallsEngine(videocall.NewService("http://localhost:4000"))

	tests := []struct {
		path   string
		body   string
		prefix string
	}{
		{"/generate-room", `{"doctorId":42}`, "Failed to create video call room: "},
		{"/schedule", `{"scheduledTime":["x"]}`, "Failed to schedule video call: "},
		{"/start-instant-call", `{"initiatorType":true}`, "Failed to start instant call: "},
		{"/end-call", `{"duration":"ten"}`, "Failed to end call: "},
		{"/end-call", `{"duration":1.5}`, "Failed to end call: "},
		{"/generate-room", `{not json`, "Failed to create video call room: "},
	}
	for _, tt := range tests {
		t.Run(tt.path+" "+tt.body, func(t *testing.T) {
			code, body := call(t, r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, false, body["success"])
			msg, _ := body["error"].(string)
			assert.True(t, strings.HasPrefix(msg, tt.prefix), msg)
		})
	}
}

func TestPanicsBecomeEndpointFailures(t *testing.T) {
	svc := videocall.NewService("http://localhost:4000")
	svc.Now = nil
	r := newCallsEngine(svc)

	code, body := call(t, r, http.MethodPost, "/generate-room", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "Failed to create video call room: panic:")
}

func TestHealth(t *testing.T) {
	r := newCallsEngine(videocall.NewService("http://localhost:4000"))
	call(t, r, http.MethodPost, "/schedule", `{}`)

	code, body := call(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Video Call Service", body["service"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRoomInfoFailureIsNotFound(t *testing.T) {
	h := NewCallsHandler(nil, nil, zap.NewNop())
	r := gin.New()
	r.GET("/room/*roomId", h.RoomInfo)

	code, body := call(t, r, http.MethodGet, "/room/ROOM-1", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["success"])
	msg, _ := body["error"].(string)
	assert.True(t, strings.HasPrefix(msg, "Room not found: "), msg)
}
