package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/db/dbtest"
	"github.com/BruksfildServices01/barber-booking/internal/idempotency"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	testSecret = "route-secret"
	monday     = "2030-10-21"
)

type testServer struct {
	r          *gin.Engine
	db         *gorm.DB
	dispatcher *audit.Dispatcher
	providerID uint
	serviceID  uint
	token      string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := dbtest.New(t)
	p := dbtest.SeedProvider(t, gdb, "Bruno", 1, "09:00", "12:00")
	svc := dbtest.SeedService(t, gdb, "Corte", 30, 45)

	cfg := &config.Config{
		Env:             "test",
		JWTSecret:       testSecret,
		Timezone:        "UTC",
		SlotStepMinutes: 30,
	}

	auditLogger := audit.New(gdb)
	dispatcher := audit.NewDispatcher(zap.NewNop(), auditLogger)

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:          gdb,
		Config:      cfg,
		Log:         zap.NewNop(),
		Audit:       dispatcher,
		AuditLogger: auditLogger,
		Idempotency: idempotency.NewMemoryStore(time.Hour),
	})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(p.ID), 10),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	return &testServer{r: r, db: gdb, dispatcher: dispatcher, providerID: p.ID, serviceID: svc.ID, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w.Code, out
}

func (s *testServer) auth() map[string]string {
	return map[string]string{"Authorization": "Bearer " + s.token}
}

func (s *testServer) providerPath(suffix string) string {
	return "/api/public/providers/" + strconv.FormatUint(uint64(s.providerID), 10) + suffix
}

func (s *testServer) book(t *testing.T, start string, headers map[string]string) (int, map[string]any) {
	t.Helper()
	return s.do(t, http.MethodPost, s.providerPath("/appointments"), map[string]any{
		"service_id":   s.serviceID,
		"date":         monday,
		"start_time":   start,
		"client_name":  "Ana",
		"client_phone": "(11) 99999-0000",
	}, headers)
}

func slotsOf(body map[string]any) []string {
	raw, _ := body["slots"].([]any)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		out = append(out, s.(string))
	}
	return out
}

func TestHealthAndCatalog(t *testing.T) {
	s := newTestServer(t)

	if code, _ := s.do(t, http.MethodGet, "/health", nil, nil); code != http.StatusOK {
		t.Fatalf("health = %d", code)
	}

	code, body := s.do(t, http.MethodGet, "/api/public/services", nil, nil)
	if code != http.StatusOK || body["total"].(float64) != 1 {
		t.Fatalf("services = %d %v", code, body)
	}
}

func TestPublicAvailability(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"missing date", s.providerPath("/availability?duration=30"), http.StatusBadRequest, "missing_date"},
		{"bad date", s.providerPath("/availability?date=21-10-2030&duration=30"), http.StatusBadRequest, "invalid_date"},
		{"bad provider", "/api/public/providers/abc/availability?date=" + monday, http.StatusBadRequest, "invalid_id"},
		{"bad duration", s.providerPath("/availability?date=" + monday + "&duration=x"), http.StatusBadRequest, "invalid_duration"},
		{"no duration", s.providerPath("/availability?date=" + monday), http.StatusBadRequest, "invalid_duration"},
		{"unknown service", s.providerPath("/availability?date=" + monday + "&service_id=99"), http.StatusBadRequest, "service_not_found"},
		{"max int step", s.providerPath("/availability?date=" + monday + "&duration=30&step=9223372036854775807"), http.StatusBadRequest, "invalid_step"},
		{"step over a day", s.providerPath("/availability?date=" + monday + "&duration=30&step=1441"), http.StatusBadRequest, "invalid_step"},
		{"step overflows int", s.providerPath("/availability?date=" + monday + "&duration=30&step=99999999999999999999"), http.StatusBadRequest, "invalid_step"},
		{"duration over a day", s.providerPath("/availability?date=" + monday + "&duration=100000"), http.StatusBadRequest, "invalid_duration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodGet, tt.path, nil, nil)
			if code != tt.status || body["error_code"] != tt.code {
				t.Fatalf("got %d %v, want %d %s", code, body, tt.status, tt.code)
			}
		})
	}

	code, body := s.do(t, http.MethodGet, s.providerPath("/availability?date="+monday+"&service_id="+strconv.Itoa(int(s.serviceID))), nil, nil)
	if code != http.StatusOK || len(slotsOf(body)) != 6 {
		t.Fatalf("availability = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodGet, s.providerPath("/availability?date="+monday+"&duration=30&step=1440"), nil, nil)
	if got := slotsOf(body); code != http.StatusOK || len(got) != 1 || got[0] != "09:00" {
		t.Fatalf("day-long step = %d %v, want only the window start", code, body)
	}

	code, body = s.do(t, http.MethodGet, s.providerPath("/availability?date=2030-10-22&duration=30"), nil, nil)
	if code != http.StatusOK || body["slots"] == nil || len(slotsOf(body)) != 0 {
		t.Fatalf("closed day should return empty slots, got %d %v", code, body)
	}
}

func TestPublicBooking(t *testing.T) {
	s := newTestServer(t)

	code, first := s.book(t, "10:00", nil)
	if code != http.StatusCreated || first["status"] != "pending" || first["start_time"] != "10:00" || first["end_time"] != "10:30" {
		t.Fatalf("create = %d %v", code, first)
	}

	code, body := s.book(t, "10:00", nil)
	if code != http.StatusConflict || body["error_code"] != "slot_conflict" {
		t.Fatalf("double booking = %d %v", code, body)
	}

	_, body = s.do(t, http.MethodGet, s.providerPath("/availability?date="+monday+"&duration=30"), nil, nil)
	for _, slot := range slotsOf(body) {
		if slot == "10:00" {
			t.Fatalf("booked slot still offered: %v", body)
		}
	}

	key := map[string]string{"Idempotency-Key": "abc-123"}
	code, created := s.book(t, "11:00", key)
	if code != http.StatusCreated {
		t.Fatalf("keyed create = %d %v", code, created)
	}
	code, replay := s.book(t, "11:00", key)
	if code != http.StatusOK || replay["id"] != created["id"] {
		t.Fatalf("replay = %d %v, want id %v", code, replay, created["id"])
	}

	code, body = s.do(t, http.MethodPost, s.providerPath("/appointments"), map[string]any{
		"date": monday, "start_time": "09:00", "end_time": "09:30",
		"client_name": "Ana", "client_phone": "abc",
	}, nil)
	if code != http.StatusBadRequest || body["error_code"] != "invalid_client_phone" {
		t.Fatalf("bad phone = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodPost, s.providerPath("/appointments"), map[string]any{
		"date": monday, "start_time": "9am", "end_time": "09:30",
		"client_name": "Ana", "client_phone": "11999990000",
	}, nil)
	if code != http.StatusBadRequest || body["error_code"] != "invalid_start_time" {
		t.Fatalf("bad start = %d %v", code, body)
	}

	code, body = s.book(t, "11:45", nil)
	if code != http.StatusBadRequest || body["error_code"] != "outside_working_hours" {
		t.Fatalf("past closing = %d %v", code, body)
	}
}

func TestProviderAppointments(t *testing.T) {
	s := newTestServer(t)
	_, a := s.book(t, "09:00", nil)
	_, b := s.book(t, "10:00", nil)

	if code, _ := s.do(t, http.MethodGet, "/api/me/appointments?date="+monday, nil, nil); code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list = %d", code)
	}

	code, body := s.do(t, http.MethodGet, "/api/me/appointments?date="+monday, nil, s.auth())
	if code != http.StatusOK || body["total"].(float64) != 2 {
		t.Fatalf("list = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodGet, "/api/me/appointments/month?year=2030&month=10", nil, s.auth())
	if code != http.StatusOK || body["total"].(float64) != 2 {
		t.Fatalf("month = %d %v", code, body)
	}

	aPath := "/api/me/appointments/" + a["id"].(string)
	bPath := "/api/me/appointments/" + b["id"].(string)

	code, body = s.do(t, http.MethodPatch, aPath+"/confirm", nil, s.auth())
	if code != http.StatusOK || body["status"] != "confirmed" {
		t.Fatalf("confirm = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodPatch, aPath+"/status", map[string]string{"status": "completed"}, s.auth())
	if code != http.StatusOK || body["status"] != "completed" {
		t.Fatalf("complete = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodPatch, bPath+"/cancel", nil, s.auth())
	if code != http.StatusOK || body["status"] != "cancelled" {
		t.Fatalf("cancel = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodPatch, bPath+"/confirm", nil, s.auth())
	if code != http.StatusConflict || body["error_code"] != "invalid_transition" {
		t.Fatalf("confirm cancelled = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodPatch, bPath+"/status", map[string]string{"status": "archived"}, s.auth())
	if code != http.StatusBadRequest || body["error_code"] != "invalid_status" {
		t.Fatalf("bogus status = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodPatch, "/api/me/appointments/0b9e6c1e-8f43-4d55-9c53-3f2f0f1d2a10/confirm", nil, s.auth())
	if code != http.StatusNotFound || body["error_code"] != "appointment_not_found" {
		t.Fatalf("unknown id = %d %v", code, body)
	}

	// both slots are free again
	if code, body := s.book(t, "10:00", nil); code != http.StatusCreated {
		t.Fatalf("rebook cancelled slot = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodGet, "/api/me/revenue", nil, s.auth())
	if code != http.StatusOK || body["projected"] == nil {
		t.Fatalf("revenue = %d %v", code, body)
	}

	s.dispatcher.Close()
	code, body = s.do(t, http.MethodGet, "/api/me/audit-logs?action=appointment_created", nil, s.auth())
	if code != http.StatusOK || body["total"].(float64) != 3 {
		t.Fatalf("audit logs = %d %v", code, body)
	}
}

func TestWorkingHoursAndBlackouts(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPut, "/api/me/working-hours", map[string]any{
		"days": []map[string]any{
			{"weekday": 1, "active": true, "start_time": "09:00", "end_time": "12:00"},
			{"weekday": 1, "active": true, "start_time": "13:00", "end_time": "18:00"},
		},
	}, s.auth())
	if code != http.StatusBadRequest || body["error_code"] != "duplicate_weekday" {
		t.Fatalf("duplicate weekday = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodPut, "/api/me/working-hours", map[string]any{
		"days": []map[string]any{
			{"weekday": 1, "active": true, "start_time": "18:00", "end_time": "09:00"},
		},
	}, s.auth())
	if code != http.StatusBadRequest || body["error_code"] != "invalid_working_window" {
		t.Fatalf("inverted window = %d %v", code, body)
	}

	code, _ = s.do(t, http.MethodPut, "/api/me/working-hours", map[string]any{
		"days": []map[string]any{
			{"weekday": 0, "active": false},
			{"weekday": 1, "active": true, "start_time": "09:00", "end_time": "13:00", "break_start": "11:00", "break_end": "12:00"},
		},
	}, s.auth())
	if code != http.StatusOK {
		t.Fatalf("update = %d", code)
	}

	_, body = s.do(t, http.MethodGet, s.providerPath("/availability?date="+monday+"&duration=60"), nil, nil)
	got := slotsOf(body)
	want := []string{"09:00", "09:30", "10:00", "12:00"}
	if len(got) != len(want) {
		t.Fatalf("slots with break = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slots with break = %v, want %v", got, want)
		}
	}

	code, created := s.do(t, http.MethodPost, "/api/me/blackouts", map[string]any{
		"date": monday, "all_day": true, "reason": "holiday",
	}, s.auth())
	if code != http.StatusCreated {
		t.Fatalf("blackout = %d %v", code, created)
	}

	_, body = s.do(t, http.MethodGet, s.providerPath("/availability?date="+monday+"&duration=30"), nil, nil)
	if len(slotsOf(body)) != 0 {
		t.Fatalf("all-day blackout should empty the day, got %v", body)
	}

	code, body = s.do(t, http.MethodPost, "/api/me/blackouts", map[string]any{
		"date": monday, "start_time": "11:00", "end_time": "10:00",
	}, s.auth())
	if code != http.StatusBadRequest || body["error_code"] != "invalid_interval" {
		t.Fatalf("inverted blackout = %d %v", code, body)
	}

	path := "/api/me/blackouts/" + strconv.Itoa(int(created["id"].(float64)))
	if code, _ := s.do(t, http.MethodDelete, path, nil, s.auth()); code != http.StatusNoContent {
		t.Fatalf("delete = %d", code)
	}
	if code, _ := s.do(t, http.MethodDelete, path, nil, s.auth()); code != http.StatusNotFound {
		t.Fatalf("second delete = %d", code)
	}
}

func TestStoredTimesAreCanonical(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPut, "/api/me/working-hours", map[string]any{
		"days": []map[string]any{
			{"weekday": 1, "active": true, "start_time": "+9:00", "end_time": "12:00"},
		},
	}, s.auth())
	if code != http.StatusBadRequest || body["error_code"] != "invalid_working_window" {
		t.Fatalf("signed hour = %d %v", code, body)
	}

	code, _ = s.do(t, http.MethodPut, "/api/me/working-hours", map[string]any{
		"days": []map[string]any{
			{"weekday": 1, "active": true, "start_time": "9:00", "end_time": "12:00", "break_start": "9:30", "break_end": "10:00"},
		},
	}, s.auth())
	if code != http.StatusOK {
		t.Fatalf("update = %d", code)
	}

	var row models.WeeklySchedule
	if err := s.db.Where("provider_id = ? AND weekday = ?", s.providerID, 1).First(&row).Error; err != nil {
		t.Fatalf("load schedule: %v", err)
	}
	if row.StartTime != "09:00" || row.BreakStart != "09:30" {
		t.Fatalf("stored %q / %q, want 09:00 / 09:30", row.StartTime, row.BreakStart)
	}

	code, body = s.do(t, http.MethodPost, "/api/me/blackouts", map[string]any{
		"date": monday, "start_time": "0009:0030", "end_time": "10:00",
	}, s.auth())
	if code != http.StatusBadRequest || body["error_code"] != "invalid_time" {
		t.Fatalf("padded blackout = %d %v", code, body)
	}

	for _, w := range [][2]string{{"10:00", "10:30"}, {"7:05", "8:00"}} {
		code, body = s.do(t, http.MethodPost, "/api/me/blackouts", map[string]any{
			"date": monday, "start_time": w[0], "end_time": w[1],
		}, s.auth())
		if code != http.StatusCreated {
			t.Fatalf("blackout %v = %d %v", w, code, body)
		}
	}

	_, body = s.do(t, http.MethodGet, "/api/me/blackouts?from="+monday, nil, s.auth())
	data, _ := body["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("blackouts = %v", body)
	}
	first := data[0].(map[string]any)
	if first["start_time"] != "07:05" || first["end_time"] != "08:00" {
		t.Fatalf("first blackout = %v, want 07:05-08:00", first)
	}
}
