package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kintai/kintai"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/buntdb"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func newTestRouter(t *testing.T) (*gin.Engine, *manualClock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := buntdb.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	clock := &manualClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := kintai.NewAttendanceService(kintai.NewAttendanceRepository(db), clock, 0, logger, kintai.NopNotificator{})
	return NewRouter(svc, logger), clock
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestClockInEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/clockin", `{"user_id":"u1","latitude":35.6,"longitude":139.7}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data kintai.AttendanceRecord `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.UserID != "u1" || len(resp.Data.Sessions) != 1 {
		t.Fatalf("unexpected record: %+v", resp.Data)
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("missing request id header")
	}
}

func TestClockInEndpoint_DoubleIsConflict(t *testing.T) {
	r, _ := newTestRouter(t)

	body := `{"user_id":"u1"}`
	if w := doJSON(t, r, http.MethodPost, "/clockin", body); w.Code != http.StatusOK {
		t.Fatalf("first clock in: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/clockin", body); w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", w.Code, w.Body.String())
	}
}

func TestPunchEndpoints_MissingBody(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/clockin", "/clockout", "/breakstart", "/breakend"} {
		if w := doJSON(t, r, http.MethodPost, path, ""); w.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", path, w.Code)
		}
		if w := doJSON(t, r, http.MethodPost, path, `{"latitude":1}`); w.Code != http.StatusBadRequest {
			t.Errorf("%s without user_id status = %d, want 400", path, w.Code)
		}
	}
}

func TestBreakEndEndpoint_WithoutBreakIsNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := doJSON(t, r, http.MethodPost, "/clockin", `{"user_id":"u1"}`); w.Code != http.StatusOK {
		t.Fatalf("clock in: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/breakend", `{"user_id":"u1"}`); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", w.Code, w.Body.String())
	}
}

func TestReportEndpoint_FullDay(t *testing.T) {
	r, clock := newTestRouter(t)

	if w := doJSON(t, r, http.MethodPost, "/clockin", `{"user_id":"u1"}`); w.Code != http.StatusOK {
		t.Fatalf("clock in: %d", w.Code)
	}
	clock.now = clock.now.Add(8 * time.Hour)
	if w := doJSON(t, r, http.MethodPost, "/clockout", `{"user_id":"u1"}`); w.Code != http.StatusOK {
		t.Fatalf("clock out: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/report?userId=u1&startDate=2024-03-01&endDate=2024-03-01", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data kintai.Report `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.TotalDays != 1 {
		t.Fatalf("total days = %d, want 1", resp.Data.TotalDays)
	}
	if resp.Data.Entries[0].TotalWorkedHours != 8 {
		t.Fatalf("worked = %v, want 8", resp.Data.Entries[0].TotalWorkedHours)
	}
}

func TestReportEndpoint_BadInput(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"missing user", "/report?startDate=2024-03-01&endDate=2024-03-02", http.StatusBadRequest},
		{"malformed date", "/report?userId=u1&startDate=foo&endDate=2024-03-02", http.StatusBadRequest},
		{"end before start", "/report?userId=u1&startDate=2024-03-02&endDate=2024-03-01", http.StatusBadRequest},
		{"empty range ok", "/report?userId=u1&startDate=2024-03-01&endDate=2024-03-02", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doJSON(t, r, http.MethodGet, tt.path, ""); w.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := doJSON(t, r, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
