package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
	"github.com/nekogravitycat/focus-planner-backend/internal/session"
	"github.com/nekogravitycat/focus-planner-backend/internal/session/sessiontest"
	"github.com/nekogravitycat/focus-planner-backend/internal/timeline"
)

const testUser = "11111111-1111-1111-1111-111111111111"

func init() {
	gin.SetMode(gin.TestMode)
}

func at(h, m int) time.Time {
	return time.Date(2026, time.March, 10, h, m, 0, 0, kst.Location).UTC()
}

// With the default layout, viewport_top=100 and viewport_height=920 give one
// pixel per minute starting at y=90 for 07:00.
func setupRouter(repo *sessiontest.MemoryRepository) *gin.Engine {
	svc := session.NewService(repo, sessiontest.Projects{}, session.Options{})
	fakeAuth := func(c *gin.Context) {
		c.Set("userID", testUser)
		c.Next()
	}

	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc, timeline.DefaultConfig()), fakeAuth)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func post(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestView(t *testing.T) {
	repo := sessiontest.NewMemoryRepository()
	repo.Seed(session.Session{UserID: testUser, Title: "Focus", StartAt: at(9, 0), EndAt: at(10, 0)})
	repo.Seed(session.Session{UserID: testUser, StartAt: at(23, 0), EndAt: at(23, 30)})
	repo.Seed(session.Session{UserID: "someone-else", StartAt: at(12, 0), EndAt: at(13, 0)})
	r := setupRouter(repo)

	w := get(r, "/v1/timeline?date=2026-03-10&viewport_top=100&viewport_height=920")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ViewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "2026-03-10", resp.Date)
	assert.Equal(t, "2026-03-09T22:00:00.000Z", resp.WindowStart)
	assert.Equal(t, "2026-03-10T13:00:00.000Z", resp.WindowEnd)
	assert.InDelta(t, 90, resp.EffectiveTop, 1e-9)
	assert.InDelta(t, 900, resp.EffectiveHeight, 1e-9)

	require.Len(t, resp.Sessions, 2)
	assert.Equal(t, "Focus", resp.Sessions[0].Title)
	assert.InDelta(t, 210, resp.Sessions[0].Top, 1e-6)
	assert.InDelta(t, 270, resp.Sessions[0].Bottom, 1e-6)
	assert.True(t, resp.Sessions[0].Visible)
	assert.False(t, resp.Sessions[1].Visible)

	require.Len(t, resp.Ticks, 61)
	assert.Equal(t, "07:00", resp.Ticks[0].Label)
	assert.True(t, resp.Ticks[0].IsHour)
	assert.InDelta(t, 90, resp.Ticks[0].Y, 1e-9)
	assert.Equal(t, "07:15", resp.Ticks[1].Label)
	assert.False(t, resp.Ticks[1].IsHour)
	assert.Equal(t, "22:00", resp.Ticks[60].Label)
}

func TestViewConfigOverride(t *testing.T) {
	r := setupRouter(sessiontest.NewMemoryRepository())

	w := get(r, "/v1/timeline?date=2026-03-10&viewport_top=0&viewport_height=500&granularity_minutes=60&start_hour=9&end_hour=17")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ViewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 60, resp.Config.GranularityMinutes)
	assert.Equal(t, 9, resp.Config.StartHour)
	assert.Len(t, resp.Ticks, 9)
	assert.NotNil(t, resp.Sessions)
}

func TestViewBadInput(t *testing.T) {
	r := setupRouter(sessiontest.NewMemoryRepository())

	tests := []struct {
		name  string
		query string
	}{
		{"missing date", "viewport_height=920"},
		{"bad date", "date=10-03-2026&viewport_height=920"},
		{"missing height", "date=2026-03-10"},
		{"viewport smaller than a row", "date=2026-03-10&viewport_height=15"},
		{"inverted hours", "date=2026-03-10&viewport_height=920&start_hour=20&end_hour=8"},
		{"NaN row height", "date=2026-03-10&viewport_top=100&viewport_height=920&row_height_px=NaN"},
		{"infinite row height", "date=2026-03-10&viewport_top=100&viewport_height=920&row_height_px=Inf"},
		{"NaN viewport top", "date=2026-03-10&viewport_top=NaN&viewport_height=920"},
		{"infinite viewport height", "date=2026-03-10&viewport_height=Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/v1/timeline?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSelection(t *testing.T) {
	repo := sessiontest.NewMemoryRepository()
	busy := repo.Seed(session.Session{UserID: testUser, StartAt: at(8, 30), EndAt: at(9, 30)})
	r := setupRouter(repo)

	// Dragging upwards from 09:00 to 08:00.
	w := post(r, "/v1/timeline/selection", gin.H{
		"date":            "2026-03-10",
		"viewport_top":    100,
		"viewport_height": 920,
		"anchor_y":        210,
		"cursor_y":        150,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp SelectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, kst.FormatISO(at(8, 0)), resp.Start)
	assert.Equal(t, kst.FormatISO(at(9, 0)), resp.End)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.True(t, resp.HasConflict)
	assert.Equal(t, []string{busy}, resp.ConflictingSessionIDs)
}

func TestSelectionSnapsToGranularity(t *testing.T) {
	r := setupRouter(sessiontest.NewMemoryRepository())

	// 07:06 rounds down to 07:00, 07:38 rounds up to 07:45.
	w := post(r, "/v1/timeline/selection", gin.H{
		"date":            "2026-03-10",
		"viewport_top":    100,
		"viewport_height": 920,
		"anchor_y":        96,
		"cursor_y":        128,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp SelectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, kst.FormatISO(at(7, 0)), resp.Start)
	assert.Equal(t, kst.FormatISO(at(7, 45)), resp.End)
	assert.False(t, resp.HasConflict)
	assert.Empty(t, resp.ConflictingSessionIDs)
}

func TestSelectionZeroLength(t *testing.T) {
	r := setupRouter(sessiontest.NewMemoryRepository())

	w := post(r, "/v1/timeline/selection", gin.H{
		"date":            "2026-03-10",
		"viewport_top":    100,
		"viewport_height": 920,
		"anchor_y":        150,
		"cursor_y":        152,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectionOffsetOutOfRange(t *testing.T) {
	r := setupRouter(sessiontest.NewMemoryRepository())

	for _, field := range []string{"anchor_y", "cursor_y"} {
		body := gin.H{
			"date":            "2026-03-10",
			"viewport_top":    100,
			"viewport_height": 920,
			"anchor_y":        100,
			"cursor_y":        160,
		}
		body[field] = 1e15

		w := post(r, "/v1/timeline/selection", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, field)
	}
}
