package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
	"github.com/nekogravitycat/focus-planner-backend/internal/scheduling"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func render(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Error(c, err)
	return w
}

func TestErrorUsesAppErrorStatus(t *testing.T) {
	notFound := apperror.New(http.StatusNotFound, "thing not found")

	w := render(fmt.Errorf("lookup: %w", notFound))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "thing not found", body.Error)
	assert.Nil(t, body.Details)
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	w := render(errors.New("connection reset by peer"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestErrorIncludesDetails(t *testing.T) {
	err := &scheduling.NoAvailableSlotError{
		Day:         kst.NewDate(2026, time.March, 10),
		Duration:    45 * time.Minute,
		DaysScanned: 30,
	}

	w := render(err)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Error   string         `json:"error"`
		Details map[string]any `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "no available slot", body.Error)
	assert.Equal(t, "2026-03-10", body.Details["date"])
	assert.Equal(t, float64(45), body.Details["duration_minutes"])
}

func TestNewPageResponse(t *testing.T) {
	p := NewPageResponse[string](nil, 0, 10, 0)
	assert.NotNil(t, p.Items)
	assert.Equal(t, 1, p.Page)
	assert.False(t, p.HasMore)

	p = NewPageResponse([]string{"a", "b"}, 1, 2, 5)
	assert.True(t, p.HasMore)
}
