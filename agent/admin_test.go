package agent

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestAdminHealthCheck(t *testing.T) {
	assert := assert.New(t)

	a, _, _, _ := testAgent(t, 5, DefaultConfig())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/_health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(a.handleHealthCheck(c))
	assert.Equal(200, rec.Code)

	var status GenericStatus
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal("magpie", status.Daemon)
	assert.Equal("ok", status.Status)
}

func TestAdminStatusEndpoint(t *testing.T) {
	assert := assert.New(t)

	a, _, _, _ := testAgent(t, 5, DefaultConfig())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(a.handleStatus(c))
	assert.Equal(200, rec.Code)

	var st Status
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(ModeAutonomous, st.Mode)
	assert.Equal(5, st.DailyBudget)
	assert.Equal(5, st.PostsRemaining)
}
