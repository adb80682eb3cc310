package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"beacon/internal/delivery/http/validator"
	"beacon/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAlertHandlerForTest() *AlertHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &AlertHandler{
		alertUC: impl.NewAlertService(nil, logger),
		logger:  logger,
	}
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAlertHandler_CreateAlert(t *testing.T) {
	handler := newAlertHandlerForTest()
	e := echo.New()
	e.Validator = validator.New()

	c, rec := postJSON(e, "/alerts", `{
		"category": "medical",
		"location": {"latitude": 25.03, "longitude": 121.56, "accuracy_meters": 10},
		"note": "chest pain"
	}`)

	require.NoError(t, handler.CreateAlert(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"category":"medical"`)
	assert.Contains(t, body, `"status":"active"`)
	assert.Contains(t, body, `"note":"chest pain"`)
}

func TestAlertHandler_CreateAlert_InvalidCategory(t *testing.T) {
	handler := newAlertHandlerForTest()
	e := echo.New()
	e.Validator = validator.New()

	c, rec := postJSON(e, "/alerts", `{"category": "earthquake"}`)

	require.NoError(t, handler.CreateAlert(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestAlertHandler_CreateAlert_OutOfRangeCoordinates(t *testing.T) {
	handler := newAlertHandlerForTest()
	e := echo.New()
	e.Validator = validator.New()

	c, rec := postJSON(e, "/alerts", `{
		"category": "general",
		"location": {"latitude": 123.0, "longitude": 121.56}
	}`)

	require.NoError(t, handler.CreateAlert(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlertHandler_GetActive_Empty(t *testing.T) {
	handler := newAlertHandlerForTest()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/alerts/active", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.GetActive(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No active alert")
}

func TestAlertHandler_ResolveAlert_InvalidID(t *testing.T) {
	handler := newAlertHandlerForTest()
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/alerts/not-a-uuid/resolve", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, handler.ResolveAlert(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ID")
}

func TestAlertHandler_CreateThenResolve(t *testing.T) {
	handler := newAlertHandlerForTest()
	e := echo.New()
	e.Validator = validator.New()

	c, rec := postJSON(e, "/alerts", `{"category": "general"}`)
	require.NoError(t, handler.CreateAlert(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	history := handler.alertUC.History(c.Request().Context())
	require.Len(t, history, 1)
	id := history[0].ID.String()

	req := httptest.NewRequest(http.MethodPost, "/alerts/"+id+"/resolve", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, handler.ResolveAlert(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"resolved"`)
}
