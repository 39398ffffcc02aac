package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candidate_application/config"
	"candidate_application/i18n"
	"candidate_application/metrics"
	"candidate_application/models"
	"candidate_application/services"
	"candidate_application/settings"
	"candidate_application/utils"
)

const namespace = "custom.settings"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func (e envelope) fieldErrors(t *testing.T) []utils.ValidationError {
	t.Helper()
	var errs []utils.ValidationError
	require.NoError(t, json.Unmarshal(e.Errors, &errs))
	return errs
}

type fixture struct {
	echo    *echo.Echo
	store   *settings.MemoryStore
	metrics *metrics.Metrics
	handler *ApplicationHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := i18n.NewCatalog()
	require.NoError(t, err)

	store := settings.NewMemoryStore()
	m := metrics.New(prometheus.NewRegistry())
	svc := services.NewApplicationService(store, namespace, catalog, services.WithMetrics(m))

	e := echo.New()
	e.Validator = utils.NewValidator()
	return &fixture{
		echo:    e,
		store:   store,
		metrics: m,
		handler: NewApplicationHandler(svc, catalog, &config.Config{DefaultLocale: "en"}),
	}
}

func (f *fixture) do(t *testing.T, req *http.Request, h echo.HandlerFunc) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)
	require.NoError(t, h(c))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/application", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/application", strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

const janeJSON = `{
	"candidate_name": "Jane Doe",
	"candidate_mail": "jane@example.com",
	"candidate_number": "1234567890",
	"candidate_dob": "1990-01-01",
	"candidate_gender": "Female",
	"candidate_confirmation": "Yes",
	"candidate_copy": true
}`

func TestHandleSubmitApplication_JSON(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, jsonRequest(janeJSON), f.handler.HandleSubmitApplication)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Jane Doe, your application is being submitted!", env.Message)

	var result services.SubmitResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Len(t, result.Messages, len(models.FieldOrder)+1)
	assert.NotEmpty(t, result.SubmissionID)

	stored, _ := f.store.Get(context.Background(), namespace)
	assert.Equal(t, "Jane Doe", stored[models.FieldName])
	assert.Equal(t, "1990-01-01", stored[models.FieldDOB])
	assert.Equal(t, "true", stored[models.FieldCopy])
}

func TestHandleSubmitApplication_ShortPhone(t *testing.T) {
	f := newFixture(t)
	body := strings.Replace(janeJSON, "1234567890", "555-1234", 1)

	rec, env := f.do(t, jsonRequest(body), f.handler.HandleSubmitApplication)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, []utils.ValidationError{{Field: models.FieldNumber, Message: "Mobile number is too short."}}, env.fieldErrors(t))

	stored, _ := f.store.Get(context.Background(), namespace)
	assert.Empty(t, stored)
}

func TestHandleSubmitApplication_ReportsAllFieldErrors(t *testing.T) {
	f := newFixture(t)
	req := jsonRequest(`{"candidate_mail": "nope", "candidate_number": "123"}`)
	req.Header.Set("Accept-Language", "es")

	rec, env := f.do(t, req, f.handler.HandleSubmitApplication)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	fields := map[string]string{}
	for _, fe := range env.fieldErrors(t) {
		fields[fe.Field] = fe.Message
	}
	assert.Contains(t, fields, models.FieldName)
	assert.Contains(t, fields, models.FieldMail)
	assert.Contains(t, fields, models.FieldDOB)
	assert.Equal(t, "El número de móvil es demasiado corto.", fields[models.FieldNumber])
}

func (f *fixture) submissions(result string) float64 {
	return testutil.ToFloat64(f.metrics.Submissions.WithLabelValues(result))
}

func TestHandleSubmitApplication_CountsResults(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		result string
	}{
		{"accepted", janeJSON, http.StatusOK, metrics.ResultAccepted},
		{"short phone", strings.Replace(janeJSON, "1234567890", "555-1234", 1), http.StatusBadRequest, metrics.ResultRejected},
		{"invalid email", strings.Replace(janeJSON, "jane@example.com", "jane", 1), http.StatusBadRequest, metrics.ResultRejected},
		{"malformed body", `{"candidate_name":`, http.StatusBadRequest, metrics.ResultRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec, _ := f.do(t, jsonRequest(tt.body), f.handler.HandleSubmitApplication)
			require.Equal(t, tt.status, rec.Code)

			for _, result := range []string{metrics.ResultAccepted, metrics.ResultRejected, metrics.ResultFailed} {
				want := 0.0
				if result == tt.result {
					want = 1.0
				}
				assert.Equal(t, want, f.submissions(result), result)
			}
		})
	}
}

func TestHandleSubmitApplication_InvalidJSON(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, jsonRequest(`{"candidate_name":`), f.handler.HandleSubmitApplication)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid input format", env.Message)
}

func TestHandleSubmitApplication_FormPostUncheckedCopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, namespace, settings.Values{models.FieldCopy: "true"}))

	values := url.Values{
		models.FieldName:   {"Jane Doe"},
		models.FieldMail:   {"jane@example.com"},
		models.FieldNumber: {"1234567890"},
		models.FieldDOB:    {"1990-01-01"},
	}
	rec, _ := f.do(t, formRequest(values), f.handler.HandleSubmitApplication)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, _ := f.store.Get(ctx, namespace)
	assert.Equal(t, "false", stored[models.FieldCopy])
}

func TestHandleSubmitApplication_FormPostCheckedCopy(t *testing.T) {
	f := newFixture(t)

	values := url.Values{
		models.FieldName:   {"Jane Doe"},
		models.FieldMail:   {"jane@example.com"},
		models.FieldNumber: {"1234567890"},
		models.FieldDOB:    {"1990-01-01"},
		models.FieldCopy:   {"on"},
	}
	rec, _ := f.do(t, formRequest(values), f.handler.HandleSubmitApplication)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, _ := f.store.Get(context.Background(), namespace)
	assert.Equal(t, "true", stored[models.FieldCopy])
}

func TestHandleGetApplicationForm_ShowsLastSubmission(t *testing.T) {
	f := newFixture(t)
	rec, _ := f.do(t, jsonRequest(janeJSON), f.handler.HandleSubmitApplication)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/application", nil)
	rec, env := f.do(t, req, f.handler.HandleGetApplicationForm)
	require.Equal(t, http.StatusOK, rec.Code)

	var form models.FormDefinition
	require.NoError(t, json.Unmarshal(env.Data, &form))
	assert.Equal(t, services.FormID, form.ID)
	assert.Equal(t, "Jane Doe", form.Field(models.FieldName).DefaultValue)
	assert.Equal(t, true, form.Field(models.FieldCopy).DefaultValue)
}

func TestHandleConfig(t *testing.T) {
	f := newFixture(t)
	h := NewConfigHandler(namespace, []string{"en", "es"})

	rec, env := f.do(t, httptest.NewRequest(http.MethodGet, "/config", nil), h.HandleConfig)
	require.Equal(t, http.StatusOK, rec.Code)

	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, namespace, data["namespace"])
	assert.EqualValues(t, services.MinPhoneLength, data["minPhoneLength"])
	assert.Equal(t, "axl_form", data["formId"])
}
