package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewJSONHandler(io.Discard, nil))

func TestParsePage(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantOffset int32
		wantLimit  int32
		wantOK     bool
		wantBody   string
	}{
		{name: "absent", query: "", wantOK: true},
		{name: "both", query: "offset=5&limit=10", wantOffset: 5, wantLimit: 10, wantOK: true},
		{name: "negative offset", query: "offset=-1", wantBody: `{"error":"Invalid offset number: -1"}`},
		{name: "zero limit", query: "limit=0", wantBody: `{"error":"Invalid limit number: 0"}`},
		{name: "not a number", query: "limit=ten", wantBody: `{"error":"Invalid limit number: ten"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			rr := httptest.NewRecorder()

			// when
			offset, limit, ok := ParsePage(rr, req, discard)

			// then
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
			if tt.wantBody != "" {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestParseOptionalDecimal(t *testing.T) {
	// given
	rr := httptest.NewRecorder()

	// when
	missing, okMissing := ParseOptionalDecimal(rr, httptest.NewRequest(http.MethodGet, "/", nil), discard, "minPrice")
	value, okValue := ParseOptionalDecimal(rr, httptest.NewRequest(http.MethodGet, "/?minPrice=12.50", nil), discard, "minPrice")

	// then
	assert.True(t, okMissing)
	assert.Nil(t, missing)
	require.True(t, okValue)
	assert.Equal(t, "12.5", value.String())
}

func TestParseID(t *testing.T) {
	// given
	id := uuid.New()
	mux := http.NewServeMux()
	var parsed uuid.UUID
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		if got, ok := ParseID(w, r, discard); ok {
			parsed = got
			w.WriteHeader(http.StatusNoContent)
		}
	})

	// when
	okRec := httptest.NewRecorder()
	mux.ServeHTTP(okRec, httptest.NewRequest(http.MethodGet, "/items/"+id.String(), nil))
	badRec := httptest.NewRecorder()
	mux.ServeHTTP(badRec, httptest.NewRequest(http.MethodGet, "/items/nope", nil))

	// then
	assert.Equal(t, http.StatusNoContent, okRec.Code)
	assert.Equal(t, id, parsed)
	assert.Equal(t, http.StatusBadRequest, badRec.Code)
	assert.JSONEq(t, `{"error":"Invalid ID: nope"}`, badRec.Body.String())
}

func TestRespondValidation(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
	}
	tests := []struct {
		name     string
		err      error
		wantBody string
	}{
		{
			name:     "field errors",
			err:      validator.New().Struct(payload{}),
			wantBody: `{"validation_errors":{"Name":"failed on rule: required"}}`,
		},
		{name: "other error", err: errors.New("boom"), wantBody: `{"error":"Invalid request body"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RespondValidation(rr, discard, tt.err)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestRequestIDInjector_ReplacesOversizedHeader(t *testing.T) {
	// given
	var seen string
	h := RequestIDInjector(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetReqID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))

	// when
	h.ServeHTTP(httptest.NewRecorder(), req)

	// then
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestStructuredLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			// given
			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, nil))
			h := StructuredLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			// when
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

			// then
			var rec map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
			assert.Equal(t, tt.level, rec["level"])
			assert.Equal(t, float64(tt.status), rec["status"])
		})
	}
}

func TestRecoverer_RespondsWithJSON(t *testing.T) {
	// given
	h := Recoverer(discard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()

	// when
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	// then
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rr.Body.String())
}
