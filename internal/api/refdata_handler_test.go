package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notewell/notewell-api/internal/api/shared"
	"github.com/notewell/notewell-api/internal/cache"
	"github.com/notewell/notewell-api/internal/refdata"
)

// stubCollaborator is a canned refdata.Collaborator for handler tests.
type stubCollaborator struct {
	countries    []refdata.Country
	countriesErr error

	frameworks   map[string]*refdata.EducationFramework
	frameworkErr error

	countryCalls   int
	frameworkCalls int
}

func (c *stubCollaborator) ListCountries(_ context.Context) ([]refdata.Country, error) {
	c.countryCalls++
	if c.countriesErr != nil {
		return nil, c.countriesErr
	}
	return c.countries, nil
}

func (c *stubCollaborator) EducationFramework(_ context.Context, code string) (*refdata.EducationFramework, error) {
	c.frameworkCalls++
	if c.frameworkErr != nil {
		return nil, c.frameworkErr
	}
	if fw, ok := c.frameworks[code]; ok {
		return fw, nil
	}
	return &refdata.EducationFramework{CountryCode: code}, nil
}

func newRefDataRouter(t *testing.T, collab *stubCollaborator) chi.Router {
	t.Helper()

	store := cache.NewMemoryStore()
	countries := refdata.NewCountries(collab, store, 30*time.Minute, slog.Default())
	frameworks := refdata.NewFrameworks(collab, store, 30*time.Minute, slog.Default())
	handler := NewRefDataHandler(countries, frameworks, slog.Default())

	r := chi.NewRouter()
	r.Get("/reference/countries", handler.ListCountries)
	r.Get("/reference/frameworks/{code}", handler.GetFramework)
	return r
}

func TestRefDataHandler_ListCountries(t *testing.T) {
	t.Parallel()

	collab := &stubCollaborator{countries: []refdata.Country{
		{Code: "FR", Name: "France"},
		{Code: "JP", Name: "Japan"},
	}}
	router := newRefDataRouter(t, collab)

	w := doJSON(t, router, http.MethodGet, "/reference/countries", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CountryListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Countries, 2)

	// A second request is served from the cache.
	w = doJSON(t, router, http.MethodGet, "/reference/countries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, collab.countryCalls)
}

func TestRefDataHandler_ListCountries_BackendFailure(t *testing.T) {
	t.Parallel()

	collab := &stubCollaborator{countriesErr: errors.New("connection refused")}
	router := newRefDataRouter(t, collab)

	w := doJSON(t, router, http.MethodGet, "/reference/countries", nil)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Error)
	assert.NotContains(t, resp.Error, "connection refused")
}

func TestRefDataHandler_ListCountries_RemoteMessageSurfaced(t *testing.T) {
	t.Parallel()

	collab := &stubCollaborator{countriesErr: &refdata.RemoteError{Message: "service under maintenance"}}
	router := newRefDataRouter(t, collab)

	w := doJSON(t, router, http.MethodGet, "/reference/countries", nil)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "service under maintenance", resp.Error)
}

func TestRefDataHandler_GetFramework(t *testing.T) {
	t.Parallel()

	collab := &stubCollaborator{frameworks: map[string]*refdata.EducationFramework{
		"FR": {CountryCode: "FR", Name: "French National Framework"},
	}}
	router := newRefDataRouter(t, collab)

	w := doJSON(t, router, http.MethodGet, "/reference/frameworks/FR", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp FrameworkResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "FR", resp.CountryCode)
	assert.Equal(t, "French National Framework", resp.Name)

	w = doJSON(t, router, http.MethodGet, "/reference/frameworks/FR", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, collab.frameworkCalls)
}

func TestRefDataHandler_GetFramework_EmptyRecord(t *testing.T) {
	t.Parallel()

	collab := &stubCollaborator{}
	router := newRefDataRouter(t, collab)

	w := doJSON(t, router, http.MethodGet, "/reference/frameworks/ZZ", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp FrameworkResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "ZZ", resp.CountryCode)
	assert.Empty(t, resp.Name)

	// Empty records are not cached, so a repeat request hits the backend.
	w = doJSON(t, router, http.MethodGet, "/reference/frameworks/ZZ", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, collab.frameworkCalls)
}

func TestRefDataHandler_GetFramework_BackendFailure(t *testing.T) {
	t.Parallel()

	collab := &stubCollaborator{frameworkErr: errors.New("tls handshake timeout")}
	router := newRefDataRouter(t, collab)

	w := doJSON(t, router, http.MethodGet, "/reference/frameworks/FR", nil)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotContains(t, resp.Error, "tls handshake timeout")
}
