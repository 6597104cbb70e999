package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/notewell/notewell-api/internal/api/shared"
	"github.com/notewell/notewell-api/internal/refdata"
)

// RefDataHandler serves the country and education framework reference
// data backed by the expiring cache.
type RefDataHandler struct {
	countries  *refdata.Countries
	frameworks *refdata.Frameworks
	logger     *slog.Logger
}

// NewRefDataHandler creates a new RefDataHandler with the given loaders.
func NewRefDataHandler(countries *refdata.Countries, frameworks *refdata.Frameworks, logger *slog.Logger) *RefDataHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RefDataHandler{
		countries:  countries,
		frameworks: frameworks,
		logger:     logger.With(slog.String("component", "refdata_handler")),
	}
}

// ListCountries handles GET /reference/countries.
func (h *RefDataHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.countries.Get(r.Context())
	if err != nil {
		h.respondRemoteError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CountryListResponse{Countries: countries})
}

// GetFramework handles GET /reference/frameworks/{code}.
func (h *RefDataHandler) GetFramework(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Country code is required")
		return
	}

	fw, err := h.frameworks.Get(r.Context(), code)
	if err != nil {
		h.respondRemoteError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewFrameworkResponse(fw))
}

// respondRemoteError surfaces the loader's user-facing message for
// backend failures; anything else is an internal error.
func (h *RefDataHandler) respondRemoteError(w http.ResponseWriter, r *http.Request, err error) {
	var remoteErr *refdata.RemoteError
	if errors.As(err, &remoteErr) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadGateway, remoteErr.Message, err)
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred", err)
}
