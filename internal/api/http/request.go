package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"fleetrental-backend/internal/apperr"
)

const dateLayout = "2006-01-02"

// pathID extracts a numeric path variable.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid %s %q", name, raw)
	}
	return int32(id), nil
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperr.Validation("%s must be a date in YYYY-MM-DD form", field)
	}
	return t, nil
}

// principal pulls the authenticated caller or writes a 401.
func principal(w http.ResponseWriter, r *http.Request) (Principal, bool) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
	}
	return p, ok
}
