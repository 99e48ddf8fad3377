package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readBodyJSON(r *http.Request, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func parseIntQuery(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// writeError maps a domain error to its HTTP status. Internal detail never
// reaches the client; it goes to the log instead.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	de, ok := domain.AsError(err)
	if !ok {
		logger.Error("Unclassified request failure", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Server error"))
		return
	}

	switch de.Kind {
	case domain.KindValidation:
		writeJSON(w, http.StatusBadRequest, Fail(de.Message))
	case domain.KindUnauthenticated:
		writeJSON(w, http.StatusUnauthorized, Fail(de.Message))
	case domain.KindForbidden:
		writeJSON(w, http.StatusForbidden, Fail(de.Message))
	case domain.KindNotFound:
		writeJSON(w, http.StatusNotFound, Fail(de.Message))
	case domain.KindConflict:
		writeJSON(w, http.StatusConflict, Fail(de.Message))
	default:
		logger.Error("Request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Server error"))
	}
}
