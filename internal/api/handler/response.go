package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/RoyceAzure/lab/shopcart/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcart/internal/constants"
	"github.com/rs/zerolog/log"
)

const (
	msgNotFound       = "not found"
	msgBadRequest     = "bad request"
	msgInternalServer = "internal server error"
)

var errEmptyBody = errors.New("request body is empty")

func SuccessJSON(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

func ErrorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("encode response failed")
	}
}

// writeResult 找不到資料(nil) 回 404
func writeResult[T any](w http.ResponseWriter, r *http.Request, doc *T, err error) {
	if err != nil {
		internalError(w, r, err)
		return
	}
	if doc == nil {
		ErrorJSON(w, http.StatusNotFound, msgNotFound)
		return
	}
	SuccessJSON(w, doc)
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	requestID, _ := r.Context().Value(constants.RequestIDKey).(string)
	log.Error().Err(err).
		Str("request_id", requestID).
		Str("method", r.Method).
		Str("url", r.URL.String()).
		Msg("request failed")
	ErrorJSON(w, http.StatusInternalServerError, msgInternalServer)
}

func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}
	return err
}
