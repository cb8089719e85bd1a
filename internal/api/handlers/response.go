package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// Типы ошибок HTTP слоя, не относящиеся к домену
const (
	KindUnauthorized    = "unauthorized"
	KindNotFound        = "not_found"
	KindTooManyRequests = "too_many_requests"
	KindInternal        = "internal"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса. Лишние данные после объекта считаются ошибкой.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// RespondJSON пишет JSON ответ с заданным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет ошибку со стабильным типом и сообщением для пользователя
func RespondError(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorResponse{Error: kind, Message: message})
}

// RespondDomainError отвечает по типу доменной ошибки.
// Сообщение берется из sentinel ошибки, причина наружу не попадает.
func RespondDomainError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		RespondInternalError(w)
		return
	}
	RespondError(w, StatusForKind(de.Kind), string(de.Kind), de.Message)
}

// StatusForKind HTTP статус для типа отказа
func StatusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidInput, domain.KindSlotNotOffered:
		return http.StatusBadRequest
	case domain.KindSlotTaken:
		return http.StatusConflict
	case domain.KindPartialWriteDegraded:
		return http.StatusCreated
	default:
		return http.StatusInternalServerError
	}
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, string(domain.KindInvalidInput), message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, KindUnauthorized, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, KindNotFound, message)
}

func RespondTooManyRequests(w http.ResponseWriter) {
	RespondError(w, http.StatusTooManyRequests, KindTooManyRequests, "Too many requests, slow down.")
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, KindInternal, "Internal server error.")
}

// QueryParam возвращает обрезанный параметр строки запроса
func QueryParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
