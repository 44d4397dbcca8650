// Package handlers содержит общий конверт ответа API и вспомогательные
// функции для endpoint-пакетов.
//
// Каждый ответ сервиса обернут в единый конверт:
//
//	{"success": true,  "data": {...}}
//	{"success": false, "error": {"message": "...", "code": "..."}}
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Коды ошибок API
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeNotFound            = "NOT_FOUND"
	CodeTimeSlotUnavailable = "TIME_SLOT_UNAVAILABLE"
	CodeTimeSlotBooked      = "TIME_SLOT_BOOKED"
	CodeOverlapDetected     = "OVERLAP_DETECTED"
	CodeForbidden           = "FORBIDDEN"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeAdminAccessDenied   = "ADMIN_ACCESS_DENIED"
	CodeServerError         = "SERVER_ERROR"
)

// Response единый конверт ответа API
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody тело ошибки в конверте
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// RespondData отправляет успешный ответ с данными в конверте
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

// RespondError отправляет ошибку в конверте
func RespondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Response{
		Success: false,
		Error:   &ErrorBody{Message: message, Code: code},
	})
}

// RespondValidationError ошибка формата входных данных (400, VALIDATION_ERROR)
func RespondValidationError(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeValidationError, message)
}

// RespondInvalidInput ошибка значений входных данных (400, INVALID_INPUT)
func RespondInvalidInput(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeInvalidInput, message)
}

// RespondNotFound ресурс не найден (404, NOT_FOUND)
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondForbidden доступ запрещен (403, FORBIDDEN)
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodeForbidden, message)
}

// RespondUnauthorized запрос без валидной аутентификации (401, UNAUTHORIZED)
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// RespondAdminAccessDenied операция доступна только администратору (403, ADMIN_ACCESS_DENIED)
func RespondAdminAccessDenied(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodeAdminAccessDenied, message)
}

// RespondInternalError внутренняя ошибка сервера (500, SERVER_ERROR)
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeServerError, "внутренняя ошибка сервера")
}

// DecodeJSON декодирует тело запроса, отклоняя неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
