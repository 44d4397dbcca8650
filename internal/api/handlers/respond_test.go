package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondData_WrapsPayload(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondData(rec, http.StatusCreated, map[string]int64{"id": 7})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(7), body["data"].(map[string]interface{})["id"])
	assert.NotContains(t, body, "error")
}

func TestRespondError_WrapsCodeAndMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondError(rec, http.StatusConflict, CodeTimeSlotBooked, "слот уже занят")

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])

	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "TIME_SLOT_BOOKED", errBody["code"])
	assert.Equal(t, "слот уже занят", errBody["message"])
	assert.NotContains(t, body, "data")
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"known":1,"unknown":2}`))

	var dst struct {
		Known int `json:"known"`
	}
	err := DecodeJSON(req, &dst)

	assert.Error(t, err)
}

func TestDecodeJSON_ValidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"known":1}`))

	var dst struct {
		Known int `json:"known"`
	}
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, 1, dst.Known)
}
