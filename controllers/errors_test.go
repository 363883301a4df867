package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/meeting-room-server/models"
	"github.com/vnkhanh/meeting-room-server/services"
)

func doRespond(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondServiceError(c, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespondServiceError(t *testing.T) {
	code, body := doRespond(t, &services.ConflictError{
		Conflicts: []models.Meeting{{ID: "m1", Title: "Họp giao ban"}},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
	require.Len(t, body["conflictingMeetings"], 1)

	code, body = doRespond(t, &services.ValidationError{Message: "thiếu tiêu đề cuộc họp"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "thiếu tiêu đề cuộc họp", body["message"])

	code, _ = doRespond(t, services.ErrRoomNotFound)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doRespond(t, services.ErrMeetingNotFound)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doRespond(t, services.ErrPermissionDenied)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = doRespond(t, errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, code)
}
