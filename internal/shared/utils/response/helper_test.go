package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondJSON(c, "success", http.StatusCreated, "Booked", gin.H{"bookingId": "x"}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(201), body["statusCode"])
	assert.Equal(t, "x", body["data"].(map[string]interface{})["bookingId"])
	assert.NotContains(t, body, "errors")
}

func TestBindingErrors(t *testing.T) {
	type req struct {
		NumberOfSeats int `validate:"required,min=1,max=7"`
	}

	err := validator.New().Struct(req{NumberOfSeats: 9})
	got := BindingErrors(err)
	require.Len(t, got, 1)
	assert.Equal(t, "NumberOfSeats", got[0].Field)
	assert.Equal(t, "must be at most 7", got[0].Message)

	got = BindingErrors(errors.New("unexpected EOF"))
	assert.Equal(t, []FieldError{{Message: "unexpected EOF"}}, got)
}
