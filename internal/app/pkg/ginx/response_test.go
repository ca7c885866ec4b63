package ginx

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

	"printshop/internal/app/pkg/errorx"
)

func render(t *testing.T, fn func(c *gin.Context)) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestBusinessErrorUsesItsStatus(t *testing.T) {
	err := errorx.NewBusinessError(http.StatusRequestEntityTooLarge, "too big").
		Wrap(errorx.ErrUploadTooLarge).
		WithDetail("file", "limit is 50MB")

	code, resp := render(t, func(c *gin.Context) { BusinessError(c, err) })
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
	assert.Equal(t, "too big", resp.Meta.Message)
	require.Len(t, resp.Meta.Details, 1)
	assert.Equal(t, "file", resp.Meta.Details[0].Path)
}

func TestPlainErrorIs500(t *testing.T) {
	code, resp := render(t, func(c *gin.Context) { BusinessError(c, errors.New("boom")) })
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "boom", resp.Meta.Message)
}

func TestValidationDetails(t *testing.T) {
	type dto struct {
		Size     string `validate:"required"`
		Quantity int    `validate:"gte=0"`
	}
	err := validator.New().Struct(dto{Quantity: -1})
	require.Error(t, err)

	code, resp := render(t, func(c *gin.Context) { BadRequestWithValidation(c, err) })
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", resp.Meta.Message)
	require.Len(t, resp.Meta.Details, 2)
	assert.Equal(t, "Size is required", resp.Meta.Details[0].Info)
	assert.Equal(t, "Quantity must be at least 0", resp.Meta.Details[1].Info)
}

func TestJSONKeepsDataOnErrorStatus(t *testing.T) {
	code, resp := render(t, func(c *gin.Context) {
		JSON(c, http.StatusUnprocessableEntity, "Order rejected at preflight", map[string]bool{"valid": false})
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, map[string]interface{}{"valid": false}, resp.Data)
}
