package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"backoffice-service/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestQueryIDRejectsMalformedValue(t *testing.T) {
	c := listContext(t, "/api/admin/products?categoryId=abc")

	_, _, err := queryID(c, "categoryId")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "categoryId")
}

func TestQueryIDParsesValue(t *testing.T) {
	c := listContext(t, "/api/admin/products?categoryId=7")

	id, ok, err := queryID(c, "categoryId")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	// absent parameter is not a filter and not an error
	_, ok, err = queryID(c, "manufacturerId")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQueryDecimalRejectsMalformedValue(t *testing.T) {
	c := listContext(t, "/api/admin/products?minPrice=xx")

	_, err := queryDecimal(c, "minPrice")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestQueryDecimalParsesValue(t *testing.T) {
	c := listContext(t, "/api/admin/products?minPrice=19.99&maxPrice=")

	value, err := queryDecimal(c, "minPrice")
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, "19.99", value.String())

	empty, err := queryDecimal(c, "maxPrice")
	require.NoError(t, err)
	assert.Nil(t, empty)
}
