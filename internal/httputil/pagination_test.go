package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/allisson/cardwatch/internal/httputil"
)

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		expectedOffset int
		expectedLimit  int
		errorMsg       string
	}{
		{name: "default values", url: "/", expectedOffset: 0, expectedLimit: 50},
		{name: "valid custom values", url: "/?offset=10&limit=20", expectedOffset: 10, expectedLimit: 20},
		{name: "max limit", url: "/?limit=500", expectedOffset: 0, expectedLimit: 500},
		{
			name:     "offset negative",
			url:      "/?offset=-1",
			errorMsg: "invalid offset parameter: must be a non-negative integer",
		},
		{
			name:     "offset not an integer",
			url:      "/?offset=abc",
			errorMsg: "invalid offset parameter: must be a non-negative integer",
		},
		{
			name:     "limit zero",
			url:      "/?limit=0",
			errorMsg: "invalid limit parameter: must be between 1 and 500",
		},
		{
			name:     "limit exceeds max",
			url:      "/?limit=501",
			errorMsg: "invalid limit parameter: must be between 1 and 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request, _ = http.NewRequest(http.MethodGet, tt.url, nil)

			offset, limit, err := httputil.ParsePagination(c)

			if tt.errorMsg != "" {
				assert.EqualError(t, err, tt.errorMsg)
				assert.Equal(t, 0, offset)
				assert.Equal(t, 0, limit)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedOffset, offset)
			assert.Equal(t, tt.expectedLimit, limit)
		})
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, httputil.Page(items, 0, 2))
	assert.Equal(t, []int{4, 5}, httputil.Page(items, 3, 10))
	assert.Equal(t, []int{}, httputil.Page(items, 5, 10))
	assert.Equal(t, []int{}, httputil.Page([]int(nil), 0, 10))
}
