package pagination_utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func parseRequestFor(url string) PageRequest {
	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", url, nil)

	return ParsePageRequest(ctx)
}

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name            string
		url             string
		expectedPage    int
		expectedPerPage int
	}{
		{"defaults", "/projects", 1, DefaultPerPage},
		{"explicit values", "/projects?page=3&per_page=50", 3, 50},
		{"zero page falls back", "/projects?page=0", 1, DefaultPerPage},
		{"negative per_page falls back", "/projects?per_page=-5", 1, DefaultPerPage},
		{"per_page is capped", "/projects?per_page=1000", 1, MaxPerPage},
		{"garbage query falls back", "/projects?page=abc", 1, DefaultPerPage},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			request := parseRequestFor(test.url)

			assert.Equal(t, test.expectedPage, request.Page)
			assert.Equal(t, test.expectedPerPage, request.PerPage)
		})
	}
}
