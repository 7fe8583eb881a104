package host

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Azure-Samples/whoami-func-go/pkg/cloud"
)

func TestMiddlewareFunctionKey(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		header     string
		query      string
		wantStatus int
	}{
		{
			name:       "anonymous host accepts anything",
			key:        "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid key in header",
			key:        "secret",
			header:     "secret",
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid key in code query parameter",
			key:        "secret",
			query:      "secret",
			wantStatus: http.StatusOK,
		},
		{
			name:       "header wins over query parameter",
			key:        "secret",
			header:     "secret",
			query:      "wrong",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing key",
			key:        "secret",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong key",
			key:        "secret",
			header:     "wrong",
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/api/whoami"
			if tt.query != "" {
				target += "?" + QueryParamCode + "=" + url.QueryEscape(tt.query)
			}
			request := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				request.Header.Set(cloud.HeaderNameFunctionKey, tt.header)
			}

			writer := httptest.NewRecorder()

			nextCalled := false
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}

			validator := NewFunctionKeyValidator(tt.key)
			validator.MiddlewareFunctionKey(writer, request, next)

			result := writer.Result()
			assert.Equal(t, tt.wantStatus, result.StatusCode)
			assert.Equal(t, tt.wantStatus == http.StatusOK, nextCalled)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, cloud.CloudErrorCodeUnauthorized, result.Header.Get(cloud.HeaderNameErrorCode))
			}
		})
	}
}
