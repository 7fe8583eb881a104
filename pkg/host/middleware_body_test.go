package host

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareBody(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		wantStatus  int
		wantBody    string
	}{
		{
			name:        "json body is buffered into the context",
			method:      http.MethodPost,
			contentType: "application/json",
			body:        `{"arguments":{"includeEmail":true}}`,
			wantStatus:  http.StatusOK,
			wantBody:    `{"arguments":{"includeEmail":true}}`,
		},
		{
			name:        "json content type with parameters",
			method:      http.MethodPost,
			contentType: "application/json; charset=utf-8",
			body:        `{}`,
			wantStatus:  http.StatusOK,
			wantBody:    `{}`,
		},
		{
			name:       "empty body without content type",
			method:     http.MethodPost,
			wantStatus: http.StatusOK,
			wantBody:   "",
		},
		{
			name:        "unsupported media type",
			method:      http.MethodPost,
			contentType: "text/plain",
			body:        "hello",
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:       "GET requests bypass body handling",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, "/api/whoami", bytes.NewReader([]byte(tt.body)))
			if tt.contentType != "" {
				request.Header.Set("Content-Type", tt.contentType)
			}

			writer := httptest.NewRecorder()

			var gotBody []byte
			var gotBodyErr error
			bodySeen := false
			next := func(w http.ResponseWriter, r *http.Request) {
				gotBody, gotBodyErr = BodyFromContext(r.Context())
				bodySeen = true
			}

			MiddlewareBody(writer, request, next)

			result := writer.Result()
			assert.Equal(t, tt.wantStatus, result.StatusCode)

			if tt.wantStatus != http.StatusOK {
				assert.False(t, bodySeen)
				return
			}

			require.True(t, bodySeen)
			if tt.method == http.MethodGet {
				assert.Error(t, gotBodyErr)
			} else {
				require.NoError(t, gotBodyErr)
				assert.Equal(t, tt.wantBody, string(gotBody))
			}
		})
	}
}
