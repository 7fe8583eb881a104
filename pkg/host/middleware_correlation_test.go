package host

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Azure-Samples/whoami-func-go/pkg/cloud"
)

func TestMiddlewareCorrelationData(t *testing.T) {
	tests := []struct {
		name                  string
		clientRequestID       string
		returnClientRequestID string
		wantClientIDHeader    bool
	}{
		{
			name:            "request id generated without client headers",
			clientRequestID: "",
		},
		{
			name:                  "client request id echoed when requested",
			clientRequestID:       "client-1",
			returnClientRequestID: "true",
			wantClientIDHeader:    true,
		},
		{
			name:                  "client request id not echoed by default",
			clientRequestID:       "client-1",
			returnClientRequestID: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
			if tt.clientRequestID != "" {
				request.Header.Set(cloud.HeaderNameClientRequestID, tt.clientRequestID)
			}
			if tt.returnClientRequestID != "" {
				request.Header.Set(cloud.HeaderNameReturnClientRequestID, tt.returnClientRequestID)
			}

			writer := httptest.NewRecorder()

			var gotData *cloud.CorrelationData
			var gotErr error
			next := func(w http.ResponseWriter, r *http.Request) {
				gotData, gotErr = CorrelationDataFromContext(r.Context())
			}

			MiddlewareCorrelationData(writer, request, next)

			require.NoError(t, gotErr)
			require.NotNil(t, gotData)
			assert.Equal(t, tt.clientRequestID, gotData.ClientRequestID)

			result := writer.Result()
			assert.Equal(t, gotData.RequestID.String(), result.Header.Get(cloud.HeaderNameRequestID))
			if tt.wantClientIDHeader {
				assert.Equal(t, tt.clientRequestID, result.Header.Get(cloud.HeaderNameClientRequestID))
			} else {
				assert.Empty(t, result.Header.Get(cloud.HeaderNameClientRequestID))
			}
		})
	}
}
