package cloud

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloudErrorBody_String(t *testing.T) {
	tests := []struct {
		name     string
		body     *CloudErrorBody
		expected string
	}{
		{
			name: "No details",
			body: &CloudErrorBody{
				Code:    "code",
				Message: "message",
				Target:  "target",
			},
			expected: "code: target: message",
		},
		{
			name: "One detail",
			body: &CloudErrorBody{
				Code:    "code",
				Message: "message",
				Details: []CloudErrorBody{
					{
						Code:    "innercode",
						Message: "innermessage",
						Target:  "innertarget",
					},
				},
			},
			expected: "code: message Details: innercode: innertarget: innermessage",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.body.String())
		})
	}
}

func TestWriteCloudError(t *testing.T) {
	writer := httptest.NewRecorder()

	WriteError(
		writer, http.StatusUnauthorized,
		CloudErrorCodeUnauthorized, "",
		"A valid function key is required to invoke this function.")

	result := writer.Result()
	assert.Equal(t, http.StatusUnauthorized, result.StatusCode)
	assert.Equal(t, "application/json", result.Header.Get("Content-Type"))
	assert.Equal(t, CloudErrorCodeUnauthorized, result.Header.Get(HeaderNameErrorCode))

	var payload struct {
		Error CloudErrorBody `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(writer.Body.Bytes(), &payload))
	assert.Equal(t, CloudErrorCodeUnauthorized, payload.Error.Code)
}

func TestNewUnmarshalCloudError(t *testing.T) {
	var target struct {
		IncludeEmail bool `json:"includeEmail"`
	}
	err := json.Unmarshal([]byte(`{"includeEmail":"yes"}`), &target)

	cloudErr := NewUnmarshalCloudError(err)
	assert.Equal(t, http.StatusBadRequest, cloudErr.StatusCode)
	assert.Equal(t, CloudErrorCodeInvalidRequestContent, cloudErr.Code)
	assert.Equal(t, "includeEmail", cloudErr.Target)
}
