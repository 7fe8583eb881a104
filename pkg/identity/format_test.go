package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUserInfo(t *testing.T) {
	tests := []struct {
		name         string
		displayName  string
		email        string
		includeEmail bool
		want         string
	}{
		{
			name:        "name only",
			displayName: "Avery Doe",
			want:        "Avery Doe",
		},
		{
			name:         "email requested and present",
			displayName:  "Avery Doe",
			email:        "avery@example.com",
			includeEmail: true,
			want:         "Avery Doe <avery@example.com>",
		},
		{
			name:         "email present but not requested",
			displayName:  "Avery Doe",
			email:        "avery@example.com",
			includeEmail: false,
			want:         "Avery Doe",
		},
		{
			name:         "email requested but absent",
			displayName:  "Avery Doe",
			includeEmail: true,
			want:         "Avery Doe",
		},
		{
			name: "no identity at all",
			want: UnknownUserName,
		},
		{
			name:         "unknown name with email",
			email:        "avery@example.com",
			includeEmail: true,
			want:         UnknownUserName + " <avery@example.com>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUserInfo(tt.displayName, tt.email, tt.includeEmail))
		})
	}
}

func TestPrincipalFormat(t *testing.T) {
	principal := &Principal{
		DisplayName: "Avery Doe",
		Email:       "avery@example.com",
	}

	assert.Equal(t, "Avery Doe", principal.Format(false))
	assert.Equal(t, "Avery Doe <avery@example.com>", principal.Format(true))
}
