package api

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetJSONTagName(t *testing.T) {
	tests := []struct {
		name string
		tag  reflect.StructTag
		want string
	}{
		{
			name: "plain name",
			tag:  `json:"propertyName"`,
			want: "propertyName",
		},
		{
			name: "name with options",
			tag:  `json:"propertyName,omitempty"`,
			want: "propertyName",
		},
		{
			name: "skipped field",
			tag:  `json:"-"`,
			want: "",
		},
		{
			name: "no json tag",
			tag:  `validate:"required"`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetJSONTagName(tt.tag))
		})
	}
}

func TestValidateToolProperties(t *testing.T) {
	validate := NewValidator()

	tests := []struct {
		name       string
		properties []ToolProperty
		wantErr    string
	}{
		{
			name:       "the advertised tool metadata is valid",
			properties: WhoAmIToolProperties(),
		},
		{
			name: "missing property name",
			properties: []ToolProperty{
				{PropertyType: "boolean", Description: "some argument"},
			},
			wantErr: "propertyName",
		},
		{
			name: "unsupported property type",
			properties: []ToolProperty{
				{PropertyName: "includeEmail", PropertyType: "object", Description: "some argument"},
			},
			wantErr: "propertyType",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateToolProperties(validate, tt.properties)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
