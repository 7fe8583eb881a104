package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettingsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "local.settings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeSettingsFile(t, `{
		"IsEncrypted": false,
		"Values": {
			"AzureWebJobsStorage": "UseDevelopmentStorage=true",
			"KustoClusterUrl": "https://cluster.region.kusto.windows.net/",
			"KustoDatabase": "signins",
			"FunctionKey": "secret"
		}
	}`)

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "UseDevelopmentStorage=true", settings.StorageConnection)
	assert.Equal(t, "https://cluster.region.kusto.windows.net/", settings.KustoClusterURL)
	assert.Equal(t, "signins", settings.KustoDatabase)
	assert.Equal(t, "secret", settings.FunctionKey)
	assert.True(t, settings.UsesDevelopmentStorage())
	assert.True(t, settings.KustoEnabled())
}

func TestLoadEnvironmentWins(t *testing.T) {
	path := writeSettingsFile(t, `{
		"IsEncrypted": false,
		"Values": {
			"KustoClusterUrl": "https://file.region.kusto.windows.net/",
			"KustoDatabase": "filedb"
		}
	}`)

	t.Setenv(SettingKustoClusterURL, "https://env.region.kusto.windows.net/")

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.region.kusto.windows.net/", settings.KustoClusterURL)
	assert.Equal(t, "filedb", settings.KustoDatabase)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv(SettingCosmosURL, "https://account.documents.azure.com:443/")
	t.Setenv(SettingCosmosName, "invocations")

	settings, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://account.documents.azure.com:443/", settings.CosmosURL)
	assert.Equal(t, "invocations", settings.CosmosName)
	assert.False(t, settings.KustoEnabled())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "encrypted settings file",
			content: `{"IsEncrypted": true, "Values": {}}`,
			wantErr: "is encrypted",
		},
		{
			name:    "malformed json",
			content: `{`,
			wantErr: "parse settings file",
		},
		{
			name: "non-https kusto endpoint",
			content: `{
				"IsEncrypted": false,
				"Values": {
					"KustoClusterUrl": "http://cluster.region.kusto.windows.net/",
					"KustoDatabase": "signins"
				}
			}`,
			wantErr: "must be an https cluster endpoint",
		},
		{
			name: "kusto cluster without database",
			content: `{
				"IsEncrypted": false,
				"Values": {
					"KustoClusterUrl": "https://cluster.region.kusto.windows.net/"
				}
			}`,
			wantErr: "KustoDatabase is empty",
		},
		{
			name: "cosmos url without name",
			content: `{
				"IsEncrypted": false,
				"Values": {
					"CosmosDbUrl": "https://account.documents.azure.com:443/"
				}
			}`,
			wantErr: "must be set together",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSettingsFile(t, tt.content)

			_, err := Load(path)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorContains(t, err, "read settings file")
}
