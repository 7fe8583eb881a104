// Copyright 2025 Microsoft Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Setting names follow the Azure Functions app settings convention: the
// function host copies every entry of local.settings.json "Values" into the
// process environment verbatim, so the same names are looked up in both
// places.
const (
	SettingStorageConnection = "AzureWebJobsStorage"
	SettingKustoClusterURL   = "KustoClusterUrl"
	SettingKustoDatabase     = "KustoDatabase"
	SettingCosmosURL         = "CosmosDbUrl"
	SettingCosmosName        = "CosmosDbName"
	SettingFunctionKey       = "FunctionKey"

	// DevelopmentStorage is the sentinel connection value that points the
	// host at a local Azurite emulator instead of a real storage account.
	DevelopmentStorage = "UseDevelopmentStorage=true"
)

// Settings holds the opaque configuration values the host consumes. All
// values are optional; components that lack their settings are disabled
// rather than failing startup.
type Settings struct {
	StorageConnection string
	KustoClusterURL   string
	KustoDatabase     string
	CosmosURL         string
	CosmosName        string
	FunctionKey       string
}

// localSettingsFile mirrors the local.settings.json layout used by the
// Azure Functions Core Tools. The file is excluded from version control.
type localSettingsFile struct {
	IsEncrypted bool              `json:"IsEncrypted"`
	Values      map[string]string `json:"Values"`
}

// Load reads settings from the given local.settings.json path (optional)
// and overlays values from the process environment. Environment wins so a
// deployed host ignores stray settings files.
func Load(path string) (*Settings, error) {
	values := make(map[string]string)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read settings file %s: %w", path, err)
		}

		var file localSettingsFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse settings file %s: %w", path, err)
		}
		if file.IsEncrypted {
			return nil, fmt.Errorf("settings file %s is encrypted; decrypt it with 'func settings decrypt' first", path)
		}
		for k, v := range file.Values {
			values[k] = v
		}
	}

	for _, name := range []string{
		SettingStorageConnection,
		SettingKustoClusterURL,
		SettingKustoDatabase,
		SettingCosmosURL,
		SettingCosmosName,
		SettingFunctionKey,
	} {
		if v, ok := os.LookupEnv(name); ok {
			values[name] = v
		}
	}

	s := &Settings{
		StorageConnection: values[SettingStorageConnection],
		KustoClusterURL:   values[SettingKustoClusterURL],
		KustoDatabase:     values[SettingKustoDatabase],
		CosmosURL:         values[SettingCosmosURL],
		CosmosName:        values[SettingCosmosName],
		FunctionKey:       values[SettingFunctionKey],
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// UsesDevelopmentStorage reports whether the storage connection value is
// the Azurite sentinel.
func (s *Settings) UsesDevelopmentStorage() bool {
	return strings.EqualFold(s.StorageConnection, DevelopmentStorage)
}

// KustoEnabled reports whether both Kusto settings are present.
func (s *Settings) KustoEnabled() bool {
	return s.KustoClusterURL != "" && s.KustoDatabase != ""
}

// Validate checks the structural constraints on the configured values.
func (s *Settings) Validate() error {
	if s.KustoClusterURL != "" {
		u, err := url.Parse(s.KustoClusterURL)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", SettingKustoClusterURL, s.KustoClusterURL, err)
		}
		if u.Scheme != "https" || u.Host == "" {
			return fmt.Errorf("invalid %s %q: must be an https cluster endpoint", SettingKustoClusterURL, s.KustoClusterURL)
		}
	}

	if s.KustoClusterURL != "" && s.KustoDatabase == "" {
		return fmt.Errorf("%s is set but %s is empty", SettingKustoClusterURL, SettingKustoDatabase)
	}

	if (s.CosmosURL == "") != (s.CosmosName == "") {
		return fmt.Errorf("%s and %s must be set together", SettingCosmosURL, SettingCosmosName)
	}

	return nil
}
