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

package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/Azure-Samples/whoami-func-go/pkg/azsdk"
	"github.com/Azure-Samples/whoami-func-go/pkg/util"
)

const (
	graphEndpoint = "https://graph.microsoft.com/v1.0"
	graphScope    = "https://graph.microsoft.com/.default"
)

// User represents the current authenticated user as returned by
// Microsoft Graph.
type User struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	UserPrincipalName string `json:"userPrincipalName"`
	Mail              string `json:"mail"`
}

// EmailAddress returns the user's mail address, falling back to the UPN.
func (u *User) EmailAddress() string {
	if u.Mail != "" {
		return u.Mail
	}
	return u.UserPrincipalName
}

// UserGetter is the part of the Graph client the host depends on.
type UserGetter interface {
	GetCurrentUser(ctx context.Context) (*User, error)
}

// GraphClient calls Microsoft Graph through an azcore pipeline with
// bearer token authentication.
type GraphClient struct {
	pipeline runtime.Pipeline
	endpoint string
}

var _ UserGetter = (*GraphClient)(nil)

// NewGraphClient creates a new Graph client with automatic authentication.
func NewGraphClient(cred azcore.TokenCredential) *GraphClient {
	clientOptions := azsdk.NewClientOptions(azsdk.ComponentGraph)

	authPolicy := runtime.NewBearerTokenPolicy(cred, []string{graphScope}, nil)
	pipeline := runtime.NewPipeline(
		"whoami-func-go/graph", util.CommitSHA(),
		runtime.PipelineOptions{PerRetry: []policy.Policy{authPolicy}},
		&policy.ClientOptions{
			Telemetry: clientOptions.Telemetry,
		})

	return &GraphClient{
		pipeline: pipeline,
		endpoint: graphEndpoint,
	}
}

// GetCurrentUser retrieves information about the current authenticated user.
func (c *GraphClient) GetCurrentUser(ctx context.Context) (*User, error) {
	req, err := runtime.NewRequest(ctx, http.MethodGet, runtime.JoinPaths(c.endpoint, "me"))
	if err != nil {
		return nil, fmt.Errorf("create /me request: %w", err)
	}

	reqQP := req.Raw().URL.Query()
	reqQP.Set("$select", "id,displayName,userPrincipalName,mail")
	req.Raw().URL.RawQuery = reqQP.Encode()
	req.Raw().Header["Accept"] = []string{"application/json"}

	resp, err := c.pipeline.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return nil, runtime.NewResponseError(resp)
	}

	payload, err := runtime.Payload(resp)
	if err != nil {
		return nil, fmt.Errorf("read /me response: %w", err)
	}

	var user User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("unmarshal /me response: %w", err)
	}

	return &user, nil
}

// Principal converts the Graph user into the host's principal shape.
func (u *User) Principal() *Principal {
	return &Principal{
		ObjectID:    u.ID,
		DisplayName: u.DisplayName,
		Email:       u.EmailAddress(),
		Source:      SourceGraph,
	}
}
