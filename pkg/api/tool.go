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

package api

import "time"

const (
	// ToolName is the registered name of the identity tool.
	ToolName = "whoAmI"

	// IncludeEmailPropertyName is the single argument the tool accepts.
	IncludeEmailPropertyName = "includeEmail"
)

// ToolProperty describes a single tool argument in the tool trigger
// metadata contract.
type ToolProperty struct {
	PropertyName string `json:"propertyName" validate:"required"`
	PropertyType string `json:"propertyType" validate:"required,oneof=string boolean number"`
	Description  string `json:"description" validate:"required"`
}

// WhoAmIToolProperties returns the argument metadata for the whoAmI tool.
func WhoAmIToolProperties() []ToolProperty {
	return []ToolProperty{
		{
			PropertyName: IncludeEmailPropertyName,
			PropertyType: "boolean",
			Description:  "Whether to include email address in the response.",
		},
	}
}

// ToolRequest is the payload delivered by the tool trigger.
type ToolRequest struct {
	Arguments ToolArguments `json:"arguments"`
}

// ToolArguments holds the decoded tool arguments. Absent arguments keep
// their zero values, matching the trigger contract.
type ToolArguments struct {
	IncludeEmail bool `json:"includeEmail"`
}

// SigninActivity is one row of the caller's recent sign-in history pulled
// from Kusto.
type SigninActivity struct {
	Timestamp      time.Time `json:"timestamp"`
	AppDisplayName string    `json:"appDisplayName,omitempty"`
	IPAddress      string    `json:"ipAddress,omitempty"`
	Location       string    `json:"location,omitempty"`
	Status         string    `json:"status,omitempty"`
}

// WhoAmIResponse is the tool result. Result carries the formatted identity
// string the original tool contract returns; the structured fields are
// supplementary.
type WhoAmIResponse struct {
	Result         string           `json:"result"`
	DisplayName    string           `json:"displayName,omitempty"`
	Email          string           `json:"email,omitempty"`
	ObjectID       string           `json:"objectId,omitempty"`
	TenantID       string           `json:"tenantId,omitempty"`
	AuthSource     string           `json:"authSource,omitempty"`
	RecentActivity []SigninActivity `json:"recentActivity,omitempty"`
}
