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

import "fmt"

// UnknownUserName is the display name used when the identity carries none.
const UnknownUserName = "Unknown User"

// FormatUserInfo renders the tool result string. The email is only
// included when explicitly requested and actually present.
func FormatUserInfo(displayName, email string, includeEmail bool) string {
	if displayName == "" {
		displayName = UnknownUserName
	}

	if includeEmail && email != "" {
		return fmt.Sprintf("%s <%s>", displayName, email)
	}

	return displayName
}

// FormatPrincipal renders the tool result string for a resolved principal.
func (p *Principal) Format(includeEmail bool) string {
	return FormatUserInfo(p.DisplayName, p.Email, includeEmail)
}
