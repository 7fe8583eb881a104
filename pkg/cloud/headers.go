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

package cloud

const (
	// Microsoft-specific HTTP header names
	HeaderNameErrorCode             = "X-Ms-Error-Code"
	HeaderNameRequestID             = "X-Ms-Request-Id"
	HeaderNameClientRequestID       = "X-Ms-Client-Request-Id"
	HeaderNameCorrelationRequestID  = "X-Ms-Correlation-Request-Id"
	HeaderNameReturnClientRequestID = "X-Ms-Return-Client-Request-Id"

	// EasyAuth header names injected by the App Service authentication
	// layer in front of the function host.
	HeaderNameClientPrincipal     = "X-Ms-Client-Principal"
	HeaderNameClientPrincipalName = "X-Ms-Client-Principal-Name"
	HeaderNameClientPrincipalID   = "X-Ms-Client-Principal-Id"
	HeaderNameClientPrincipalIdp  = "X-Ms-Client-Principal-Idp"
	HeaderNameAadAccessToken      = "X-Ms-Token-Aad-Access-Token"

	// HeaderNameFunctionKey carries the function key for AuthLevel FUNCTION.
	HeaderNameFunctionKey = "X-Functions-Key"
)
