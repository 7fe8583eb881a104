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

package host

import (
	"crypto/subtle"
	"net/http"

	"github.com/Azure-Samples/whoami-func-go/pkg/cloud"
)

// FunctionKeyValidator enforces function-level authorization on the tool
// routes. An empty key means anonymous access, matching a host with no key
// configured.
type FunctionKeyValidator struct {
	key string
}

func NewFunctionKeyValidator(key string) *FunctionKeyValidator {
	return &FunctionKeyValidator{key: key}
}

// MiddlewareFunctionKey rejects requests that do not present the function
// key in the x-functions-key header or the "code" query parameter.
func (v *FunctionKeyValidator) MiddlewareFunctionKey(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	if v.key == "" {
		next(w, r)
		return
	}

	provided := r.Header.Get(cloud.HeaderNameFunctionKey)
	if provided == "" {
		provided = r.URL.Query().Get(QueryParamCode)
	}

	if subtle.ConstantTimeCompare([]byte(provided), []byte(v.key)) != 1 {
		logger := LoggerFromContext(r.Context())
		logger.Info("rejected request without a valid function key")
		cloud.WriteError(
			w, http.StatusUnauthorized,
			cloud.CloudErrorCodeUnauthorized, "",
			"A valid function key is required to invoke this function.")
		return
	}

	next(w, r)
}
