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
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Azure-Samples/whoami-func-go/pkg/cloud"
)

// Source records which resolution path produced a Principal.
type Source string

const (
	SourceEasyAuth Source = "easyauth"
	SourceGraph    Source = "graph"
)

// ErrNoPrincipal is returned when the request carries EasyAuth headers but
// no usable principal could be extracted from them.
var ErrNoPrincipal = errors.New("no user principal found in EasyAuth headers")

// Principal is the resolved caller identity.
type Principal struct {
	ObjectID         string
	TenantID         string
	DisplayName      string
	Email            string
	IdentityProvider string
	Source           Source
}

// AAD claim type names as they appear in EasyAuth principal documents.
// Both the short OIDC names and the long SOAP-style URIs occur in the wild.
const (
	claimTypeName              = "name"
	claimTypeNameURI           = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
	claimTypeEmailURI          = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
	claimTypePreferredUsername = "preferred_username"
	claimTypeObjectIDURI       = "http://schemas.microsoft.com/identity/claims/objectidentifier"
	claimTypeTenantIDURI       = "http://schemas.microsoft.com/identity/claims/tenantid"
)

// clientPrincipal covers both principal document shapes EasyAuth emits:
// the App Service form with a claims array, and the flattened form with
// top-level name/email fields.
type clientPrincipal struct {
	AuthType string                 `json:"auth_typ"`
	Claims   []clientPrincipalClaim `json:"claims"`

	Name  string `json:"name"`
	Email string `json:"email"`
}

type clientPrincipalClaim struct {
	Type  string `json:"typ"`
	Value string `json:"val"`
}

// azureADClaims is the subset of AAD access token claims the host reads.
// Tokens are never validated here; the platform in front of the host
// already did that.
type azureADClaims struct {
	jwt.RegisteredClaims
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email"`
	TenantID          string `json:"tid"`
	ObjectID          string `json:"oid"`
}

// EasyAuthRequest reports whether the request passed through App Service
// authentication. The original function keys off the injected AAD access
// token; the principal headers are accepted as equivalent evidence.
func EasyAuthRequest(r *http.Request) bool {
	return r.Header.Get(cloud.HeaderNameAadAccessToken) != "" ||
		r.Header.Get(cloud.HeaderNameClientPrincipal) != "" ||
		r.Header.Get(cloud.HeaderNameClientPrincipalName) != ""
}

// FromEasyAuth extracts the caller identity from EasyAuth headers.
// Resolution order: principal document, access token claims, then the
// plain principal name/id headers. ErrNoPrincipal is returned when none
// of them yield an identity.
func FromEasyAuth(r *http.Request) (*Principal, error) {
	if encoded := r.Header.Get(cloud.HeaderNameClientPrincipal); encoded != "" {
		principal, err := decodeClientPrincipal(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode client principal: %w", err)
		}
		principal.IdentityProvider = r.Header.Get(cloud.HeaderNameClientPrincipalIdp)
		return principal, nil
	}

	if raw := r.Header.Get(cloud.HeaderNameAadAccessToken); raw != "" {
		principal, err := principalFromAccessToken(raw)
		if err == nil {
			return principal, nil
		}
		// Fall through to the plain headers on a malformed token.
	}

	if name := r.Header.Get(cloud.HeaderNameClientPrincipalName); name != "" {
		return &Principal{
			DisplayName:      name,
			Email:            name,
			ObjectID:         r.Header.Get(cloud.HeaderNameClientPrincipalID),
			IdentityProvider: r.Header.Get(cloud.HeaderNameClientPrincipalIdp),
			Source:           SourceEasyAuth,
		}, nil
	}

	return nil, ErrNoPrincipal
}

func decodeClientPrincipal(encoded string) (*Principal, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// Some proxies re-encode the header URL-safe.
		decoded, err = base64.URLEncoding.DecodeString(encoded)
		if err != nil {
			return nil, err
		}
	}

	var doc clientPrincipal
	if err := json.Unmarshal(decoded, &doc); err != nil {
		return nil, err
	}

	principal := &Principal{
		DisplayName: doc.Name,
		Email:       doc.Email,
		Source:      SourceEasyAuth,
	}

	for _, claim := range doc.Claims {
		switch claim.Type {
		case claimTypeName, claimTypeNameURI:
			if principal.DisplayName == "" {
				principal.DisplayName = claim.Value
			}
		case claimTypeEmailURI, claimTypePreferredUsername:
			if principal.Email == "" {
				principal.Email = claim.Value
			}
		case claimTypeObjectIDURI:
			principal.ObjectID = claim.Value
		case claimTypeTenantIDURI:
			principal.TenantID = claim.Value
		}
	}

	if principal.DisplayName == "" && principal.Email == "" && principal.ObjectID == "" {
		return nil, ErrNoPrincipal
	}

	return principal, nil
}

func principalFromAccessToken(raw string) (*Principal, error) {
	var claims azureADClaims

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return nil, fmt.Errorf("parse EasyAuth access token: %w", err)
	}

	email := claims.Email
	if email == "" {
		email = claims.PreferredUsername
	}

	if claims.Name == "" && email == "" && claims.ObjectID == "" {
		return nil, ErrNoPrincipal
	}

	return &Principal{
		ObjectID:    claims.ObjectID,
		TenantID:    claims.TenantID,
		DisplayName: claims.Name,
		Email:       email,
		Source:      SourceEasyAuth,
	}, nil
}
