package host

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Azure-Samples/whoami-func-go/pkg/api"
	"github.com/Azure-Samples/whoami-func-go/pkg/cloud"
	"github.com/Azure-Samples/whoami-func-go/pkg/identity"
	"github.com/Azure-Samples/whoami-func-go/pkg/store"
)

// WhoAmI determines who the current user is. The caller identity comes
// from the EasyAuth headers when the host runs behind App Service
// authentication, and from Microsoft Graph otherwise.
func (h *Host) WhoAmI(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	logger := LoggerFromContext(ctx)

	args, cloudErr := parseToolArguments(request)
	if cloudErr != nil {
		logger.Error(cloudErr.Error())
		cloud.WriteCloudError(writer, cloudErr)
		return
	}

	startTime := time.Now()

	principal, cloudErr := h.resolvePrincipal(request)
	if cloudErr != nil {
		logger.Error(cloudErr.Error())
		h.recordInvocation(request, nil, args, false, time.Since(startTime))
		cloud.WriteCloudError(writer, cloudErr)
		return
	}

	logger.Info(fmt.Sprintf("resolved caller identity via %s", principal.Source))

	resp := &api.WhoAmIResponse{
		Result:      principal.Format(args.IncludeEmail),
		DisplayName: principal.DisplayName,
		ObjectID:    principal.ObjectID,
		TenantID:    principal.TenantID,
		AuthSource:  string(principal.Source),
	}
	if args.IncludeEmail {
		resp.Email = principal.Email
	}

	// Activity enrichment is best-effort: a Kusto outage must not fail
	// the invocation.
	if h.activity != nil && principal.ObjectID != "" {
		activity, err := h.activity.RecentSignins(ctx, principal.ObjectID)
		if err != nil {
			logger.Warn("sign-in activity lookup failed", "error", err)
		} else {
			resp.RecentActivity = activity
		}
	}

	h.recordInvocation(request, principal, args, true, time.Since(startTime))

	data, err := json.Marshal(resp)
	if err != nil {
		logger.Error(err.Error())
		cloud.WriteInternalServerError(writer)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	if _, err := writer.Write(data); err != nil {
		logger.Error(err.Error())
	}
}

// ToolProperties returns the tool argument metadata.
func (h *Host) ToolProperties(writer http.ResponseWriter, request *http.Request) {
	logger := LoggerFromContext(request.Context())

	data, err := json.Marshal(api.WhoAmIToolProperties())
	if err != nil {
		logger.Error(err.Error())
		cloud.WriteInternalServerError(writer)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	if _, err := writer.Write(data); err != nil {
		logger.Error(err.Error())
	}
}

// parseToolArguments decodes the tool arguments from the trigger payload
// (POST) or from query parameters (GET).
func parseToolArguments(request *http.Request) (api.ToolArguments, *cloud.CloudError) {
	var args api.ToolArguments

	switch request.Method {
	case http.MethodPost:
		body, err := BodyFromContext(request.Context())
		if err != nil {
			return args, cloud.NewCloudError(
				http.StatusInternalServerError,
				cloud.CloudErrorCodeInternalServerError, "",
				"Internal server error.")
		}
		if len(body) == 0 {
			return args, nil
		}

		var req api.ToolRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return args, cloud.NewUnmarshalCloudError(err)
		}
		args = req.Arguments

	default:
		raw := request.URL.Query().Get(api.IncludeEmailPropertyName)
		if raw != "" {
			includeEmail, err := strconv.ParseBool(raw)
			if err != nil {
				return args, cloud.NewCloudError(
					http.StatusBadRequest,
					cloud.CloudErrorCodeInvalidParameter,
					api.IncludeEmailPropertyName,
					"The value '%s' is not a valid boolean.", raw)
			}
			args.IncludeEmail = includeEmail
		}
	}

	return args, nil
}

// resolvePrincipal resolves the caller identity. EasyAuth headers win over
// the Graph lookup so a deployed host never spends a Graph round trip.
func (h *Host) resolvePrincipal(request *http.Request) (*identity.Principal, *cloud.CloudError) {
	if identity.EasyAuthRequest(request) {
		principal, err := identity.FromEasyAuth(request)
		if err != nil {
			if errors.Is(err, identity.ErrNoPrincipal) {
				return nil, cloud.NewCloudError(
					http.StatusUnauthorized,
					cloud.CloudErrorCodeUnauthorized, "",
					"No user principal found in EasyAuth headers.")
			}
			return nil, cloud.NewCloudError(
				http.StatusUnauthorized,
				cloud.CloudErrorCodeUnauthorized, "",
				"Failed to read the EasyAuth principal: %v", err)
		}
		return principal, nil
	}

	if h.graph == nil {
		return nil, cloud.NewCloudError(
			http.StatusInternalServerError,
			cloud.CloudErrorCodeInternalServerError, "",
			"No credential is available to query Microsoft Graph.")
	}

	user, err := h.graph.GetCurrentUser(request.Context())
	if err != nil {
		return nil, cloud.NewCloudError(
			http.StatusBadGateway,
			cloud.CloudErrorCodeInternalServerError, "",
			"Failed to get user info: %v", err)
	}

	return user.Principal(), nil
}

// recordInvocation persists an invocation record and emits the invocation
// counter. Store failures are logged, never surfaced to the caller.
func (h *Host) recordInvocation(request *http.Request, principal *identity.Principal, args api.ToolArguments, succeeded bool, duration time.Duration) {
	ctx := request.Context()
	logger := LoggerFromContext(ctx)

	doc := &store.InvocationDocument{
		ID:           uuid.New().String(),
		PartitionKey: "anonymous",
		Tool:         api.ToolName,
		IncludeEmail: args.IncludeEmail,
		Succeeded:    succeeded,
		DurationMS:   duration.Milliseconds(),
		InvokedAt:    time.Now().UTC(),
	}
	if principal != nil {
		doc.PrincipalObjectID = principal.ObjectID
		doc.PrincipalName = principal.DisplayName
		doc.AuthSource = string(principal.Source)
		if principal.ObjectID != "" {
			doc.PartitionKey = principal.ObjectID
		}
	}

	if err := h.dbClient.SetInvocationDoc(ctx, doc); err != nil {
		logger.Error(fmt.Sprintf("failed to record invocation %s: %v", doc.ID, err))
	}

	h.metrics.AddCounter("whoami_invocations_total", 1.0, map[string]string{
		"outcome": strconv.FormatBool(succeeded),
		"source":  doc.AuthSource,
	})
}
