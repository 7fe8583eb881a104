package host

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"net/http"
)

// Healthz reports readiness plus the invocation store connection state.
func (h *Host) Healthz(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	healthy := h.CheckReady()
	if healthy {
		if err := h.dbClient.DBConnectionTest(ctx); err != nil {
			LoggerFromContext(ctx).Error(fmt.Sprintf("database connection test failed: %v", err))
			healthy = false
		}
	}

	var healthStatus float64
	if healthy {
		writer.WriteHeader(http.StatusOK)
		healthStatus = 1.0
	} else {
		writer.WriteHeader(http.StatusInternalServerError)
		healthStatus = 0.0
	}

	h.metrics.EmitGauge("whoami_health", healthStatus, map[string]string{
		"endpoint": "/healthz",
	})
}
