package host

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/Azure-Samples/whoami-func-go/pkg/cloud"
	"github.com/Azure-Samples/whoami-func-go/pkg/identity"
	"github.com/Azure-Samples/whoami-func-go/pkg/kusto"
	"github.com/Azure-Samples/whoami-func-go/pkg/store"
)

// Host serves the whoAmI function over HTTP.
type Host struct {
	logger      *slog.Logger
	listener    net.Listener
	server      http.Server
	metrics     Emitter
	dbClient    store.DBClient
	graph       identity.UserGetter
	activity    kusto.ActivityQuerier
	keyVerifier *FunctionKeyValidator
	ready       atomic.Value
	done        chan struct{}
}

func NewHost(logger *slog.Logger, listener net.Listener, emitter Emitter, dbClient store.DBClient, graph identity.UserGetter, activity kusto.ActivityQuerier, functionKey string) *Host {
	h := &Host{
		logger:   logger,
		listener: listener,
		metrics:  emitter,
		server: http.Server{
			ErrorLog: slog.NewLogLogger(logger.Handler(), slog.LevelError),
			BaseContext: func(net.Listener) context.Context {
				return ContextWithLogger(context.Background(), logger)
			},
		},
		dbClient:    dbClient,
		graph:       graph,
		activity:    activity,
		keyVerifier: NewFunctionKeyValidator(functionKey),
		done:        make(chan struct{}),
	}

	h.server.Handler = h.routes()

	return h
}

func (h *Host) Run(ctx context.Context, stop <-chan struct{}) {
	if stop != nil {
		go func() {
			<-stop
			h.ready.Store(false)
			_ = h.server.Shutdown(ctx)
		}()
	}

	h.logger.Info(fmt.Sprintf("listening on %s", h.listener.Addr().String()))

	h.ready.Store(true)

	err := h.server.Serve(h.listener)
	if err != http.ErrServerClosed {
		h.logger.Error(err.Error())
		os.Exit(1)
	}

	close(h.done)
}

func (h *Host) Join() {
	<-h.done
}

func (h *Host) CheckReady() bool {
	ready, ok := h.ready.Load().(bool)
	return ok && ready
}

func (h *Host) NotFound(writer http.ResponseWriter, request *http.Request) {
	cloud.WriteError(
		writer, http.StatusNotFound,
		cloud.CloudErrorCodeNotFound, "",
		"The requested path could not be found.")
}
