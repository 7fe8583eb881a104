package cmd

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Azure-Samples/whoami-func-go/pkg/api"
	"github.com/Azure-Samples/whoami-func-go/pkg/azsdk"
	"github.com/Azure-Samples/whoami-func-go/pkg/config"
	"github.com/Azure-Samples/whoami-func-go/pkg/host"
	"github.com/Azure-Samples/whoami-func-go/pkg/identity"
	"github.com/Azure-Samples/whoami-func-go/pkg/kusto"
	"github.com/Azure-Samples/whoami-func-go/pkg/store"
	"github.com/Azure-Samples/whoami-func-go/pkg/util"
)

type HostOpts struct {
	port          int
	useCache      bool
	localSettings string
}

func NewRootCmd() *cobra.Command {
	opts := &HostOpts{}
	rootCmd := &cobra.Command{
		Use:   "whoami-func",
		Args:  cobra.NoArgs,
		Short: "Serve the whoAmI function",
		Long: `Serve the whoAmI function

	This command runs the whoAmI function host. The host resolves the caller
	identity from EasyAuth headers when deployed, or from Microsoft Graph via
	DefaultAzureCredential when running locally.

	# Run the host locally with the settings from local.settings.json
	./whoami-func --local-settings local.settings.json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run()
		},
	}

	rootCmd.Flags().IntVar(&opts.port, "port", 7071, "port to listen on")
	rootCmd.Flags().BoolVar(&opts.useCache, "use-cache", false, "record invocations in memory instead of Cosmos DB")
	rootCmd.Flags().StringVar(&opts.localSettings, "local-settings", "", "path to a local.settings.json file")

	return rootCmd
}

func (opts *HostOpts) Run() error {
	logger := config.DefaultLogger()
	logger.Info(fmt.Sprintf("%s (%s) started", host.ProgramName, util.CommitSHA()))

	settings, err := config.Load(opts.localSettings)
	if err != nil {
		return err
	}

	if err := api.ValidateToolProperties(api.NewValidator(), api.WhoAmIToolProperties()); err != nil {
		return fmt.Errorf("tool property metadata is invalid: %v", err)
	}

	// Init prometheus emitter
	prometheusEmitter := host.NewPrometheusEmitter(prometheus.DefaultRegisterer)

	// Configure database configuration and client
	dbClient := store.NewCache()
	if !opts.useCache && !settings.UsesDevelopmentStorage() && settings.CosmosURL != "" {
		dbConfig := store.NewCosmosDBConfig(settings.CosmosName, settings.CosmosURL)
		dbClient, err = store.NewCosmosDBClient(dbConfig)
		if err != nil {
			return fmt.Errorf("creating the database client failed: %v", err)
		}
	}

	// A missing credential only disables the Graph fallback. Deployed hosts
	// resolve identity from EasyAuth headers and never need it.
	var graph identity.UserGetter
	cred, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		ClientOptions: azsdk.NewClientOptions(azsdk.ComponentGraph),
	})
	if err != nil {
		logger.Warn(fmt.Sprintf("no Azure credential available, Graph lookups disabled: %v", err))
	} else {
		graph = identity.NewGraphClient(cred)
	}

	var activity kusto.ActivityQuerier
	if settings.KustoEnabled() {
		kustoClient, err := kusto.NewClient(settings.KustoClusterURL, settings.KustoDatabase)
		if err != nil {
			return fmt.Errorf("creating the Kusto client failed: %v", err)
		}
		defer kustoClient.Close()
		activity = kustoClient
	}

	ctx := context.Background()

	tracerShutdown, err := host.ConfigureOpenTelemetryTracer(ctx, logger)
	if err != nil {
		return fmt.Errorf("configuring the OpenTelemetry tracer failed: %v", err)
	}

	listener, err := net.Listen("tcp4", fmt.Sprintf(":%d", opts.port))
	if err != nil {
		return err
	}

	h := host.NewHost(logger, listener, prometheusEmitter, dbClient, graph, activity, settings.FunctionKey)

	stop := make(chan struct{})
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)
	go h.Run(ctx, stop)

	sig := <-signalChannel
	logger.Info(fmt.Sprintf("caught %s signal", sig))
	close(stop)

	h.Join()

	if err := tracerShutdown(ctx); err != nil {
		logger.Error(fmt.Sprintf("shutting down the OpenTelemetry tracer failed: %v", err))
	}

	logger.Info(fmt.Sprintf("%s (%s) stopped", host.ProgramName, util.CommitSHA()))

	return nil
}
