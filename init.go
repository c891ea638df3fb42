package main

import (
	"context"

	"github.com/parcelflow/shipengine-go/internal/config"
	"github.com/parcelflow/shipengine-go/internal/telemetry"
	"github.com/parcelflow/shipengine-go/pkg/shipengine"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

func newClient(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) *shipengine.Client {
	return shipengine.New(shipengine.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		UseMock: cfg.UseMock,
		Metrics: shipengine.NewMetrics(),
	}, shipengine.MapFormatter{}, logger, tracer)
}
