package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/parcelflow/shipengine-go/pkg/shipengine"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "shipengine",
	Short:   "ShipEngine client - address validation, carriers, rates and labels",
	Version: version,
}

var carriersCmd = &cobra.Command{
	Use:   "carriers",
	Short: "List connected carrier accounts",
	RunE:  runCarriers,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog <carrier-id>",
	Short: "Show the services, package types and options of a carrier",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalog,
}

var validateCmd = &cobra.Command{
	Use:   "validate-address",
	Short: "Validate an address against the ShipEngine database",
	RunE:  runValidateAddress,
}

var addressFlags = map[string]*string{}

func init() {
	for _, field := range []string{
		"name", "phone", "company_name", "address_line1", "address_line2",
		"city_locality", "state_province", "postal_code", "country_code",
	} {
		addressFlags[field] = validateCmd.Flags().String(field, "", field+" of the address")
	}

	rootCmd.AddCommand(carriersCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(validateCmd)
}

func runCarriers(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup(ctx)

	carriers, err := client.ListCarriers(ctx)
	if err != nil {
		return err
	}
	return printJSON(carriers)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup(ctx)

	catalog, err := client.GetCarrierCatalog(ctx, shipengine.CarrierID(args[0]))
	if err != nil {
		return err
	}
	return printJSON(catalog)
}

func runValidateAddress(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup(ctx)

	fields := map[string]string{}
	for name, value := range addressFlags {
		fields[name] = *value
	}

	results, err := client.ValidateAddresses(ctx, []any{fields})
	if err != nil {
		return err
	}

	for _, result := range results {
		fmt.Println(result.StatusMessage())
		for _, msg := range result.Messages {
			fmt.Printf("  [%s] %s\n", msg.Field, msg.String())
		}
		if result.MatchedAddress != nil {
			if err := printJSON(result.MatchedAddress); err != nil {
				return err
			}
		}
	}
	return nil
}

// bootstrap loads configuration and wires the logger, tracer and client. The
// returned cleanup flushes telemetry.
func bootstrap(ctx context.Context) (*shipengine.Client, func(context.Context), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	tracer, tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	}

	client := newClient(cfg, logger, tracer)

	cleanup := func(ctx context.Context) {
		if tracerShutdown != nil {
			tracerShutdown(ctx)
		}
		logger.Sync()
	}
	return client, cleanup, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
