package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"qutlas/cmd/api/bootstrap/components"
	"qutlas/internal/adapter/catalog"
	"qutlas/internal/adapter/http/middleware"
	"qutlas/internal/adapter/persistence/memory"
	"qutlas/internal/config"
	"qutlas/internal/usecase"
	"qutlas/pkg/clock"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "qutlas",
		Short:         "Offline quoting and hub matching against a catalog file",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("catalog", "", "Catalog YAML file (defaults to CATALOG_FILE)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level written to stderr")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output as JSON")

	rootCmd.AddCommand(quoteCmd())
	rootCmd.AddCommand(matchCmd())
	rootCmd.AddCommand(catalogCmd())

	return rootCmd
}

// runtime wires the same pricing and matching stack the API uses, backed
// by the catalog file and in-memory stores.
type runtime struct {
	cfg     config.Config
	catalog *catalog.Catalog
	quotes  *usecase.QuoteUseCase
	hubs    *usecase.HubUseCase
}

func newRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if path, _ := cmd.Flags().GetString("catalog"); path != "" {
		cfg.Catalog.File = path
	}
	level, _ := cmd.Flags().GetString("log-level")
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: middleware.ParseLevel(level)}))

	c, err := catalog.LoadFile(cfg.Catalog.File)
	if err != nil {
		return nil, err
	}
	clk := clock.NewRealClock()

	return &runtime{
		cfg:     cfg,
		catalog: c,
		quotes:  usecase.NewQuoteUseCase(c, nil, components.NewPricingEngine(cfg, clk), clk, logger),
		hubs: usecase.NewHubUseCase(
			memory.NewHubRepository(clk, c.Hubs()...),
			c,
			components.NewMatcher(cfg),
			components.NewRetryPolicy(cfg),
			logger,
		),
	}, nil
}

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
