package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roadtrip/internal/config"
	"roadtrip/internal/models/request_models"
	"roadtrip/internal/services"
	"roadtrip/pkg/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configFile string
	verbose    bool
	optimize   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "tripctl",
		Short:         "Resolve and plan multi-day road trips",
		Long:          `Validate itinerary JSON, chain each day's route and optionally reorder waypoints with the Google Routes API.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", os.Getenv("TRIP_CONFIG"), "YAML config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")
	root.PersistentFlags().BoolVar(&opts.optimize, "optimize", false, "Reorder each day's waypoints with the routing service")

	root.AddCommand(newResolveCmd(opts), newPlanCmd(opts))
	return root
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newEngine(cfg config.Config, logger *zap.Logger) *services.ItineraryOrchestrator {
	client := services.NewCachedRoutingClient(
		services.NewGoogleRoutesClient(cfg.Routing.APIKey, cfg.Routing.BaseURL),
		services.NewInMemoryRouteCache(),
		cfg.Routing.CacheTTL,
	)
	return services.NewEngine(client, cfg.Routing.Timeout, services.OrchestratorConfig{
		MaxConcurrentDays: cfg.Routing.MaxConcurrentDays,
	}, logger)
}

func newResolveCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve an itinerary JSON file into per-day routes",
		Long:  `Read itinerary JSON (code fences allowed) from a file or stdin and print each day's origin, destination, waypoints and directions link.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			logger := newLogger(opts.verbose)
			defer logger.Sync()

			raw, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			result, err := newEngine(cfg, logger).Run(cmd.Context(), raw, opts.optimize)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), services.BuildItineraryResponse(uuid.NewString(), result, opts.optimize, time.Now()))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Itinerary file, - for stdin")
	return cmd
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	var prefs request_models.TripPreferences

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Ask the itinerary model for a trip and resolve it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			logger := newLogger(opts.verbose)
			defer logger.Sync()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			apiKey, model := cfg.GenerationKey()
			source, err := utils.NewItinerarySource(ctx, utils.SourceConfig{
				Provider: cfg.Generation.Provider,
				APIKey:   apiKey,
				Model:    model,
			})
			if err != nil {
				return err
			}
			defer source.Close()

			prefs.Optimize = &opts.optimize
			planner := services.NewPlannerService(source, newEngine(cfg, logger), noopStore{}, services.PlannerConfig{
				Attempts:     cfg.Generation.Attempts,
				ItineraryTTL: cfg.Store.ItineraryTTL,
			}, logger)

			itinerary, err := planner.PlanTrip(ctx, prefs)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), itinerary)
		},
	}

	cmd.Flags().IntVarP(&prefs.Days, "days", "d", 1, "Length of the trip in days")
	cmd.Flags().StringVarP(&prefs.StartPoint, "start", "s", "", "Start point")
	cmd.Flags().StringVarP(&prefs.DestinationPoint, "destination", "t", "", "Destination point")
	cmd.Flags().StringSliceVarP(&prefs.Interests, "interest", "i", nil, "Interests (repeatable)")
	cmd.Flags().BoolVar(&prefs.IncludeMeals, "meals", false, "Plan lunch and dinner stops")
	cmd.Flags().StringVar(&prefs.LunchPref, "lunch", "", "Lunch preference")
	cmd.Flags().StringVar(&prefs.DinnerPref, "dinner", "", "Dinner preference")
	cmd.Flags().StringVar(&prefs.TravelPace, "pace", "", "Travel pace, e.g. relaxed or packed")
	cmd.Flags().StringVar(&prefs.Budget, "budget", "", "Budget range")
	cmd.Flags().StringVar(&prefs.Notes, "notes", "", "Additional notes")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("destination")

	return cmd
}

func readInput(stdin io.Reader, file string) (string, error) {
	if file == "" || file == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file, err)
	}
	return string(b), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
