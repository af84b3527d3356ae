package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agro-advisor/internal/models"
	"agro-advisor/pkg/registry"

	chatreply "agro-advisor/internal/workers/advisory/chat-reply"
	simulatecrop "agro-advisor/internal/workers/advisory/simulate-crop"
	searchproducts "agro-advisor/internal/workers/catalog/search-products"
	builddashboard "agro-advisor/internal/workers/dashboard/build-dashboard"
	lookuplocation "agro-advisor/internal/workers/location/lookup-location"
)

func (c *cli) chatCmd() *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			online := !offline
			out, err := c.app.Chat.Execute(cmd.Context(), &chatreply.Input{
				Message:  strings.Join(args, " "),
				IsOnline: &online,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "answer with the offline fallback")
	return cmd
}

func (c *cli) simulateCmd() *cobra.Command {
	var req models.SimulationRequest
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a crop cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.app.Simulator.Execute(cmd.Context(), &simulatecrop.Input{SimulationRequest: req})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Crop, "crop", "", "crop to simulate (maiz, tomate, frijol, papa, arroz, cafe)")
	f.Float64Var(&req.Area, "area", 0, "cultivated area in hectares")
	f.StringVar(&req.Location, "location", "", "free-text location")
	f.StringVar(&req.Season, "season", "", "season (primavera, verano, otono, invierno)")
	f.StringVar(&req.Fertilizer, "fertilizer", "", "fertilizer option")
	f.StringVar(&req.Pesticide, "pesticide", "", "pesticide option")
	f.StringVar(&req.Seeds, "seeds", "", "seed option")
	_ = cmd.MarkFlagRequired("crop")
	_ = cmd.MarkFlagRequired("area")
	return cmd
}

func (c *cli) optionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the simulator's selectable options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), simulatecrop.GetOptions())
		},
	}
}

func (c *cli) productsCmd() *cobra.Command {
	var input searchproducts.Input
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Search the product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.app.Search.Execute(cmd.Context(), &input)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&input.Search, "search", "", "text matched against name, brand and description")
	cmd.Flags().StringVar(&input.Category, "category", "", "category id (fertilizer, pesticide, seed, tool)")
	return cmd
}

func (c *cli) locationCmd() *cobra.Command {
	var (
		query    string
		lat, lng float64
	)
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Look up mock climate data for a place or coordinates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &lookuplocation.Input{Mode: lookuplocation.ModeSearch, Query: query}
			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
				input = &lookuplocation.Input{
					Mode:        lookuplocation.ModeDevice,
					Permission:  lookuplocation.PermissionGranted,
					Coordinates: &models.Coordinates{Lat: lat, Lng: lng},
				}
			}
			out, err := c.app.Location.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "place to search for")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude in degrees")
	cmd.MarkFlagsMutuallyExclusive("query", "lat")
	cmd.MarkFlagsMutuallyExclusive("query", "lng")
	return cmd
}

func (c *cli) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard with default session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.app.Dashboard.Execute(cmd.Context(), &builddashboard.Input{})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

type taskInfo struct {
	TaskType    string   `json:"taskType"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	ErrorCodes  []string `json:"errorCodes"`
}

func (c *cli) tasksCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the job task types served by the workers",
		Long: "Lists the activity registry. With --registry the given file is validated\n" +
			"and every task type it names must have a handler.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Default()
			if path != "" {
				reg, err = registry.LoadRegistry(path)
			}
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Validate(); err != nil {
				return err
			}

			handlers := c.app.JobHandlers()
			tasks := make([]taskInfo, 0, len(reg.Activities))
			for _, a := range reg.Activities {
				if _, ok := handlers[a.TaskType]; !ok {
					return fmt.Errorf("activity %s: no handler for task type %q", a.ID, a.TaskType)
				}
				tasks = append(tasks, taskInfo{
					TaskType:    a.TaskType,
					DisplayName: a.DisplayName,
					Description: a.Description,
					ErrorCodes:  a.ErrorCodes,
				})
			}
			return printJSON(cmd.OutOrStdout(), tasks)
		},
	}
	cmd.Flags().StringVar(&path, "registry", "", "validate this registry file instead of the built-in one")
	return cmd
}
