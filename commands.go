package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pagestrip/internal/config"
	"pagestrip/internal/eventbus"
	"pagestrip/internal/loader"
	"pagestrip/internal/logging"
	"pagestrip/internal/ui"
	"pagestrip/internal/ui/input"
	"pagestrip/internal/ui/logic"
	"pagestrip/internal/ui/services/pagination"
	"pagestrip/internal/ui/views"
)

// flags holds the root command flags; zero values mean "use the config file"
type flags struct {
	configPath   string
	pages        int
	window       int
	capacity     int
	itemsPerPage int
	logLevel     string
	logFile      string
	metricsAddr  string
}

func newRootCommand() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "pagestrip",
		Short: "Page through a data set with a strip of page buttons",
		Long: `pagestrip shows a strip of page selector buttons above a paged data set.

Navigate with home/end, left/right, tab + enter, or type a page number.
Buttons can also be clicked.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, f.metricsAddr)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "config file (default is the user config directory)")
	cmd.Flags().IntVarP(&f.pages, "pages", "p", 0, "number of pages")
	cmd.Flags().IntVarP(&f.window, "window", "w", 0, "buttons in the strip, 0 for the default")
	cmd.Flags().IntVar(&f.capacity, "capacity", 0, "subscribers allowed per event type")
	cmd.Flags().IntVar(&f.itemsPerPage, "items-per-page", 0, "items shown per page")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "log file")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :9090")

	cmd.AddCommand(newWindowCommand())
	cmd.AddCommand(newInitConfigCommand(f))
	return cmd
}

func newWindowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "window START TOTAL [SIZE]",
		Short: "Print the button strip for a window",
		Example: `  pagestrip window 1 10
  pagestrip window 4 10 7`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			size := ""
			if len(args) == 3 {
				size = args[2]
			}
			return printWindow(cmd.OutOrStdout(), args[0], args[1], size)
		},
	}
}

func newInitConfigCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := configService(f.configPath)
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", svc.Path())
			return nil
		},
	}
}

func printWindow(w io.Writer, start, total, size string) error {
	s, t, n, err := logic.ParseWindowArgs(start, total, size)
	if err != nil {
		return err
	}
	buttons, err := logic.ComputeWindow(s, t, n)
	if err != nil {
		return err
	}
	strip := views.NewStripRenderer(views.PlainStyles()).Render(buttons, -1)
	_, err = fmt.Fprintln(w, strip.Line)
	return err
}

func configService(path string) config.ConfigService {
	if path != "" {
		return config.NewConfigServiceAt(path)
	}
	return config.NewConfigService()
}

// loadConfig reads the config file and applies the flags the user set
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := configService(f.configPath).Load()
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("pages") {
		cfg.Pagination.TotalPages = f.pages
	}
	if changed("window") {
		cfg.Pagination.WindowSize = f.window
	}
	if changed("capacity") {
		cfg.Pagination.Capacity = f.capacity
	}
	if changed("items-per-page") {
		cfg.Pagination.ItemsPerPage = f.itemsPerPage
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-file") {
		cfg.Log.File = f.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// wire builds the page strip for cfg. Faults are reported to the returned model.
func wire(cfg *config.Config, logger zerolog.Logger) (*ui.Model, *pagination.Controller, error) {
	p := cfg.Pagination
	labels := cfg.DomainLabels()

	ld := loader.New(p.TotalPages*p.ItemsPerPage, p.ItemsPerPage, logger.With().Str("component", "loader").Logger())
	in := input.New(input.DefaultKeyMap(), labels)

	var model *ui.Model
	controller := pagination.NewController(in,
		pagination.WithLabels(labels),
		pagination.WithLogger(logger.With().Str("component", "pagination").Logger()),
		pagination.WithBusOptions(eventbus.WithFaultHook(func(f eventbus.HandlerFault) {
			// Handlers run on the UI goroutine, inside Update
			if model != nil {
				model.HandlerFault(f)
			}
		})),
	)

	if err := controller.ConfigureCapacity(p.Capacity); err != nil {
		return nil, nil, err
	}
	if _, err := controller.Render(1, ld.TotalPages(), p.WindowSize); err != nil {
		return nil, nil, err
	}
	if err := controller.OnNavigate(ld); err != nil {
		return nil, nil, err
	}
	if _, err := ld.Load(1); err != nil {
		return nil, nil, err
	}

	model, err := ui.NewModel(controller, in, ld, logger.With().Str("component", "ui").Logger())
	if err != nil {
		return nil, nil, err
	}
	return model, controller, nil
}

func run(ctx context.Context, cfg *config.Config, metricsAddr string) error {
	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.LogLevel(cfg.Log.Level)
	logCfg.Pretty = true
	logCfg.Output = logFile
	logger := logging.Setup(logCfg)

	if metricsAddr != "" {
		stop := serveMetrics(metricsAddr, logger)
		defer stop()
	}

	model, _, err := wire(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info().
		Int("pages", cfg.Pagination.TotalPages).
		Int("window", cfg.Pagination.WindowSize).
		Msg("Starting UI")

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error().Err(err).Msg("Error running program")
		return err
	}
	logger.Info().Msg("UI exited normally")
	return nil
}

func serveMetrics(addr string, logger zerolog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", addr).Msg("Metrics server failed")
		}
	}()
	logger.Info().Str("addr", addr).Msg("Serving metrics")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
