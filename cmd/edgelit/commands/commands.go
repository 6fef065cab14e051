package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/edgelit/edgelit/internal/x11"
	"github.com/edgelit/edgelit/pkg/config"
	"github.com/edgelit/edgelit/pkg/manager"
)

// Version is stamped at build time.
var Version = "dev"

var (
	configPath  string
	loggerLevel string

	log = logrus.New()

	// Root runs the border daemon.
	Root = &cobra.Command{
		Use:   "edgelit",
		Short: "Animated window borders for X11",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(loggerLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", loggerLevel, err)
			}
			log.SetLevel(level)
			if configPath == "" {
				configPath = config.DefaultPath()
			}
			return nil
		},
		RunE: runDaemon,
	}

	// CheckConfig validates the configuration file and exits.
	CheckConfig = &cobra.Command{
		Use:   "check-config",
		Short: "Validate the configuration file without starting the daemon",
		Args:  cobra.ExactArgs(0),
		RunE:  runCheckConfig,
	}

	// VersionCmd prints the build version.
	VersionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the edgelit version",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version)
		},
	}
)

func init() {
	Root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default ~/.config/edgelit/config.yaml)")
	Root.PersistentFlags().StringVar(&loggerLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	Root.AddCommand(CheckConfig, VersionCmd)
}

// loadRules reads and compiles the configuration file.
func loadRules() (*config.Ruleset, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return config.Compile(cfg, log), nil
}

func runDaemon(cmd *cobra.Command, args []string) error {
	rules, err := loadRules()
	if err != nil {
		return err
	}

	conn, err := x11.Connect()
	if err != nil {
		return err
	}
	defer conn.Close()
	if !conn.HasARGB() {
		log.Warn("no 32-bit visual available, borders will render without translucency")
	}

	m := manager.New(manager.Options{
		Rules:    rules,
		Provider: conn,
		Log:      log,
		Reload:   loadRules,
	})

	dispatcher := x11.NewDispatcher(conn, m, log)
	if err := dispatcher.Subscribe(); err != nil {
		return err
	}
	go dispatcher.Run()
	defer dispatcher.Stop()

	watcher, err := config.Watch(configPath, log, m.ReloadConfig)
	if err != nil {
		log.WithError(err).Warn("config watching unavailable, reload on SIGHUP only")
	} else {
		defer watcher.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			m.ReloadConfig()
		}
	}()

	log.WithField("config", configPath).Info("edgelit started")
	err = m.Run(ctx)
	if err == context.Canceled {
		err = nil
	}
	return err
}

func runCheckConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// Resolution logs a warning for every field that falls back, so a
	// clean run means every value was accepted as written.
	rules := config.Compile(cfg, log)
	g := rules.Global()
	fmt.Printf("%s: ok\n", configPath)
	fmt.Printf("  border: width=%g offset=%g corner=%s\n", g.Style.Width, g.Style.Offset, g.Style.Corner)
	fmt.Printf("  fps=%d initialize_delay=%s restore_delay=%s\n", g.FPS, g.InitializeDelay, g.RestoreDelay)
	fmt.Printf("  window rules: %d\n", len(cfg.WindowRules))
	return nil
}
