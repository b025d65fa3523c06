package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Joseph-Bostok/TBB/pkg/logger"
	"github.com/Joseph-Bostok/TBB/relay"
)

const serveLongDesc string = `Run the TBB backend server.

Configuration is read from the environment (LISTEN_ADDR, RESPONDER_URL,
DB_PATH, RESPONDER_TIMEOUT, SAFETY_RULES, CRISIS_HOTLINE, DEBUG) and can
be overridden per-run with flags.

Examples:
  tbb serve
  tbb serve --listen :9090 --responder http://127.0.0.1:8000/respond
  tbb serve --db data/users.db --rules config/safety.toml`

const serveShortDesc string = "Run the TBB backend server"

type serveCommander struct {
	listenAddr   string
	responderURL string
	dbPath       string
	rulesPath    string
	hotline      string
	debug        bool
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.listenAddr, "listen", "l", "", "Address to listen on")
	cmd.Flags().StringVar(&cmder.responderURL, "responder", "", "AI responder endpoint URL")
	cmd.Flags().StringVar(&cmder.dbPath, "db", "", "Path to SQLite database (empty flag keeps env/default)")
	cmd.Flags().StringVar(&cmder.rulesPath, "rules", "", "Path to TOML safety rules file")
	cmd.Flags().StringVar(&cmder.hotline, "hotline", "", "Crisis hotline number offered to users")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *serveCommander) run(cmd *cobra.Command) error {
	var config relay.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Flags override whatever the environment provided.
	if cmd.Flags().Changed("listen") {
		config.ListenAddr = c.listenAddr
	}
	if cmd.Flags().Changed("responder") {
		config.ResponderURL = c.responderURL
	}
	if cmd.Flags().Changed("db") {
		config.DBPath = c.dbPath
	}
	if cmd.Flags().Changed("rules") {
		config.SafetyRulesPath = c.rulesPath
	}
	if cmd.Flags().Changed("hotline") {
		config.Hotline = c.hotline
	}
	if cmd.Flags().Changed("debug") {
		config.Debug = c.debug
	}

	log := logger.NewLogger(config.Debug)
	defer log.Sync()

	r, err := relay.New(config, log)
	if err != nil {
		return fmt.Errorf("create relay: %w", err)
	}
	defer r.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Use an error channel to capture Listen() issues
	errChan := make(chan error, 1)
	go func() {
		if err := r.Run(); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Info("shutdown signal received, draining connections")
		if err := r.Shutdown(); err != nil {
			log.Error("shutdown failed", zap.Error(err))
			return err
		}
	}

	return nil
}
