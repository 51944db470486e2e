package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	smartemailing "github.com/lemonade-framework/smartemailing-go"
	"github.com/lemonade-framework/smartemailing-go/internal/config"
)

// offlineAnnotation marks commands that never contact the service.
const offlineAnnotation = "offline"

// Streams holds the input and output streams of the tool.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultStreams returns the process streams.
func DefaultStreams() Streams {
	return Streams{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// app carries the state shared by all commands of one invocation.
type app struct {
	streams Streams

	configPath string
	user       string
	token      string
	baseURL    string
	timeout    time.Duration
	verifyPeer bool
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	client *smartemailing.Client
}

func run(ctx context.Context, args []string, streams Streams) error {
	root := newRootCmd(streams)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(streams.Stderr, "Error:", err)
	}
	return err
}

func newRootCmd(streams Streams) *cobra.Command {
	a := &app{streams: streams}

	root := &cobra.Command{
		Use:   "smartemailing",
		Short: "Command line client for the SmartEmailing API",
		Long: `smartemailing talks to the SmartEmailing v3 API.

Credentials are read from the config file, from SMARTEMAILING_USER and
SMARTEMAILING_TOKEN (a .env file in the working directory is loaded) or
from the --user and --token flags, in increasing order of precedence.
Every command prints JSON on stdout.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetIn(streams.Stdin)
	root.SetOut(streams.Stdout)
	root.SetErr(streams.Stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", config.DefaultPath, "Config file")
	flags.StringVar(&a.user, "user", "", "API user (or set SMARTEMAILING_USER)")
	flags.StringVar(&a.token, "token", "", "API token (or set SMARTEMAILING_TOKEN)")
	flags.StringVar(&a.baseURL, "base-url", "", "Service origin (or set SMARTEMAILING_BASE_URL)")
	flags.DurationVar(&a.timeout, "timeout", 0, "Per-request timeout (default 10s)")
	flags.BoolVar(&a.verifyPeer, "verify-peer", false, "Verify the server's certificate chain")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		a.pingCmd(),
		a.checkLoginCmd(),
		a.accountCmd(),
		a.checkListCmd(),
		a.checkListsCmd(),
		a.listsCmd(),
		a.contactsCmd(),
		a.contactCmd(),
		a.importCmd(),
		a.updateCmd(),
		a.tagCmd(),
		a.removeCmd(),
		a.addToListCmd(),
		a.schemaCmd(),
		a.debugCmd(),
		a.configCmd(),
	)

	return root
}

// setup loads the configuration, applies flags and builds the logger and,
// unless the command is offline, the client.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("user") {
		cfg.User = a.user
	}
	if flags.Changed("token") {
		cfg.Token = a.token
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = a.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout.String()
	}
	if flags.Changed("verify-peer") {
		cfg.VerifyPeer = a.verifyPeer
	}

	a.cfg = cfg

	a.logger, err = newLogger(cfg.Logging, a.verbose, a.streams.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cmd.Annotations[offlineAnnotation] == "true" {
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.client, err = smartemailing.New(cfg.User, cfg.Token,
		smartemailing.WithBaseURL(cfg.BaseURL),
		smartemailing.WithTimeout(cfg.GetTimeout()),
		smartemailing.WithVerifyPeer(cfg.VerifyPeer),
		smartemailing.WithLogger(a.logger),
	)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	a.logger.Debug("configuration loaded",
		zap.String("config", a.configPath),
		zap.String("base_url", cfg.BaseURL),
		zap.Duration("timeout", cfg.GetTimeout()),
		zap.Bool("verify_peer", cfg.VerifyPeer),
	)
	return nil
}

// newLogger builds a production style logger writing to w.
func newLogger(cfg config.LoggingConfig, verbose bool, w io.Writer) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch cfg.Encoding {
	case "", "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("unknown log encoding %q", cfg.Encoding)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core), nil
}
