// Package main is the entry point for the gameshelf client.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jamesprial/gameshelf/internal/config"
	"github.com/jamesprial/gameshelf/internal/games"
	"github.com/jamesprial/gameshelf/internal/graphql"
	"github.com/jamesprial/gameshelf/internal/logging"
)

var version = "dev"

const (
	defaultConfigPath = "gameshelf.yaml"
	configPathEnv     = "GAMESHELF_CONFIG_PATH"
)

// app holds what PersistentPreRunE builds for the subcommands.
type app struct {
	configPath string
	verbose    bool

	cfg      *config.Config
	logger   *zap.Logger
	closeLog func() error
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gameshelf",
		Short: "Browse and edit a games collection over GraphQL",
		Long: `gameshelf lists, adds, and deletes games through a GraphQL API.

Run without arguments to start the interactive terminal client.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: $"+configPathEnv+" or ./"+defaultConfigPath+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newTUICmd(a),
		newListCmd(a),
		newAddCmd(a),
		newDeleteCmd(a),
		newServeCmd(a),
	)
	return root
}

// interactive reports whether cmd draws to the terminal, in which case
// logs must not go to stderr.
func interactive(cmd *cobra.Command) bool {
	return cmd.Name() == "gameshelf" || cmd.Name() == "tui"
}

func (a *app) setup(cmd *cobra.Command) error {
	path, cfg, loadErr := loadConfig(a.configPath)
	config.ApplyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Log, logging.Options{
		Verbose: a.verbose,
		Quiet:   interactive(cmd),
		Writer:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.cfg, a.logger, a.closeLog = cfg, logger, closeLog

	switch {
	case loadErr != nil:
		logger.Warn("could not load config, using defaults", zap.String("path", path), zap.Error(loadErr))
	case path != "":
		logger.Debug("loaded config", zap.String("path", path))
	}
	return nil
}

func (a *app) teardown() error {
	if a.closeLog == nil {
		return nil
	}
	// Syncing stderr fails on some terminals; the error carries no news.
	_ = a.closeLog()
	return nil
}

// loadConfig reads the config named by flagPath, else $GAMESHELF_CONFIG_PATH,
// else ./gameshelf.yaml. A missing default file is not an error. Any other
// failure is returned alongside the defaults.
func loadConfig(flagPath string) (string, *config.Config, error) {
	path, explicit := flagPath, true
	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path == "" {
		path, explicit = defaultConfigPath, false
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return "", config.DefaultConfig(), nil
		}
		return path, config.DefaultConfig(), err
	}
	return path, cfg, nil
}

// newManager builds the games binding from configuration.
func (a *app) newManager() (*graphql.HTTPClient, *games.GraphQLGameManager, error) {
	client, err := graphql.NewHTTPClient(a.cfg.GraphQL, graphql.WithLogger(a.logger.Named("graphql")))
	if err != nil {
		return nil, nil, err
	}
	return client, games.NewGraphQLGameManager(client), nil
}
