package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"browsebridge/bridge"
	"browsebridge/browser"
	"browsebridge/config"
	"browsebridge/dispatch"
	"browsebridge/observability"
)

// backend is a bridge.Backend the CLI owns and must release.
type backend interface {
	bridge.Backend
	Close() error
}

type backendOpener func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (backend, error)

func openBrowser(ctx context.Context, cfg *config.Config, logger *zap.Logger) (backend, error) {
	b, err := browser.NewBrowser(ctx, &browser.Options{
		RunHeadful:                        !cfg.Browser.Headless,
		AttemptToDisableAutomationMessage: cfg.Browser.DisableAutomationMessage,
		Screenshots:                       cfg.Browser.Screenshots,
		MaxTextTokens:                     cfg.Browser.MaxTextTokens,
		SettleTime:                        cfg.Browser.SettleTime,
		Logger:                            logger,
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

type app struct {
	v           *viper.Viper
	cfg         *config.Config
	openBackend backendOpener

	cfgFile string
	headful bool
	full    bool
	logPath string
}

func newRootCmd(open backendOpener) *cobra.Command {
	a := &app{v: viper.New(), openBackend: open}
	root := &cobra.Command{
		Use:           "browse",
		Short:         "Run browse actions against a local Chrome and print the observations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./browse.yaml)")
	root.PersistentFlags().BoolVar(&a.headful, "headful", false, "show the browser window")
	root.PersistentFlags().BoolVar(&a.full, "full", false, "include screenshots in printed observations")
	root.AddCommand(newGotoCmd(a), newExecCmd(a), newShellCmd(a))
	return root
}

func (a *app) initialize() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("browse")
		a.v.SetConfigType("yaml")
	}
	config.SetDefaults(a.v)
	a.v.SetEnvPrefix(config.EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config: %w", err)
		}
	}
	cfg, err := config.NewConfigFromViper(a.v)
	if err != nil {
		return err
	}
	if a.headful {
		cfg.Browser.Headless = false
	}
	a.cfg = cfg
	observability.InitializeLogger(cfg.Logger)
	return nil
}

// newSession opens a backend and a bridge sized from config.
func (a *app) newSession(ctx context.Context) (*session, error) {
	logger := observability.GetLogger()
	be, err := a.openBackend(ctx, a.cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error opening browser: %w", err)
	}
	b := bridge.New(&bridge.Options{
		Logger:     logger,
		Dispatcher: dispatch.New(&dispatch.Options{MaxConcurrent: a.cfg.Bridge.MaxConcurrentSteps}),
	})
	return newSession(b, be, logger), nil
}
