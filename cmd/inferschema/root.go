package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/reoring/inferschema"
	"github.com/reoring/inferschema/config"
	"github.com/reoring/inferschema/i18n"
	"github.com/reoring/inferschema/internal/logging"
	"github.com/reoring/inferschema/source"
)

// app is the state shared by subcommands once flags and config are resolved.
type app struct {
	configPath string
	logLevel   string
	lang       string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logging.NewNop()}
	root := &cobra.Command{
		Use:   "inferschema",
		Short: "Derive OpenAPI-style schemas from sample values",
		Long: `inferschema reads a sample document (JSON or YAML) and prints the schema it
implies, or converts raw JSON input into the sample's native types.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.lang, "lang", "", "message language (en, ja)")

	root.AddCommand(newSchemaCmd(a), newDeserializeCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.lang != "" {
		cfg.Language = a.lang
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	a.cfg = cfg
	a.logger = logging.NewWriter(cmd.ErrOrStderr(), level)
	i18n.SetLanguage(cfg.Language)
	a.logger.Debug("config loaded", "path", a.configPath, "level", cfg.LogLevel, "lang", cfg.Language)
	return nil
}

// sample loads path and wraps it with the configured layouts.
func (a *app) sample(path string, deep bool) (*inferschema.Sample, error) {
	v, err := source.File(path)
	if err != nil {
		return nil, err
	}
	opts := []inferschema.Option{inferschema.WithFormats(a.cfg.SampleFormats())}
	if deep {
		return source.Describe(v, opts...), nil
	}
	return inferschema.New(v, opts...), nil
}
