package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grahms/blockweaver"
	"github.com/grahms/blockweaver/i18n"
	"github.com/grahms/blockweaver/internal/config"
	"github.com/grahms/blockweaver/library"
	"github.com/grahms/blockweaver/manifest"
)

var (
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:           "blockweaver",
	Short:         "Parse, serialize and verify block documents",
	Long:          `blockweaver reads documents made of comment-delimited blocks, extracts their attributes and writes them back in canonical form.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./blockweaver.yaml)")
	rootCmd.PersistentFlags().StringSliceP("manifest", "m", nil,
		"block manifest file or directory (repeatable)")
	rootCmd.PersistentFlags().Bool("sanitize", false,
		"sanitize markup before extracting attributes")
	rootCmd.PersistentFlags().String("unknown-blocks", "",
		`what to do with unregistered blocks: "placeholder" or "strict"`)
	rootCmd.PersistentFlags().String("log-level", "",
		"log level: debug, info, warn or error")

	_ = viper.BindPFlag("manifests", rootCmd.PersistentFlags().Lookup("manifest"))
	_ = viper.BindPFlag("sanitize", rootCmd.PersistentFlags().Lookup("sanitize"))
	_ = viper.BindPFlag("unknown_blocks", rootCmd.PersistentFlags().Lookup("unknown-blocks"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("manifests", defaults.Manifests)
	viper.SetDefault("locale", defaults.Locale)
	viper.SetDefault("translations", defaults.Translations)
	viper.SetDefault("sanitize", defaults.Sanitize)
	viper.SetDefault("unknown_blocks", defaults.UnknownBlocks)
	viper.SetDefault("log_level", defaults.LogLevel)

	viper.SetEnvPrefix("BLOCKWEAVER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("blockweaver")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine; defaults apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "reading config: %v\n", err)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// newEngine builds the registry (library blocks plus manifests) and the
// engine the commands run against.
func newEngine(cmd *cobra.Command) (*blockweaver.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))

	reg := blockweaver.NewRegistry(blockweaver.WithRegistryLogger(logger))
	if err := library.Register(reg); err != nil {
		return nil, err
	}
	if len(cfg.Manifests) > 0 {
		defs, err := manifest.LoadFiles(logger, cfg.Manifests...)
		if err != nil {
			return nil, fmt.Errorf("loading manifests: %w", err)
		}
		if err := manifest.Register(reg, defs); err != nil {
			return nil, fmt.Errorf("registering manifests: %w", err)
		}
	}

	opts := []func(*blockweaver.Engine){
		blockweaver.WithLogger(logger),
		blockweaver.WithUnknownPolicy(cfg.Policy()),
		blockweaver.WithDiagnostics(blockweaver.DiagnosticSinkFunc(func(d blockweaver.Diagnostic) {
			logger.Info("Block diagnostic", "block", d.Block, "error", d.Err)
		})),
	}
	if cfg.Sanitize {
		opts = append(opts, blockweaver.WithSanitizer(blockweaver.DefaultSanitizer()))
	}
	if cfg.Translations != "" {
		tr, err := loadTranslations(cfg.Translations, cfg.Locale)
		if err != nil {
			return nil, err
		}
		logger.Debug("Loaded translations", "locale", tr.Language(), "messages", tr.Len())
		opts = append(opts, blockweaver.WithTranslator(tr))
	}
	return blockweaver.NewEngine(reg, opts...), nil
}

func loadTranslations(path, locale string) (*i18n.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening translations: %w", err)
	}
	defer f.Close()
	return i18n.LoadYAML(f, locale)
}

// openInput opens the named file, or stdin for "-" and no argument.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}
