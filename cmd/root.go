package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:           "seca-host",
	Short:         "Host security posture checks with a weighted score",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func rootPersistentPreRunE(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}
	applyConfigDefaults()
	if err := cliConfig.validate(); err != nil {
		return err
	}

	logger, err := newLogger(cliConfig.Defaults.LogLevel)
	if err != nil {
		return err
	}

	reportsDir, err := resolveReportsDir(cliConfig.Defaults.OutputDir)
	if err != nil {
		return err
	}

	storeAppContext(cmd, &AppContext{
		Logger:     logger,
		Config:     cliConfig,
		ReportsDir: reportsDir,
	})
	logger.Debugw("configuration loaded",
		"config_file", viper.ConfigFileUsed(),
		"reports_dir", reportsDir,
	)
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", colorError("✗"), err)
		os.Exit(exitCode(err))
	}
}

// loadEnvFile exports variables from --env-file, or from .env in the working
// directory when present. Variables already in the environment win.
func loadEnvFile() error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
		return nil
	}
	_ = godotenv.Load(".env")
	return nil
}

func initConfig() error {
	if err := loadEnvFile(); err != nil {
		return err
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".seca-host")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("SECA_HOST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// newLogger builds the production JSON logger at the given level; debug
// switches to the development encoder.
func newLogger(level string) (*zap.SugaredLogger, error) {
	if strings.EqualFold(level, "debug") {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		return l.Sugar(), nil
	}

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return l.Sugar(), nil
}

func init() {
	rootCmd.PersistentPreRunE = rootPersistentPreRunE

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.seca-host.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "file of SECA_HOST_* variables to load (default .env when present)")
	rootCmd.PersistentFlags().StringVar(&cliConfig.Defaults.LogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(checksCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)
}
