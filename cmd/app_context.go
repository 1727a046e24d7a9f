package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// AppContext carries what every command needs after the root pre-run
type AppContext struct {
	Logger     *zap.SugaredLogger
	Config     *CLIConfig
	ReportsDir string
}

type appContextKey struct{}

var globalAppContext *AppContext

func storeAppContext(cmd *cobra.Command, appCtx *AppContext) {
	globalAppContext = appCtx
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, appContextKey{}, appCtx))
}

// getAppContext falls back to the last stored context, then to defaults,
// so commands invoked directly from tests still work.
func getAppContext(cmd *cobra.Command) *AppContext {
	if cmd != nil {
		if ctx := cmd.Context(); ctx != nil {
			if appCtx, ok := ctx.Value(appContextKey{}).(*AppContext); ok && appCtx != nil {
				return appCtx
			}
		}
	}
	if globalAppContext != nil {
		return globalAppContext
	}
	return &AppContext{
		Logger:     zap.NewNop().Sugar(),
		Config:     cliConfig,
		ReportsDir: cliConfig.Defaults.OutputDir,
	}
}
