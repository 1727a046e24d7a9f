package cmd

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func TestStoreAndGetAppContext(t *testing.T) {
	t.Cleanup(func() { globalAppContext = nil })

	c := &cobra.Command{Use: "probe"}
	c.SetContext(context.Background())
	appCtx := &AppContext{Logger: zap.NewNop().Sugar(), Config: newCLIConfig(), ReportsDir: "/tmp/reports"}

	storeAppContext(c, appCtx)
	if got := getAppContext(c); got != appCtx {
		t.Fatal("expected stored context from the command")
	}

	other := &cobra.Command{Use: "other"}
	if got := getAppContext(other); got != appCtx {
		t.Fatal("expected fallback to the last stored context")
	}
}

func TestGetAppContextDefaults(t *testing.T) {
	globalAppContext = nil
	t.Cleanup(func() { globalAppContext = nil })

	appCtx := getAppContext(nil)
	if appCtx.Logger == nil || appCtx.Config != cliConfig {
		t.Fatalf("expected default context, got %+v", appCtx)
	}
}
