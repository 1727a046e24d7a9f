package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// configDebounce coalesces the burst of events editors produce on save
var configDebounce = 500 * time.Millisecond

// configMu guards cliConfig while watch mode reloads it
var configMu sync.RWMutex

// snapshotConfig returns a copy of the live configuration
func snapshotConfig() CLIConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return *cliConfig
}

// reloadConfig re-reads the config file. The previous settings are kept
// when the new file is unreadable or invalid.
func reloadConfig() error {
	configMu.Lock()
	defer configMu.Unlock()

	previous := *cliConfig
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	applyConfigDefaults()
	if err := cliConfig.validate(); err != nil {
		*cliConfig = previous
		return err
	}
	return nil
}

// watchConfigFile calls onChange after path is written or recreated, until
// ctx ends. The parent directory is watched so replace-on-save editors are
// seen too.
func watchConfigFile(ctx context.Context, path string, logger *zap.SugaredLogger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(configDebounce, onChange)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("config watch error", "error", err)
		}
	}
}
