package injector

import (
	"github.com/zeusync/inspect/internal/core/history"
	"github.com/zeusync/inspect/internal/core/inspector"
	"github.com/zeusync/inspect/internal/core/observability/log"
	"github.com/zeusync/inspect/internal/core/serialization"
)

// DefaultHistoryLimit bounds the undo stack built by ProvideHistory.
const DefaultHistoryLimit = 256

// App bundles the long-lived services of the inspect tool.
type App struct {
	Log       log.Log
	Inspector *inspector.Inspector
	History   *history.Stack
}

func NewApp(logger log.Log, insp *inspector.Inspector, stack *history.Stack) *App {
	return &App{
		Log:       logger,
		Inspector: insp,
		History:   stack,
	}
}

// ProvideLogger builds the process logger at the configured level and makes it
// the default for the serialization package.
func ProvideLogger(cfg inspector.Config) log.Log {
	l := log.New(log.ParseLevel(cfg.LogLevel))
	log.SetDefault(l)
	serialization.SetLogger(l)
	return l
}

func ProvideInspector(cfg inspector.Config, logger log.Log) (*inspector.Inspector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return inspector.New(cfg, logger), nil
}

func ProvideHistory(logger log.Log) *history.Stack {
	return history.NewStack(DefaultHistoryLimit, logger)
}
