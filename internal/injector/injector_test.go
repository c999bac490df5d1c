package injector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/inspect/internal/core/inspector"
	"github.com/zeusync/inspect/internal/core/observability/log"
)

func TestInitializeApp(t *testing.T) {
	cfg := inspector.DefaultConfig()
	cfg.LogLevel = "error"

	app, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app.Inspector)
	require.NotNil(t, app.History)
	require.Equal(t, log.LevelError, app.Log.GetLevel())
	require.Equal(t, cfg, app.Inspector.Config())
	require.Same(t, log.Provide(), app.Log)
	t.Cleanup(func() { log.SetDefault(nil) })

	cfg.MaxDepth = -1
	_, err = InitializeApp(cfg)
	require.Error(t, err)
}
