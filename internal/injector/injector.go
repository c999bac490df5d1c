//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/inspect/internal/core/inspector"
)

func InitializeApp(cfg inspector.Config) (*App, error) {
	wire.Build(ProvideLogger, ProvideInspector, ProvideHistory, NewApp)
	return nil, nil
}
