//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package injector

import (
	"github.com/zeusync/inspect/internal/core/inspector"
)

// InitializeApp is the expansion of the provider set in injector.go, kept in
// wire's output form. Running go generate in this package replaces it with
// wire's own output.
func InitializeApp(cfg inspector.Config) (*App, error) {
	logLog := ProvideLogger(cfg)
	inspectorInspector, err := ProvideInspector(cfg, logLog)
	if err != nil {
		return nil, err
	}
	stack := ProvideHistory(logLog)
	app := NewApp(logLog, inspectorInspector, stack)
	return app, nil
}
