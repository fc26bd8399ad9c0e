//go:build wireinject
// +build wireinject

package main

import (
	"gapscan/internal/app"
	"gapscan/internal/provider"
	"gapscan/internal/saver"

	"github.com/google/wire"
)

// App holds application dependencies built by Wire.
type App struct {
	Config *app.Config
	DP     provider.DataProvider
	Saver  saver.OverlaySaver // nil when EXPORT_FORMAT=none
}

// InitializeApp builds App (Config + DataProvider + export saver) via Wire.
// Caller must call a.DP.Close() when done.
func InitializeApp() (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideBarLoader,
		app.ProvideFileProvider,
		app.ProvideOverlaySaver,
		wire.Bind(new(provider.DataProvider), new(*provider.FileProvider)),
		wire.Struct(new(App), "Config", "DP", "Saver"),
	)
	return nil, nil
}
