// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/assets/internal/adapters/cas"
	_ "go.trai.ch/assets/internal/adapters/config"
	_ "go.trai.ch/assets/internal/adapters/fs"
	_ "go.trai.ch/assets/internal/adapters/logger"
	_ "go.trai.ch/assets/internal/adapters/shell"
	_ "go.trai.ch/assets/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/assets/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/assets/internal/app"
)
