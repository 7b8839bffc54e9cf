// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pagefresh/internal/adapters/catalog"
	_ "go.trai.ch/pagefresh/internal/adapters/config"
	_ "go.trai.ch/pagefresh/internal/adapters/logger"
	_ "go.trai.ch/pagefresh/internal/adapters/provider"
	_ "go.trai.ch/pagefresh/internal/adapters/store"
	_ "go.trai.ch/pagefresh/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/pagefresh/internal/app"
)
