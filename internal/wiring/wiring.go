// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/partout/internal/adapters/clipboard"
	_ "go.trai.ch/partout/internal/adapters/config"
	_ "go.trai.ch/partout/internal/adapters/logger"
	_ "go.trai.ch/partout/internal/adapters/otp"
	_ "go.trai.ch/partout/internal/adapters/shell"
	_ "go.trai.ch/partout/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/partout/internal/app"
)
