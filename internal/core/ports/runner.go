package ports

import (
	"context"

	"go.trai.ch/partout/internal/core/domain"
)

// CommandRunner launches external programs.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd with an empty stdin and waits for it to exit.
	//
	// The standard output is returned when cmd.Capture is set and discarded otherwise.
	// A program that cannot be started or that exits with a non-zero status yields a
	// *domain.ProcessError carrying the failure payload.
	Run(ctx context.Context, cmd domain.Command) ([]byte, error)
}
