package core

import (
	"context"
	"runtime"
)

// LocalTransport implements Transport for the local machine
type LocalTransport struct{}

func NewLocalTransport() *LocalTransport {
	return &LocalTransport{}
}

func (t *LocalTransport) Close() error {
	return nil
}

func (t *LocalTransport) Execute(ctx context.Context, cmd string) (string, error) {
	// For local execution, we use the global CommandRunner.
	// We wrap the command string in a shell to ensure compatibility with remote execution.
	return RunCommand("sh", "-c", cmd)
}

func (t *LocalTransport) GetOS(ctx context.Context) (string, error) {
	return runtime.GOOS, nil
}
