package transport

import (
	"context"
	"fmt"
)

type mockReply struct {
	out string
	err error
}

// MockTransport is an in-memory Transport for tests. Replies are queued
// per command and consumed FIFO, so a command issued twice can answer
// differently each time.
type MockTransport struct {
	replies  map[string][]mockReply
	Commands []string // every command executed, in order
}

func NewMockTransport() *MockTransport {
	return &MockTransport{replies: make(map[string][]mockReply)}
}

// AddResponse queues a successful reply for cmd.
func (t *MockTransport) AddResponse(cmd, out string) {
	t.replies[cmd] = append(t.replies[cmd], mockReply{out: out})
}

// AddError queues a failing reply for cmd.
func (t *MockTransport) AddError(cmd string, err error) {
	t.replies[cmd] = append(t.replies[cmd], mockReply{err: err})
}

func (t *MockTransport) Execute(ctx context.Context, cmd string) (string, error) {
	t.Commands = append(t.Commands, cmd)

	queue := t.replies[cmd]
	if len(queue) == 0 {
		return "", fmt.Errorf("mock transport: unexpected command: %s", cmd)
	}
	reply := queue[0]
	t.replies[cmd] = queue[1:]
	return reply.out, reply.err
}

func (t *MockTransport) Close() error { return nil }

func (t *MockTransport) GetOS(ctx context.Context) (string, error) {
	return "linux", nil
}
