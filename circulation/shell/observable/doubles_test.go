package observable_test

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

type testCommand struct {
	BookID string
}

func (testCommand) CommandType() string { return "TestCommand" }

type commandHandlerStub struct {
	result shell.HandlerResult
	err    error

	mu    sync.Mutex
	calls []testCommand
}

func newCommandHandlerStub(result shell.HandlerResult, err error) *commandHandlerStub {
	return &commandHandlerStub{result: result, err: err}
}

func (h *commandHandlerStub) Handle(_ context.Context, command testCommand) (shell.HandlerResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.calls = append(h.calls, command)

	return h.result, h.err
}

func (h *commandHandlerStub) callCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.calls)
}

type testQuery struct{}

func (testQuery) QueryType() string { return "TestQuery" }

type queryHandlerStub struct {
	result []string
	err    error
}

func (h queryHandlerStub) Handle(_ context.Context, _ testQuery) ([]string, error) {
	return h.result, h.err
}
