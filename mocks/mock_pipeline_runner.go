package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clausevet/internal/pipeline"
)

// MockPipelineRunner is a mock implementation of service.PipelineRunner.
type MockPipelineRunner struct {
	mock.Mock
}

func (m *MockPipelineRunner) Run(ctx context.Context, document []byte, filename string) (*pipeline.State, error) {
	args := m.Called(ctx, document, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.State), args.Error(1)
}
