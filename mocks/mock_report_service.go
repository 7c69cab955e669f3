package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"clausevet/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GetReport(ctx context.Context, id uuid.UUID) (*service.ReportPayload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportPayload), args.Error(1)
}

func (m *MockReportService) ExportCSV(ctx context.Context, id uuid.UUID, w io.Writer) error {
	args := m.Called(ctx, id, w)
	return args.Error(0)
}

func (m *MockReportService) ExportXLSX(ctx context.Context, id uuid.UUID, w io.Writer) error {
	args := m.Called(ctx, id, w)
	return args.Error(0)
}
