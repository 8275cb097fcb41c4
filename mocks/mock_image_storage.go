package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"imagesvc/internal/domain"
	"imagesvc/internal/port"
)

// MockImageStorage is a mock implementation of port.ImageStorage.
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) Save(ctx context.Context, input port.SaveInput) (*port.SaveOutput, error) {
	// Drain the body like a real store would, so streaming readers run to completion.
	if input.Body != nil {
		_, _ = io.Copy(io.Discard, input.Body)
	}
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.SaveOutput), args.Error(1)
}

func (m *MockImageStorage) Delete(ctx context.Context, category domain.Category, filename string) error {
	args := m.Called(ctx, category, filename)
	return args.Error(0)
}

func (m *MockImageStorage) EnsureCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockImageStorage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
