package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"imagesvc/internal/domain"
	"imagesvc/internal/service"
)

// MockImageService is a mock implementation of service.ImageService.
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) UploadSingle(ctx context.Context, input service.ImageUploadInput) (*domain.StoredImage, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredImage), args.Error(1)
}

func (m *MockImageService) UploadMultiple(ctx context.Context, input service.ImageUploadInput) ([]domain.StoredImage, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoredImage), args.Error(1)
}

func (m *MockImageService) Delete(ctx context.Context, category, filename string) error {
	args := m.Called(ctx, category, filename)
	return args.Error(0)
}

func (m *MockImageService) Provision(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
