package domain_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"imagesvc/internal/domain"
)

func TestIsValidation(t *testing.T) {
	assert.True(t, domain.IsValidation(domain.ErrNoImage))
	assert.True(t, domain.IsValidation(domain.ErrTooManyFiles))
	assert.True(t, domain.IsValidation(fmt.Errorf("saving x: %w", domain.ErrFileTooLarge)))
	assert.True(t, domain.IsValidation(fmt.Errorf("%w: unexpected EOF", domain.ErrMalformedUpload)))

	assert.False(t, domain.IsValidation(nil))
	assert.False(t, domain.IsValidation(domain.ErrImageNotFound))
	assert.False(t, domain.IsValidation(domain.ErrStorageUnavailable))
	assert.False(t, domain.IsValidation(context.Canceled))
	assert.False(t, domain.IsValidation(errors.New("disk full")))
}
