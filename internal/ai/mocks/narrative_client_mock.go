package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mock NarrativeClient
type NarrativeClient struct {
	mock.Mock
}

func (m *NarrativeClient) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
