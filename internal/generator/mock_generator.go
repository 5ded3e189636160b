package generator

import (
	"context"
	"errors"
)

// MockGenerator is a mock implementation for testing
type MockGenerator struct {
	GenerateFunc func(ctx context.Context, req Request) (*Result, error)
}

// Ensure MockGenerator implements IGenerator
var _ IGenerator = (*MockGenerator)(nil)

// NewMockGenerator creates a new mock generator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return nil, errors.New("GenerateFunc not implemented")
}
