package translate

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTranslator is a mock implementation of Translator using testify/mock.
type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	args := m.Called(ctx, text, source, target)
	return args.String(0), args.Error(1)
}

// MockSegmentTranslator is a mock implementation of SegmentTranslator using testify/mock.
type MockSegmentTranslator struct {
	mock.Mock
}

func (m *MockSegmentTranslator) TranslateSegment(ctx context.Context, segment, source, target string) (string, error) {
	args := m.Called(ctx, segment, source, target)
	return args.String(0), args.Error(1)
}
