package translate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// upper is a SegmentTranslator that upper-cases and tags each segment.
type upper struct{}

func (upper) TranslateSegment(_ context.Context, segment, _, target string) (string, error) {
	return "[" + target + "] " + strings.ToUpper(segment), nil
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"three bullets", "- a\n- b\n- c", []string{"- a", "- b", "- c"}},
		{"blank lines dropped", "\n- a\n\n   \n- b\n", []string{"- a", "- b"}},
		{"crlf trimmed", "- a\r\n- b\r\n", []string{"- a", "- b"}},
		{"blank", "  \n \n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segments(tt.in))
		})
	}
}

func TestSegmentedPreservesBulletStructure(t *testing.T) {
	tr := NewSegmented(upper{}, 3)
	out, err := tr.Translate(context.Background(), "- first\n- second\n- third", "en", "bn")
	require.NoError(t, err)

	parts := strings.Split(out, SegmentSeparator)
	require.Len(t, parts, 3)
	assert.Equal(t, "[bn] - FIRST", parts[0])
	assert.Equal(t, "[bn] - SECOND", parts[1])
	assert.Equal(t, "[bn] - THIRD", parts[2])
	for _, p := range parts {
		assert.NotEmpty(t, p)
	}
}

func TestSegmentedEmptyInput(t *testing.T) {
	seg := new(MockSegmentTranslator)
	tr := NewSegmented(seg, 1)

	for _, in := range []string{"", "   ", "\n\n"} {
		_, err := tr.Translate(context.Background(), in, "en", "bn")
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
	seg.AssertNotCalled(t, "TranslateSegment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSegmentedSameLanguageSkipsCalls(t *testing.T) {
	seg := new(MockSegmentTranslator)
	tr := NewSegmented(seg, 1)

	out, err := tr.Translate(context.Background(), "- a\n\n- b", "en", "en")
	require.NoError(t, err)
	assert.Equal(t, "- a\n\n- b", out)
	seg.AssertNotCalled(t, "TranslateSegment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSegmentedAnyFailureFailsWholeCall(t *testing.T) {
	seg := new(MockSegmentTranslator)
	seg.On("TranslateSegment", mock.Anything, "- a", "en", "bn").Return("- ক", nil).Maybe()
	seg.On("TranslateSegment", mock.Anything, "- b", "en", "bn").Return("", errors.New("quota exceeded"))
	seg.On("TranslateSegment", mock.Anything, "- c", "en", "bn").Return("- গ", nil).Maybe()

	tr := NewSegmented(seg, 1)
	out, err := tr.Translate(context.Background(), "- a\n- b\n- c", "en", "bn")
	assert.ErrorIs(t, err, ErrTranslation)
	assert.Empty(t, out)
}

func TestSegmentedEmptySegmentResultFails(t *testing.T) {
	seg := new(MockSegmentTranslator)
	seg.On("TranslateSegment", mock.Anything, "- a", "en", "bn").Return("  ", nil)

	_, err := NewSegmented(seg, 1).Translate(context.Background(), "- a", "en", "bn")
	assert.ErrorIs(t, err, ErrTranslation)
}
