package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cajapyme/libro-caja/internal/logging"
)

func TestNewBaseParser(t *testing.T) {
	t.Run("with logger", func(t *testing.T) {
		mock := logging.NewMockLogger()
		base := NewBaseParser(mock)

		assert.Equal(t, mock, base.GetLogger())
	})

	t.Run("nil logger uses default", func(t *testing.T) {
		base := NewBaseParser(nil)

		assert.NotNil(t, base.GetLogger())
	})
}

func TestBaseParserSetLogger(t *testing.T) {
	first := logging.NewMockLogger()
	second := logging.NewMockLogger()

	base := NewBaseParser(first)
	base.SetLogger(second)
	assert.Equal(t, second, base.GetLogger())

	base.SetLogger(nil)
	assert.Equal(t, second, base.GetLogger(), "nil logger should be ignored")
}
