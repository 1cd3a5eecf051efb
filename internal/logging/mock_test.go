package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockLogger_CapturesEntries(t *testing.T) {
	mock := NewMockLogger()

	mock.Info("first", Field{Key: FieldFile, Value: "a.csv"})
	mock.Warn("second")
	mock.Error("third")

	assert.Len(t, mock.GetEntries(), 3)
	assert.True(t, mock.HasEntry("INFO", "first"))
	assert.True(t, mock.HasEntry("WARN", "second"))
	assert.True(t, mock.HasEntry("ERROR", "third"))
	assert.False(t, mock.HasEntry("ERROR", "first"))
}

func TestMockLogger_ChildEntriesVisibleOnParent(t *testing.T) {
	mock := NewMockLogger()
	err := errors.New("boom")

	mock.WithField(FieldFile, "compras.csv").WithError(err).Warn("file skipped")

	entries := mock.GetEntriesByLevel("WARN")
	assert.Len(t, entries, 1)
	assert.Equal(t, "file skipped", entries[0].Message)
	assert.Equal(t, err, entries[0].Error)
	assert.Equal(t, FieldFile, entries[0].Fields[0].Key)
}

func TestMockLogger_ContainsMessage(t *testing.T) {
	mock := NewMockLogger()
	mock.Warn("fila 7 omitida: fecha inválida")

	assert.True(t, mock.ContainsMessage("WARN", "fila 7"))
	assert.False(t, mock.ContainsMessage("INFO", "fila 7"))
}

func TestMockLogger_Clear(t *testing.T) {
	mock := NewMockLogger()
	mock.Info("something")
	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}
