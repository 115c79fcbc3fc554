package faults

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFault_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk on fire")
	fault := NewTransient("TAIL_1000", cause)

	assert.Equal(t, "TAIL_1000: disk on fire", fault.Error())
	assert.True(t, errors.Is(fault, cause))
}

func TestAs_ExtractsThroughWrapping(t *testing.T) {
	t.Parallel()

	fault := NewFatal("TAIL_9000", errors.New("no such file"))
	wrapped := fmt.Errorf("starting tailer: %w", fault)

	extracted, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "TAIL_9000", extracted.Code)
	assert.True(t, extracted.IsFatal())
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DEC_1000", CodeOf(NewLine("DEC_1000", errors.New("bad json"))))
	assert.Equal(t, codeUndefined, CodeOf(errors.New("anonymous")))
}
