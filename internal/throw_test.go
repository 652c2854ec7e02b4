package internal

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlePanicRecover(t *testing.T) {
	testFn := func(shouldThrow, shouldBreakTopology, shouldPanic bool) (err error) {
		defer func() {
			recoveredErr := HandlePanicRecover(recover())
			if recoveredErr != nil {
				err = recoveredErr
			}
		}()

		if shouldThrow {
			fatalf("kaboom %d!", 1)
		}

		if shouldBreakTopology {
			topologyf("lost the plot")
		}

		if shouldPanic {
			panic("true panic")
		}

		return nil
	}

	t.Run("with throw", func(t *testing.T) {
		err := testFn(true, false, false)
		assert.EqualError(t, err, "kaboom 1!")
		assert.True(t, IsConfigurationError(err))
		assert.False(t, IsTopologyError(err))
	})

	t.Run("with topology error", func(t *testing.T) {
		err := testFn(false, true, false)
		assert.EqualError(t, err, "lost the plot")
		assert.True(t, IsTopologyError(err))
		assert.False(t, IsConfigurationError(err))
	})

	t.Run("with real panic", func(t *testing.T) {
		assert.Panics(t, func() {
			testFn(false, false, true)
		})
	})

	t.Run("no error", func(t *testing.T) {
		err := testFn(false, false, false)
		assert.NoError(t, err)
	})
}

func TestMeshError_Wrapped(t *testing.T) {
	err := func() (err error) {
		defer func() { err = HandlePanicRecover(recover()) }()
		fatalf("bad input")
		return nil
	}()
	require.Error(t, err)

	wrapped := errors.Wrap(err, "meshing")
	assert.True(t, IsConfigurationError(wrapped))
	assert.Contains(t, fmt.Sprintf("%+v", err), "configuration error: bad input")

	assert.False(t, IsConfigurationError(errors.New("unrelated")))
	assert.False(t, IsTopologyError(nil))
}
