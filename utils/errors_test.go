package utils_test

import (
	"errors"
	"testing"

	"github.com/NethermindEth/abify/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAndWrapOnError(t *testing.T) {
	errFirst := errors.New("first")
	errCleanup := errors.New("cleanup")

	t.Run("nil error does not run fn", func(t *testing.T) {
		ran := false
		require.NoError(t, utils.RunAndWrapOnError(func() error {
			ran = true
			return nil
		}, nil))
		assert.False(t, ran)
	})

	t.Run("successful cleanup keeps the error", func(t *testing.T) {
		err := utils.RunAndWrapOnError(func() error { return nil }, errFirst)
		assert.Equal(t, errFirst, err)
	})

	t.Run("failed cleanup is joined", func(t *testing.T) {
		err := utils.RunAndWrapOnError(func() error { return errCleanup }, errFirst)
		assert.ErrorIs(t, err, errFirst)
		assert.ErrorIs(t, err, errCleanup)
	})
}
