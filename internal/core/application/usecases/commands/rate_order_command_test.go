package commands_test

import (
	"testing"

	"foodtruck/internal/core/application/usecases/commands"
	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateOrderCommand(t *testing.T) {
	id := kernel.NewULID()

	cmd, err := commands.NewRateOrderCommand(id, 4, "tasty")
	require.NoError(t, err)
	assert.Equal(t, 4, cmd.Rating().Value())
	assert.Equal(t, "tasty", cmd.Rating().Comment())

	for _, value := range []int{0, 6} {
		_, err = commands.NewRateOrderCommand(id, value, "")
		assert.ErrorIs(t, err, order.ErrRatingOutOfRange)
	}
}
