package statemachine_test

import (
	"testing"

	"food-marketplace-api/models"
	"food-marketplace-api/statemachine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHappyPathTransitions(t *testing.T) {
	steps := []struct {
		from models.OrderStatus
		to   models.OrderStatus
	}{
		{models.StatusCreated, models.StatusConfirmed},
		{models.StatusConfirmed, models.StatusPreparing},
		{models.StatusPreparing, models.StatusOutForDelivery},
		{models.StatusOutForDelivery, models.StatusDelivered},
	}
	for _, s := range steps {
		assert.NoError(t, statemachine.CanTransition(s.from, s.to, "restaurant_owner"),
			"%s -> %s should be allowed for the owner", s.from, s.to)
	}
}

func TestCancellationOnlyFromEarlyStates(t *testing.T) {
	for _, actor := range []string{"customer", "restaurant_owner"} {
		assert.NoError(t, statemachine.CanTransition(models.StatusCreated, models.StatusCancelled, actor))
		assert.NoError(t, statemachine.CanTransition(models.StatusConfirmed, models.StatusCancelled, actor))

		assert.Error(t, statemachine.CanTransition(models.StatusPreparing, models.StatusCancelled, actor))
		assert.Error(t, statemachine.CanTransition(models.StatusOutForDelivery, models.StatusCancelled, actor))
		assert.Error(t, statemachine.CanTransition(models.StatusDelivered, models.StatusCancelled, actor))
	}
}

func TestSkippingStatesRejected(t *testing.T) {
	err := statemachine.CanTransition(models.StatusCreated, models.StatusDelivered, "restaurant_owner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transition")
	assert.Contains(t, err.Error(), string(models.StatusConfirmed), "error should list valid next states")
}

func TestActorAuthorization(t *testing.T) {
	// Only the owner confirms; a customer may not.
	assert.Error(t, statemachine.CanTransition(models.StatusCreated, models.StatusConfirmed, "customer"))
	// Unknown actors never pass.
	assert.Error(t, statemachine.CanTransition(models.StatusCreated, models.StatusConfirmed, "driver"))
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := statemachine.ValidTransitionsFrom(models.StatusCreated)
	assert.ElementsMatch(t, []models.OrderStatus{models.StatusConfirmed, models.StatusCancelled}, nexts)

	assert.Empty(t, statemachine.ValidTransitionsFrom(models.StatusDelivered))
	assert.Empty(t, statemachine.ValidTransitionsFrom(models.StatusCancelled))
}
