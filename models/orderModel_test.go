package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidFulfillmentTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{FulfillmentPending, FulfillmentConfirmed},
		{FulfillmentPending, FulfillmentCancelled},
		{FulfillmentConfirmed, FulfillmentPreparing},
		{FulfillmentConfirmed, FulfillmentCancelled},
		{FulfillmentPreparing, FulfillmentShipped},
		{FulfillmentPreparing, FulfillmentCancelled},
		{FulfillmentShipped, FulfillmentDelivered},
	}
	for _, tr := range allowed {
		assert.True(t, ValidFulfillmentTransition(tr.from, tr.to), "%s -> %s should be allowed", tr.from, tr.to)
	}

	denied := []struct{ from, to string }{
		{FulfillmentPending, FulfillmentShipped},
		{FulfillmentPending, FulfillmentDelivered},
		{FulfillmentConfirmed, FulfillmentPending},
		{FulfillmentShipped, FulfillmentCancelled},
		{FulfillmentShipped, FulfillmentPreparing},
		{FulfillmentDelivered, FulfillmentCancelled},
		{FulfillmentCancelled, FulfillmentConfirmed},
		{FulfillmentDelivered, FulfillmentDelivered},
		{"unknown", FulfillmentConfirmed},
	}
	for _, tr := range denied {
		assert.False(t, ValidFulfillmentTransition(tr.from, tr.to), "%s -> %s should be denied", tr.from, tr.to)
	}
}
