package requestid

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "  abc-123 ")
	assert.Equal(t, "abc-123", FromContext(ctx))
	assert.Empty(t, FromContext(context.Background()))
}

func TestNew(t *testing.T) {
	id := New()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, New())
}
