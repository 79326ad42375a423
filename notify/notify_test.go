package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSendGridNotifierRequiresConfig(t *testing.T) {
	err := NewSendGridNotifier("", "from@example.com", "to@example.com", zap.NewNop()).Notify(context.Background(), "s", "b")
	assert.Error(t, err)

	err = NewSendGridNotifier("key", "", "to@example.com", zap.NewNop()).Notify(context.Background(), "s", "b")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Notify(context.Background(), "s", "b"))
}
