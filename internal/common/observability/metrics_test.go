package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{ warnings int }

func (l *nopLogger) Warn(msg string, fields map[string]interface{}) { l.warnings++ }

func TestObservability_RecordAndShutdown(t *testing.T) {
	obs := New("kushi-chatbot-test", &nopLogger{})
	defer obs.Shutdown()

	ctx, span := obs.StartSpan(context.Background(), "chat.answer")
	obs.RecordReply(ctx, "greeting")
	obs.RecordReplyDuration(ctx, 250*time.Microsecond, "greeting")
	span.End()

	assert.NotNil(t, obs.tracer)
}

func TestObservability_Noop(t *testing.T) {
	obs := NewNoop()

	ctx, span := obs.StartSpan(context.Background(), "chat.answer")
	defer span.End()

	assert.NotPanics(t, func() {
		obs.RecordReply(ctx, "fallback")
		obs.RecordReplyDuration(ctx, time.Millisecond, "fallback")
		obs.Shutdown()
	})
}
