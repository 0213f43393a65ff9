package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/idea-management-api/internal/config"
	"github.com/wso2/idea-management-api/internal/models"
)

type fakeConn struct {
	subject  string
	data     []byte
	flushErr error
	drained  bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject = subject
	f.data = data
	return nil
}

func (f *fakeConn) FlushTimeout(time.Duration) error { return f.flushErr }

func (f *fakeConn) Drain() error {
	f.drained = true
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestNATSPublisher_Publish(t *testing.T) {
	fc := &fakeConn{}
	p := newNATSPublisher(fc, "ideas", time.Second, quietLogger())

	err := p.Publish(context.Background(), IdeaEvent{
		Kind:           KindStatusChanged,
		IdeaID:         "IDEA-ABCDEFGHJK",
		Status:         models.IdeaStatusApproved,
		PreviousStatus: models.IdeaStatusUnderReview,
		Actor:          "admin",
		OccurredAt:     42,
	})
	require.NoError(t, err)
	assert.Equal(t, "ideas.status_changed", fc.subject)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(fc.data, &payload))
	assert.Equal(t, "IDEA-ABCDEFGHJK", payload["ideaId"])
	assert.Equal(t, "Approved", payload["status"])
	assert.Equal(t, "Under Review", payload["previousStatus"])
	assert.NotContains(t, payload, "Kind")

	require.NoError(t, p.Close())
	assert.True(t, fc.drained)
}

func TestNATSPublisher_FlushFailure(t *testing.T) {
	fc := &fakeConn{flushErr: errors.New("timeout")}
	p := newNATSPublisher(fc, "ideas", time.Second, quietLogger())

	err := p.Publish(context.Background(), IdeaEvent{Kind: KindSubmitted, IdeaID: "X"})
	assert.ErrorContains(t, err, "ideas.submitted")
}

func TestNewPublisher_DisabledIsNoop(t *testing.T) {
	p, err := NewPublisher(&config.EventsConfig{Enabled: false}, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), IdeaEvent{}))
	assert.NoError(t, p.Close())
}
