package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Mail
	err  error
}

func (s *recordingSender) Send(mail Mail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, mail)
	return s.err
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestMailWorkerDeliversQueuedMail(t *testing.T) {
	sender := &recordingSender{}
	w := NewMailWorker(sender, 4, zap.NewNop())
	w.Start(context.Background())

	require.True(t, w.Enqueue(Mail{To: "a@example.com", Subject: "one"}))
	require.True(t, w.Enqueue(Mail{To: "b@example.com", Subject: "two"}))
	w.Stop()

	require.Equal(t, 2, sender.count())
	assert.Equal(t, "one", sender.sent[0].Subject)
	assert.Equal(t, "two", sender.sent[1].Subject)
}

func TestMailWorkerDropsWhenFull(t *testing.T) {
	w := NewMailWorker(&recordingSender{}, 1, zap.NewNop())

	assert.True(t, w.Enqueue(Mail{To: "a@example.com"}))
	assert.False(t, w.Enqueue(Mail{To: "b@example.com"}))
}

func TestMailWorkerSurvivesSendErrors(t *testing.T) {
	sender := &recordingSender{err: errors.New("relay down")}
	w := NewMailWorker(sender, 2, zap.NewNop())
	w.Start(context.Background())

	w.Enqueue(Mail{To: "a@example.com"})
	w.Enqueue(Mail{To: "b@example.com"})
	w.Stop()

	assert.Equal(t, 2, sender.count())
}
