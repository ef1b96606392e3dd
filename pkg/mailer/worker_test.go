package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/go-fitness-tracker/pkg/mailer/templates"
)

type sent struct {
	to, subject, text, html string
}

type fakeSender struct {
	err  error
	sent []sent
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{to, subject, text, html})
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestWorkerRendersTemplate(t *testing.T) {
	s := &fakeSender{}
	w := &Worker{Sender: s, Logger: quietLogger()}

	job := EmailJob{
		To:       "a@x.com",
		Template: mailtpl.Welcome,
		Data:     mailtpl.WelcomeData{AppName: "Lift Log"}.ToMap(),
	}
	assert.Equal(t, Ack, w.Handle(context.Background(), mustJSON(t, job)))

	require.Len(t, s.sent, 1)
	assert.Equal(t, "a@x.com", s.sent[0].to)
	assert.Equal(t, "Welcome to Lift Log", s.sent[0].subject)
	assert.NotEmpty(t, s.sent[0].html)
}

func TestWorkerPlainMessage(t *testing.T) {
	s := &fakeSender{}
	w := &Worker{Sender: s, Logger: quietLogger()}

	job := EmailJob{To: "a@x.com", Subject: "hi", Text: "body"}
	assert.Equal(t, Ack, w.Handle(context.Background(), mustJSON(t, job)))
	assert.Equal(t, sent{"a@x.com", "hi", "body", ""}, s.sent[0])
}

func TestWorkerDropsBadMessages(t *testing.T) {
	w := &Worker{Sender: &fakeSender{}, Logger: quietLogger()}

	assert.Equal(t, Drop, w.Handle(context.Background(), []byte("{not json")))
	assert.Equal(t, Drop, w.Handle(context.Background(), mustJSON(t, EmailJob{Subject: "no recipient"})))
	assert.Equal(t, Drop, w.Handle(context.Background(), mustJSON(t, EmailJob{To: "a@x.com", Template: "missing"})))
}

func TestWorkerRequeuesOnSendFailure(t *testing.T) {
	w := &Worker{Sender: &fakeSender{err: errors.New("mailgun down")}, Logger: quietLogger()}

	job := EmailJob{To: "a@x.com", Subject: "hi", Text: "body"}
	assert.Equal(t, Requeue, w.Handle(context.Background(), mustJSON(t, job)))
}
