package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	mailtpl "github.com/oksasatya/go-fitness-tracker/pkg/mailer/templates"
)

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Outcome tells the consumer loop what to do with a delivery.
type Outcome int

const (
	Ack Outcome = iota
	Drop
	Requeue
)

var errNoRecipient = errors.New("email job has no recipient")

// Worker turns queued EmailJobs into outgoing mail.
type Worker struct {
	Sender      Sender
	Logger      *logrus.Logger
	SendTimeout time.Duration
}

// Handle processes a raw queue message. Undecodable or unrenderable jobs are
// dropped; delivery failures are requeued.
func (w *Worker) Handle(ctx context.Context, body []byte) Outcome {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Warn("email job: bad message")
		return Drop
	}

	subject, text, html, err := render(&job)
	if err != nil {
		w.Logger.WithError(err).WithField("template", job.Template).Warn("email job: render failed")
		return Drop
	}

	timeout := w.SendTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		w.Logger.WithError(err).WithField("to", job.To).Error("email job: send failed")
		return Requeue
	}
	w.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return Ack
}

func render(job *EmailJob) (subject, text, html string, err error) {
	if strings.TrimSpace(job.To) == "" {
		return "", "", "", errNoRecipient
	}
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	data := job.Data
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Email"]; !ok {
		data["Email"] = job.To
	}
	subject, text, html, err = mailtpl.Render(job.Template, data)
	if err != nil {
		return "", "", "", err
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return subject, text, html, nil
}
