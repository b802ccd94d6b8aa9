package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/go-portfolio-api/pkg/mailer/templates"
)

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// ErrBadJob marks a message that can never be delivered and must not be retried.
var ErrBadJob = errors.New("bad email job")

// Worker turns queued jobs into sent mail.
type Worker struct {
	Sender  Sender
	AppName string
	Timeout time.Duration
}

// Handle processes one queue message body.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	if job.To == "" {
		return fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		data := map[string]any{"app_name": w.AppName}
		for k, v := range job.Data {
			data[k] = v
		}
		s, t, h, err := templates.Render(job.Template, data)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadJob, err)
		}
		subject, text, html = s, t, h
	}
	timeout := w.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return w.Sender.Send(c, job.To, subject, text, html)
}
