package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeSender struct {
	to, subject, text, html string
	err                     error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.to, f.subject, f.text, f.html = to, subject, text, html
	return f.err
}

func TestWorkerRendersLoginNotification(t *testing.T) {
	s := &fakeSender{}
	w := &Worker{Sender: s, AppName: "Folio"}
	body := `{"to":"admin@example.com","template":"login_notification","data":{"email":"a@b.c","ip":"1.2.3.4","time":"now"}}`
	if err := w.Handle(context.Background(), []byte(body)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if s.to != "admin@example.com" {
		t.Fatalf("to = %q", s.to)
	}
	if s.subject != "Folio: new admin sign-in" {
		t.Fatalf("subject = %q", s.subject)
	}
	if !strings.Contains(s.text, "1.2.3.4") || !strings.Contains(s.text, "Browser:    unknown") {
		t.Fatalf("text = %q", s.text)
	}
	if !strings.Contains(s.html, "a@b.c") {
		t.Fatalf("html = %q", s.html)
	}
}

func TestWorkerRejectsBadJobs(t *testing.T) {
	w := &Worker{Sender: &fakeSender{}}
	for _, body := range []string{`{`, `{"template":"login_notification"}`, `{"to":"x@y.z","template":"missing"}`} {
		if err := w.Handle(context.Background(), []byte(body)); !errors.Is(err, ErrBadJob) {
			t.Fatalf("%s: err = %v", body, err)
		}
	}
}

func TestWorkerPassesSendErrors(t *testing.T) {
	boom := errors.New("mailgun down")
	w := &Worker{Sender: &fakeSender{err: boom}}
	err := w.Handle(context.Background(), []byte(`{"to":"x@y.z","subject":"s","text":"t"}`))
	if !errors.Is(err, boom) || errors.Is(err, ErrBadJob) {
		t.Fatalf("err = %v", err)
	}
}
