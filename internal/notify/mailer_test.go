package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestSendRequiresHostAndRecipients(t *testing.T) {
	mailer := NewMailer(Config{Recipients: []string{"ops@phila.gov"}})
	if err := mailer.Send(context.Background(), "subject", "body"); err == nil {
		t.Fatalf("expected error when relay host is missing")
	}

	mailer = NewMailer(Config{Host: "relay.phila.gov", Sender: "apps@phila.gov"})
	if err := mailer.Send(context.Background(), "subject", "body"); err == nil {
		t.Fatalf("expected error when recipient list is empty")
	}
}

func TestBuildMessageHeadersAndBody(t *testing.T) {
	mailer := NewMailer(Config{
		Host:       "relay.phila.gov",
		Port:       25,
		Sender:     "apps@phila.gov",
		Recipients: []string{"nick@phila.gov", "dan@phila.gov"},
	})

	msg, err := mailer.buildMessage("RCO Report Upload Failed", "The RCO Report upload failed.")
	if err != nil {
		t.Fatalf("buildMessage returned error: %v", err)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("failed to serialize message: %v", err)
	}
	rendered := buf.String()

	for _, want := range []string{
		"Subject: RCO Report Upload Failed",
		"From: <apps@phila.gov>",
		"nick@phila.gov",
		"dan@phila.gov",
		"The RCO Report upload failed.",
	} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("rendered message missing %q:\n%s", want, rendered)
		}
	}
}

func TestBuildMessageRejectsBadAddresses(t *testing.T) {
	mailer := NewMailer(Config{
		Host:       "relay.phila.gov",
		Sender:     "not-an-address",
		Recipients: []string{"ops@phila.gov"},
	})
	if _, err := mailer.buildMessage("s", "b"); err == nil {
		t.Fatalf("expected invalid sender to be rejected")
	}
}
