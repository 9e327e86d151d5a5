package notify

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/toptier/siteapi/internal/model"
)

func TestNewReturnsNilWhenUnconfigured(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	m, err := New(Config{}, logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m != nil {
		t.Fatal("expected nil mailer without smtp settings")
	}

	// A nil mailer is a no-op, not a panic.
	lead := &model.Lead{FirstName: "Ada", Email: "ada@example.com"}
	if err := m.LeadReceived(context.Background(), lead); err != nil {
		t.Errorf("nil mailer LeadReceived: %v", err)
	}
}

func TestLeadBody(t *testing.T) {
	lead := &model.Lead{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "+1 555 0100",
		Message:     "Please call me back.",
	}

	body := leadBody(lead)
	for _, want := range []string{"Ada Lovelace", "ada@example.com", "+1 555 0100", "Please call me back."} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestLeadBodyDefaults(t *testing.T) {
	lead := &model.Lead{FirstName: "Ada", Email: "ada@example.com"}

	body := leadBody(lead)
	if !strings.Contains(body, "Not provided") {
		t.Errorf("expected phone placeholder in body:\n%s", body)
	}
	if !strings.Contains(body, "No message provided") {
		t.Errorf("expected message placeholder in body:\n%s", body)
	}
}
