package services

import (
	"strings"
	"testing"

	"sniper-agent/models"
	"sniper-agent/notify"
	"sniper-agent/utils"
)

// fakeChannel records sends and answers with a fixed outcome.
type fakeChannel struct {
	name     string
	ok       bool
	messages []string
}

func (c *fakeChannel) Name() string { return c.name }

func (c *fakeChannel) Send(message string) bool {
	c.messages = append(c.messages, message)
	return c.ok
}

func asChannels(chs ...*fakeChannel) []notify.Channel {
	out := make([]notify.Channel, len(chs))
	for i, ch := range chs {
		out[i] = ch
	}
	return out
}

func storeWithEligibleDeal() *fakeStore {
	price := 100.0
	store := newFakeStore()
	store.listings = []*models.Listing{
		{ID: 1, Title: "PS5 console", URL: "https://x.test/1", Price: &price, Currency: "USD"},
	}
	store.deals[1] = &models.Deal{
		ID: 10, ListingID: 1, Status: models.DealStatusEligible,
		Score: 0.84, EstimatedMargin: 57, Currency: "USD",
		Notes: ReasonMeetsThresholds,
	}
	return store
}

func TestAlertRunFansOutAcrossChannels(t *testing.T) {
	store := storeWithEligibleDeal()
	good := &fakeChannel{name: "email", ok: true}
	flaky := &fakeChannel{name: "slack", ok: false}

	orch := NewAlertOrchestrator(store, asChannels(good, flaky), utils.NewLogger())
	counts, err := orch.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if counts.Created != 2 || counts.Sent != 1 || counts.Failed != 1 {
		t.Errorf("counts = %+v, want Created=2 Sent=1 Failed=1", counts)
	}
	if len(good.messages) != 1 || len(flaky.messages) != 1 {
		t.Fatalf("each channel should get one delivery attempt")
	}

	msg := good.messages[0]
	for _, want := range []string{"Deal #10", "PS5 console", "https://x.test/1", "margin=$57.00"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q: %q", want, msg)
		}
	}
}

func TestAlertRunNeverResendsSent(t *testing.T) {
	store := storeWithEligibleDeal()
	email := &fakeChannel{name: "email", ok: true}

	orch := NewAlertOrchestrator(store, asChannels(email), utils.NewLogger())
	if _, err := orch.Run(); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	counts, err := orch.Run()
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if counts.Created != 0 || counts.Sent != 0 {
		t.Errorf("second run counts = %+v, want nothing new", counts)
	}
	if len(email.messages) != 1 {
		t.Errorf("channel received %d sends, want 1", len(email.messages))
	}
	if len(store.alerts) != 1 {
		t.Errorf("store has %d alerts, want 1", len(store.alerts))
	}
}

func TestAlertRunRetriesFailed(t *testing.T) {
	store := storeWithEligibleDeal()
	slack := &fakeChannel{name: "slack", ok: false}

	orch := NewAlertOrchestrator(store, asChannels(slack), utils.NewLogger())
	if _, err := orch.Run(); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if store.alerts[0].Status != models.AlertStatusFailed {
		t.Fatalf("alert status = %q, want failed", store.alerts[0].Status)
	}

	// The channel recovers; a later run must try again.
	slack.ok = true
	counts, err := orch.Run()
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if counts.Sent != 1 {
		t.Errorf("second run Sent = %d, want 1 (failed pairs retry)", counts.Sent)
	}
}
