package api

import (
	"errors"
	"testing"
	"time"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
)

func TestBrokerFanOut(t *testing.T) {
	b := NewBroker(nil, 2)
	first, unsubFirst := b.Subscribe()
	second, unsubSecond := b.Subscribe()
	defer unsubSecond()

	def := check.Definition{ID: "sip_enabled", Name: "SIP", Category: check.CategoryOSHardening, Severity: 5}
	b.OnResult(0, 2, check.NewResult(def, check.StatusPass, "enabled", time.Now(), false))

	for _, ch := range []chan Event{first, second} {
		evt := <-ch
		if evt.Type != EventResult || evt.Index != 0 || evt.Total != 2 || evt.Result.CheckID() != "sip_enabled" {
			t.Fatalf("unexpected event %+v", evt)
		}
	}

	unsubFirst()
	unsubFirst()
	if _, ok := <-first; ok {
		t.Fatal("expected closed channel after unsubscribe")
	}
	if b.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", b.Subscribers())
	}

	partial := []*check.Result{check.NewResult(def, check.StatusPass, "enabled", time.Now(), false)}
	report := check.NewReport(time.Now(), "14.4.1", "CIS", partial)
	b.OnComplete(report, errors.New("scan cancelled"))
	evt := <-second
	if evt.Type != EventComplete || evt.Report != report || evt.Error != "scan cancelled" {
		t.Fatalf("unexpected complete event %+v", evt)
	}
	if evt.Index != 1 || evt.Total != 2 {
		t.Fatalf("cancelled scan must report 1/2, got %d/%d", evt.Index, evt.Total)
	}
}

func TestBrokerDropsForSlowSubscribers(t *testing.T) {
	b := NewBroker(nil, 2)
	_, unsubscribe := b.Subscribe()
	defer unsubscribe()

	for i := 0; i < subscriberBuffer+5; i++ {
		b.OnResult(i, subscriberBuffer+5, nil)
	}
	if got := b.Dropped(); got != 5 {
		t.Fatalf("expected 5 dropped events, got %d", got)
	}
}
