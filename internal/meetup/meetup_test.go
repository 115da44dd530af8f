package meetup

import (
	"context"
	"testing"
	"time"

	"github.com/driftwall/driftwall/internal/sideeffect"
)

func TestSendRecvRoundTrip(t *testing.T) {
	tx, rx := New[string]()

	done := make(chan struct{})
	go func() {
		defer close(done)
		tx.Send("wallpaper.png").Allow(sideeffect.MayBlock{})
	}()

	got := rx.Recv().Allow(sideeffect.MayBlock{})
	if got != "wallpaper.png" {
		t.Errorf("Recv() = %q, want %q", got, "wallpaper.png")
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sender did not resume after value was claimed")
	}
}

func TestSendSuspendsUntilClaimed(t *testing.T) {
	tx, rx := New[int]()

	sent := make(chan struct{})
	go func() {
		tx.Send(1).Allow(sideeffect.MayBlock{})
		close(sent)
	}()

	// The send must stay suspended while the value is unclaimed.
	select {
	case <-sent:
		t.Fatal("send completed with no receiver ready")
	case <-time.After(50 * time.Millisecond):
	}

	if got, ok := rx.TryRecv(); !ok || got != 1 {
		t.Fatalf("TryRecv() = (%d, %v), want (1, true)", got, ok)
	}

	select {
	case <-sent:
	case <-time.After(5 * time.Second):
		t.Fatal("sender did not resume after TryRecv")
	}
}

func TestTryRecvEmpty(t *testing.T) {
	_, rx := New[int]()
	if v, ok := rx.TryRecv(); ok {
		t.Errorf("TryRecv() on idle channel = (%d, true), want ok=false", v)
	}
}

// A slow consumer must observe values in exactly the order sent, with the
// producer suspended between sends until each value is claimed.
func TestProducerOrderWithSlowConsumer(t *testing.T) {
	tx, rx := New[int]()

	go func() {
		for _, v := range []int{1, 2, 3} {
			tx.Send(v).Allow(sideeffect.MayBlock{})
		}
	}()

	for want := 1; want <= 3; want++ {
		time.Sleep(20 * time.Millisecond) // consumer is deliberately slow
		got := rx.Recv().Allow(sideeffect.MayBlock{})
		if got != want {
			t.Fatalf("Recv() = %d, want %d", got, want)
		}
	}
}

func TestSendContextCancel(t *testing.T) {
	tx, _ := New[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := tx.SendContext(ctx, 7); err == nil {
		t.Error("SendContext() with no receiver returned nil error")
	}
}

func TestRecvContextCancel(t *testing.T) {
	_, rx := New[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := rx.RecvContext(ctx); err == nil {
		t.Error("RecvContext() with no sender returned nil error")
	}
}

func TestRecvContextDelivers(t *testing.T) {
	tx, rx := New[string]()
	go func() { _ = tx.SendContext(context.Background(), "next") }()

	v, err := rx.RecvContext(context.Background())
	if err != nil {
		t.Fatalf("RecvContext() error = %v", err)
	}
	if v != "next" {
		t.Errorf("RecvContext() = %q, want %q", v, "next")
	}
}
