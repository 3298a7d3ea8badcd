package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu        sync.Mutex
	delivered []Notification
	ch        chan Notification
}

func newRecordingSink() *recordingSink {
	return &recordingSink{ch: make(chan Notification, 16)}
}

func (s *recordingSink) Deliver(n Notification) {
	s.mu.Lock()
	s.delivered = append(s.delivered, n)
	s.mu.Unlock()
	s.ch <- n
}

func TestScheduleRejectsPastInstant(t *testing.T) {
	d := NewDispatcher()
	_, err := d.Schedule(Notification{FireAt: time.Now().Add(-time.Second)})
	require.ErrorIs(t, err, ErrFireInPast)
}

func TestScheduleAssignsIDAndChannelSound(t *testing.T) {
	d := NewDispatcher()
	id, err := d.Schedule(Notification{
		Channel: ChannelPremium,
		FireAt:  time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	pending := d.Pending()
	require.Len(t, pending, 1)
	require.Equal(t, id, pending[0].ID)
	require.Equal(t, "notification_sound1.mp3", pending[0].Sound)
}

func TestPendingOrderedByInstant(t *testing.T) {
	d := NewDispatcher()
	later, err := d.Schedule(Notification{FireAt: time.Now().Add(2 * time.Hour)})
	require.NoError(t, err)
	sooner, err := d.Schedule(Notification{FireAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	pending := d.Pending()
	require.Equal(t, []string{sooner, later}, []string{pending[0].ID, pending[1].ID})
}

func TestCancelAllStopsEverything(t *testing.T) {
	sink := newRecordingSink()
	d := NewDispatcher(sink)
	for i := 0; i < 5; i++ {
		_, err := d.Schedule(Notification{FireAt: time.Now().Add(time.Hour)})
		require.NoError(t, err)
	}
	d.CancelAll()
	require.Empty(t, d.Pending())
}

func TestFireDeliversToSinks(t *testing.T) {
	sink := newRecordingSink()
	d := NewDispatcher(sink)
	id, err := d.Schedule(Notification{
		Title:  "Drip Drip! 💧",
		Body:   "static",
		Kind:   "reminder",
		FireAt: time.Now().Add(20 * time.Millisecond),
	})
	require.NoError(t, err)

	select {
	case n := <-sink.ch:
		require.Equal(t, id, n.ID)
		require.Equal(t, "static", n.Body)
	case <-time.After(2 * time.Second):
		t.Fatal("notification never delivered")
	}
	require.Empty(t, d.Pending())
}

func TestFireRendersBodyFuncAtDelivery(t *testing.T) {
	sink := newRecordingSink()
	d := NewDispatcher(sink)
	body := "early"
	_, err := d.Schedule(Notification{
		Kind:     "summary",
		FireAt:   time.Now().Add(20 * time.Millisecond),
		BodyFunc: func() string { return body },
	})
	require.NoError(t, err)
	body = "late"

	select {
	case n := <-sink.ch:
		require.Equal(t, "late", n.Body)
	case <-time.After(2 * time.Second):
		t.Fatal("notification never delivered")
	}
}

func TestDismissDropsSinglePending(t *testing.T) {
	d := NewDispatcher()
	keep, err := d.Schedule(Notification{FireAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	drop, err := d.Schedule(Notification{FireAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	d.Dismiss(drop)
	pending := d.Pending()
	require.Len(t, pending, 1)
	require.Equal(t, keep, pending[0].ID)
}

func TestHandleResponseForwardsToHandler(t *testing.T) {
	d := NewDispatcher()
	var got Response
	d.OnResponse(func(r Response) { got = r })

	d.HandleResponse(Response{NotificationID: "n1", ActionIdentifier: "half"})
	require.Equal(t, "n1", got.NotificationID)
	require.Equal(t, "half", got.ActionIdentifier)
}

func TestHandleResponseWithoutHandlerIsNoOp(t *testing.T) {
	d := NewDispatcher()
	d.HandleResponse(Response{NotificationID: "n1", ActionIdentifier: "sip"})
}
