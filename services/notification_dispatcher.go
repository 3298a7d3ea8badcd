package services

import (
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Channel and category identifiers mirror what the mobile client registers
// with its OS; action identifiers are unit types verbatim.
const (
	ReminderCategory = "hydration-reminder"
	ChannelDefault   = "hydration-reminder"
	ChannelPremium   = "hydration-reminder-premium"
)

// Channel is a named delivery class with an optional custom alert sound.
type Channel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Sound string `json:"sound"`
}

// CategoryAction is one button attached to notifications of a category.
type CategoryAction struct {
	Identifier  string `json:"identifier"`
	ButtonTitle string `json:"buttonTitle"`
}

// Notification is a one-shot local notification pending at an absolute
// instant. BodyFunc, when set, renders the body at delivery time instead of
// scheduling time (used for daily summaries).
type Notification struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Category string            `json:"category"`
	Channel  string            `json:"channel"`
	Sound    string            `json:"sound"`
	Kind     string            `json:"kind"` // "reminder" | "summary"
	FireAt   time.Time         `json:"fireAt"`
	Data     map[string]string `json:"data,omitempty"`

	BodyFunc func() string `json:"-"`
}

// Response is what comes back when the user taps a delivered notification
// or one of its action buttons.
type Response struct {
	NotificationID   string `json:"notificationId"`
	ActionIdentifier string `json:"actionIdentifier"`
}

// DeliverySink receives fired notifications. Sinks must not block.
type DeliverySink interface {
	Deliver(n Notification)
}

var ErrFireInPast = errors.New("notification instant is in the past")

type pendingNotification struct {
	n     Notification
	timer *time.Timer
}

// Dispatcher is the local stand-in for a platform notification service:
// channel and category registration, schedule-at-instant, cancel-all, and
// response handling. Delivery fans out to every configured sink.
type Dispatcher struct {
	mu         sync.Mutex
	channels   map[string]Channel
	categories map[string][]CategoryAction
	pending    map[string]*pendingNotification
	sinks      []DeliverySink
	onResponse func(Response)
}

func NewDispatcher(sinks ...DeliverySink) *Dispatcher {
	d := &Dispatcher{
		channels:   make(map[string]Channel),
		categories: make(map[string][]CategoryAction),
		pending:    make(map[string]*pendingNotification),
		sinks:      sinks,
	}
	d.RegisterChannel(Channel{ID: ChannelDefault, Name: "Hydration Reminders (Default)"})
	d.RegisterChannel(Channel{ID: ChannelPremium, Name: "Hydration Reminders (Premium)", Sound: "notification_sound1.mp3"})
	return d
}

func (d *Dispatcher) RegisterChannel(ch Channel) {
	d.mu.Lock()
	d.channels[ch.ID] = ch
	d.mu.Unlock()
}

// SetCategory replaces the action buttons attached to a category.
func (d *Dispatcher) SetCategory(category string, actions []CategoryAction) {
	d.mu.Lock()
	d.categories[category] = actions
	d.mu.Unlock()
}

func (d *Dispatcher) CategoryActions(category string) []CategoryAction {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]CategoryAction(nil), d.categories[category]...)
}

// OnResponse sets the handler invoked for every notification response.
func (d *Dispatcher) OnResponse(fn func(Response)) {
	d.mu.Lock()
	d.onResponse = fn
	d.mu.Unlock()
}

// Schedule arms a one-shot timer for the notification's instant. A fresh id
// is assigned when none is given.
func (d *Dispatcher) Schedule(n Notification) (string, error) {
	delay := time.Until(n.FireAt)
	if delay <= 0 {
		return "", ErrFireInPast
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if ch, ok := d.channels[n.Channel]; ok && n.Sound == "" {
		n.Sound = ch.Sound
	}
	p := &pendingNotification{n: n}
	p.timer = time.AfterFunc(delay, func() { d.fire(n.ID) })
	d.pending[n.ID] = p
	return n.ID, nil
}

func (d *Dispatcher) fire(id string) {
	d.mu.Lock()
	p, ok := d.pending[id]
	if ok {
		delete(d.pending, id)
	}
	sinks := d.sinks
	d.mu.Unlock()
	if !ok {
		return
	}
	n := p.n
	if n.BodyFunc != nil {
		n.Body = n.BodyFunc()
	}
	for _, s := range sinks {
		s.Deliver(n)
	}
}

// CancelAll stops every pending timer. There is no per-notification cancel;
// the scheduler always rebuilds the whole set.
func (d *Dispatcher) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, id)
	}
}

// Dismiss drops a single pending notification, e.g. after the user acted on
// a delivered one that is also still queued.
func (d *Dispatcher) Dismiss(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.pending[id]; ok {
		p.timer.Stop()
		delete(d.pending, id)
	}
}

// Pending lists scheduled notifications ordered by firing instant.
func (d *Dispatcher) Pending() []Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Notification, 0, len(d.pending))
	for _, p := range d.pending {
		out = append(out, p.n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FireAt.Before(out[j].FireAt) })
	return out
}

// HandleResponse forwards a user response to the registered handler.
func (d *Dispatcher) HandleResponse(r Response) {
	d.mu.Lock()
	fn := d.onResponse
	d.mu.Unlock()
	if fn == nil {
		log.Printf("[notify] response for %s dropped, no handler", r.NotificationID)
		return
	}
	fn(r)
}
