package pomodoro

import (
	"context"
	"sync"
	"time"
)

// Snapshot is a consistent view of a driven session.
type Snapshot struct {
	Config Config `json:"config"`
	State  State  `json:"state"`
}

// Driver runs a Session from a ticker goroutine and serializes host
// operations against ticks. The ticker restarts whenever a countdown starts
// running so the first second after start or resume is a full second.
type Driver struct {
	mu           sync.Mutex
	session      *Session
	tickInterval time.Duration
	realign      chan struct{}
}

// NewDriver wraps a session. A non-positive interval defaults to one second.
func NewDriver(session *Session, tickInterval time.Duration) *Driver {
	if tickInterval <= 0 {
		tickInterval = time.Second
	}
	return &Driver{
		session:      session,
		tickInterval: tickInterval,
		realign:      make(chan struct{}, 1),
	}
}

// Run ticks the session until ctx is cancelled.
func (driver *Driver) Run(ctx context.Context) {
	ticker := time.NewTicker(driver.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-driver.realign:
			ticker.Reset(driver.tickInterval)
		case <-ticker.C:
			driver.mu.Lock()
			driver.session.Tick()
			driver.mu.Unlock()
		}
	}
}

// Subscribe registers a handler. Handlers run with the driver lock held
// and must not call back into the driver.
func (driver *Driver) Subscribe(handler Handler) {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	driver.session.Subscribe(handler)
}

// Do runs fn with exclusive access to the session.
func (driver *Driver) Do(fn func(*Session) bool) bool {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	wasRunning := driver.session.State().Running
	ok := fn(driver.session)
	driver.realignLocked(wasRunning)
	return ok
}

// Apply runs a named operation under the driver lock.
func (driver *Driver) Apply(name string) (Snapshot, error) {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	wasRunning := driver.session.State().Running
	err := driver.session.Apply(name)
	driver.realignLocked(wasRunning)
	return driver.snapshotLocked(), err
}

func (driver *Driver) realignLocked(wasRunning bool) {
	if wasRunning || !driver.session.State().Running {
		return
	}
	select {
	case driver.realign <- struct{}{}:
	default:
	}
}

// SetConfig replaces the session config under the driver lock.
func (driver *Driver) SetConfig(config Config) error {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	return driver.session.SetConfig(config)
}

// Snapshot returns the current config and state.
func (driver *Driver) Snapshot() Snapshot {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	return driver.snapshotLocked()
}

func (driver *Driver) snapshotLocked() Snapshot {
	return Snapshot{
		Config: driver.session.Config(),
		State:  driver.session.State(),
	}
}
