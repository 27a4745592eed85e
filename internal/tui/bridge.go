package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jamesprial/gameshelf/internal/view"
)

// stateMsg carries a controller snapshot into the update loop.
type stateMsg view.State

// Updates is a one-slot mailbox of controller snapshots. A push replaces a
// snapshot the program has not read yet, so the controller never blocks on
// the terminal.
type Updates struct {
	ch        chan view.State
	done      chan struct{}
	closeOnce sync.Once
}

// NewUpdates returns an empty mailbox.
func NewUpdates() *Updates {
	return &Updates{
		ch:   make(chan view.State, 1),
		done: make(chan struct{}),
	}
}

// Close releases pending and future waits. It may be called more than once.
func (u *Updates) Close() {
	u.closeOnce.Do(func() { close(u.done) })
}

// Push stores s, dropping any unread snapshot. It never blocks. Pushes must
// not run concurrently, which holds for controller deliveries.
func (u *Updates) Push(s view.State) {
	for {
		select {
		case u.ch <- s:
			return
		default:
		}
		select {
		case <-u.ch:
		default:
		}
	}
}

// wait returns a command that resolves with the next snapshot, or with nil
// once the mailbox is closed.
func (u *Updates) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-u.ch:
			return stateMsg(s)
		case <-u.done:
			return nil
		}
	}
}
