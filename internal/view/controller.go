package view

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/jamesprial/gameshelf/internal/games"
)

var (
	// ErrNotMounted is returned by operations that need a mounted controller.
	ErrNotMounted = errors.New("view: controller is not mounted")
	// ErrMounted is returned by Mount on a controller that is already mounted.
	ErrMounted = errors.New("view: controller is already mounted")
	// ErrFailed is returned while the controller is in StatusError. The state
	// is left only by Unmount followed by Mount.
	ErrFailed = errors.New("view: controller is in the error state")
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClearFormOnAdd resets the draft after an add succeeds. The draft is
// kept when the add fails.
func WithClearFormOnAdd(clear bool) Option {
	return func(c *Controller) { c.clearFormOnAdd = clear }
}

// Controller drives the games view: it loads the list on mount, issues add
// and delete mutations, and refetches once after each mutation completes.
//
// Subscribers receive every state snapshot in Seq order, one delivery at a
// time. Deliveries run on the goroutine that caused the transition, so
// subscribers must not block. They may call back into the controller.
type Controller struct {
	mgr            games.GameManager
	logger         *zap.Logger
	clearFormOnAdd bool

	mu      sync.Mutex
	state   State
	mounted bool
	ctx     context.Context
	cancel  context.CancelFunc
	// gen identifies the authoritative query. Older results are dropped.
	gen uint64

	subs    map[uint64]func(State)
	nextSub uint64

	// pending holds snapshots not yet delivered. draining is set while one
	// goroutine is delivering them.
	pending  []State
	draining bool

	wg sync.WaitGroup
}

// NewController returns an unmounted controller backed by mgr.
func NewController(mgr games.GameManager, opts ...Option) *Controller {
	if mgr == nil {
		panic("game manager must not be nil")
	}
	c := &Controller{
		mgr:    mgr,
		logger: zap.NewNop(),
		subs:   make(map[uint64]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn for state snapshots and returns a function that
// removes it. A delivery already under way may still reach fn once after
// removal.
func (c *Controller) Subscribe(fn func(State)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Mount starts the controller under ctx and issues the first query. The
// draft and games are reset.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return ErrMounted
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.mounted = true
	c.state.Draft = Draft{}
	c.startLoadLocked()
	c.mu.Unlock()

	c.logger.Debug("controller mounted")
	c.drain()
	return nil
}

// Unmount cancels in-flight work and returns to StatusIdle. Results that
// arrive afterwards are discarded and start no refetch.
func (c *Controller) Unmount() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.cancel()
	c.mounted = false
	c.gen++
	c.state.Draft = Draft{}
	c.transitionLocked(StatusIdle, nil)
	c.mu.Unlock()

	c.logger.Debug("controller unmounted")
	c.drain()
}

// Wait blocks until every goroutine started by the controller has returned.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// LoadGames issues the games query. The state becomes StatusLoading and then
// StatusReady or StatusError. A newer LoadGames supersedes an older one
// still in flight.
func (c *Controller) LoadGames() error {
	c.mu.Lock()
	if err := c.checkLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.startLoadLocked()
	c.mu.Unlock()

	c.drain()
	return nil
}

// SubmitAdd sends the add mutation with platformRaw split on every comma.
// Nothing is validated. When the mutation completes, successfully or not,
// exactly one LoadGames follows. The call returns before the mutation
// completes.
func (c *Controller) SubmitAdd(title, platformRaw string) error {
	input := games.NewAddGameInput(title, platformRaw)
	return c.mutate("add", c.clearFormOnAdd, func(ctx context.Context) error {
		_, err := c.mgr.Add(ctx, input)
		return err
	}, zap.String("title", title), zap.Strings("platform", input.Platform))
}

// SubmitDelete sends the delete mutation for id. When it completes exactly
// one LoadGames follows.
func (c *Controller) SubmitDelete(id string) error {
	return c.mutate("delete", false, func(ctx context.Context) error {
		_, err := c.mgr.Delete(ctx, id)
		return err
	}, zap.String("id", id))
}

// SetDraft replaces the form draft.
func (c *Controller) SetDraft(title, platformRaw string) {
	c.mu.Lock()
	d := Draft{Title: title, PlatformRaw: platformRaw}
	if c.state.Draft == d {
		c.mu.Unlock()
		return
	}
	c.state.Draft = d
	c.transitionLocked(c.state.Status, c.state.Games)
	c.mu.Unlock()

	c.drain()
}

// SubmitDraft is SubmitAdd with the current draft.
func (c *Controller) SubmitDraft() error {
	c.mu.Lock()
	d := c.state.Draft
	c.mu.Unlock()
	return c.SubmitAdd(d.Title, d.PlatformRaw)
}

// mutate runs a mutation in the background and refetches when it returns.
// clearDraft resets the draft if the mutation succeeds.
func (c *Controller) mutate(kind string, clearDraft bool, run func(ctx context.Context) error, fields ...zap.Field) error {
	c.mu.Lock()
	if err := c.checkLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	ctx := c.ctx
	c.wg.Add(1)
	c.mu.Unlock()

	log := c.logger.With(append(fields, zap.String("mutation", kind))...)
	go func() {
		defer c.wg.Done()

		err := run(ctx)
		if err != nil {
			log.Warn("mutation failed", zap.Error(err))
		} else {
			log.Debug("mutation completed")
		}
		c.afterMutation(ctx, clearDraft && err == nil)
	}()
	return nil
}

func (c *Controller) afterMutation(ctx context.Context, clearDraft bool) {
	c.mu.Lock()
	if !c.mounted || ctx.Err() != nil {
		c.mu.Unlock()
		c.logger.Debug("discarding mutation result after unmount")
		return
	}
	if c.state.Status == StatusError {
		c.mu.Unlock()
		return
	}
	if clearDraft {
		c.state.Draft = Draft{}
	}
	c.startLoadLocked()
	c.mu.Unlock()

	c.drain()
}

// startLoadLocked enters StatusLoading and runs a query for a new
// generation. c.mu must be held.
func (c *Controller) startLoadLocked() {
	c.gen++
	gen := c.gen
	ctx := c.ctx
	c.transitionLocked(StatusLoading, nil)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		list, err := c.mgr.List(ctx)

		c.mu.Lock()
		if !c.mounted || gen != c.gen {
			c.mu.Unlock()
			c.logger.Debug("dropping stale games result", zap.Uint64("generation", gen))
			return
		}
		if err != nil {
			c.transitionLocked(StatusError, nil)
		} else {
			c.transitionLocked(StatusReady, list)
		}
		c.mu.Unlock()

		if err != nil {
			c.logger.Error("load games failed", zap.Error(err))
		} else {
			c.logger.Debug("games loaded", zap.Int("count", len(list)))
		}
		c.drain()
	}()
}

func (c *Controller) checkLocked() error {
	if !c.mounted {
		return ErrNotMounted
	}
	if c.state.Status == StatusError {
		return ErrFailed
	}
	return nil
}

// transitionLocked records a new state and queues it for delivery. c.mu
// must be held.
func (c *Controller) transitionLocked(status Status, list []games.Game) {
	c.state.Seq++
	c.state.Status = status
	c.state.Games = list
	c.pending = append(c.pending, c.snapshotLocked())
}

func (c *Controller) snapshotLocked() State {
	s := c.state
	s.Games = slices.Clone(c.state.Games)
	return s
}

// drain delivers queued snapshots unless another goroutine already is.
func (c *Controller) drain() {
	c.mu.Lock()
	if c.draining {
		c.mu.Unlock()
		return
	}
	c.draining = true
	c.mu.Unlock()

	for {
		c.mu.Lock()
		if len(c.pending) == 0 {
			c.draining = false
			c.mu.Unlock()
			return
		}
		s := c.pending[0]
		c.pending = c.pending[1:]
		subs := make([]func(State), 0, len(c.subs))
		for _, fn := range c.subs {
			subs = append(subs, fn)
		}
		c.mu.Unlock()

		for _, fn := range subs {
			fn(s)
		}
	}
}
