package flow

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ytget/upscaler/internal/model"
	"github.com/ytget/upscaler/internal/upload"
)

// DefaultTickInterval is one countdown time unit
const DefaultTickInterval = time.Second

// View renders flow state. Methods are called with the controller lock held
// and must not call Dispatch synchronously.
type View interface {
	Render(state State)
	Notify(notice Notice)
}

// Ticker is a repeating tick source
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a Ticker firing every d
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker is the TickerFactory backed by time.Ticker
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Options configures a Controller
type Options struct {
	Language       model.Language
	CountdownTicks int
	TickInterval   time.Duration
	NewTicker      TickerFactory
	Logger         logrus.FieldLogger
}

// Controller owns the Machine and runs its effects
type Controller struct {
	mu       sync.Mutex
	machine  *Machine
	uploader upload.Uploader
	view     View
	log      logrus.FieldLogger

	interval  time.Duration
	newTicker TickerFactory

	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	ticker   Ticker
	stopTick chan struct{}
	wg       sync.WaitGroup
}

// NewController creates a controller in the Upload section and renders it
func NewController(uploader upload.Uploader, view View, opts Options) *Controller {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.NewTicker == nil {
		opts.NewTicker = NewTimeTicker
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Language == "" {
		opts.Language = model.DefaultLanguage
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		machine:   NewMachine(opts.Language, opts.CountdownTicks),
		uploader:  uploader,
		view:      view,
		log:       opts.Logger,
		interval:  opts.TickInterval,
		newTicker: opts.NewTicker,
		ctx:       ctx,
		cancel:    cancel,
	}

	c.view.Render(c.machine.State())
	return c
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.State()
}

// Dispatch feeds one event into the machine, runs the resulting effects and
// renders the new state. Events after Close are dropped.
func (c *Controller) Dispatch(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	before := c.machine.State().Section
	effects := c.machine.Handle(ev)
	state := c.machine.State()

	if state.Section != before {
		c.log.WithFields(logrus.Fields{
			"from": before,
			"to":   state.Section,
		}).Debug("Section changed")
	}

	for _, effect := range effects {
		c.run(effect)
	}

	c.view.Render(state)
}

// Close cancels a pending upload, stops the countdown and waits for both
// goroutines to exit
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.cancel()
	c.stopTicker()
	c.mu.Unlock()

	c.wg.Wait()
}

// run executes one effect; c.mu must be held
func (c *Controller) run(effect Effect) {
	switch e := effect.(type) {
	case StartUpload:
		c.startUpload(e.File)
	case StartCountdown:
		c.startTicker()
	case StopCountdown:
		c.stopTicker()
	case Notify:
		c.log.WithFields(logrus.Fields{
			"kind":    e.Notice.Kind.String(),
			"message": e.Notice.Message,
		}).Warn("Upscale flow error")
		c.view.Notify(e.Notice)
	}
}

func (c *Controller) startUpload(file *model.SelectedFile) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		result, err := c.uploader.Upload(c.ctx, file)
		c.Dispatch(UploadFinished{Result: result, Err: err})
	}()
}

func (c *Controller) startTicker() {
	c.stopTicker()

	ticker := c.newTicker(c.interval)
	stop := make(chan struct{})
	c.ticker = ticker
	c.stopTick = stop

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C():
				c.Dispatch(Tick{})
			}
		}
	}()
}

func (c *Controller) stopTicker() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	close(c.stopTick)
	c.ticker = nil
	c.stopTick = nil
}
