// Package plugin exposes the decoder through the entry points a signing host
// calls for every contract call it wants to clear-sign:
//
//	Init                once, with the selector
//	ProvideParameter    once per 32-byte word, in order
//	Finalize            after the last word, returns the screen count
//	QueryOperationName  app name and operation label for the lead screen
//	QueryScreen         any screen, any number of times
package plugin

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-restaking-clearsign/calldata"
	"github.com/rony4d/go-restaking-clearsign/decoder"
	"github.com/rony4d/go-restaking-clearsign/display"
)

var (
	ErrNotInitialized   = errors.New("plugin not initialized")
	ErrNotFinalized     = errors.New("plugin not finalized")
	ErrIncompleteStream = decoder.ErrIncompleteStream
)

// Config tunes what the host can show.
type Config struct {
	// AppName is shown above the operation label.
	AppName string
	// MaxTitleLen and MaxValueLen cut screen strings to the host buffers.
	// Zero means unlimited.
	MaxTitleLen int
	MaxValueLen int
}

// DefaultConfig returns the settings of a host without display limits.
func DefaultConfig() Config {
	return Config{
		AppName: "EigenLayer",
	}
}

// Plugin serves one transaction at a time.
type Plugin struct {
	cfg Config
	log logrus.FieldLogger

	ctx     *decoder.Context
	result  decoder.Result
	screens int
}

// New creates an idle plugin. A nil log discards all output.
func New(cfg Config, log logrus.FieldLogger) *Plugin {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Plugin{cfg: cfg, log: log}
}

// Init selects the operation for a new transaction and drops any previous one.
func (p *Plugin) Init(sel calldata.Selector) error {
	p.Reset()
	ctx, err := decoder.NewContext(sel, p.log)
	if err != nil {
		p.log.WithField("selector", sel.String()).Debug("Unsupported selector")
		return err
	}
	p.ctx = ctx
	return nil
}

// ProvideParameter feeds the word found at the absolute offset off.
func (p *Plugin) ProvideParameter(w calldata.Word, off uint32) error {
	if p.ctx == nil {
		return ErrNotInitialized
	}
	return p.ctx.Advance(w, off)
}

// Finalize checks that the call was fully decoded and returns the number of
// screens to review.
func (p *Plugin) Finalize() (int, error) {
	if p.ctx == nil {
		return 0, ErrNotInitialized
	}
	res, err := p.ctx.Result()
	if err != nil {
		return 0, err
	}
	p.result = res
	p.screens = display.Count(res)
	p.log.WithFields(logrus.Fields{
		"op":      p.ctx.Operation().Name,
		"screens": p.screens,
	}).Debug("Finalized")
	return p.screens, nil
}

// QueryOperationName returns the lead screen strings.
func (p *Plugin) QueryOperationName() (app, label string, err error) {
	if p.ctx == nil {
		return "", "", ErrNotInitialized
	}
	return p.cut(p.cfg.AppName, p.cfg.MaxTitleLen), p.cut(p.ctx.Operation().Label, p.cfg.MaxValueLen), nil
}

// QueryScreen renders screen i. It has no side effects.
func (p *Plugin) QueryScreen(i int) (display.Screen, error) {
	if p.result == nil {
		return display.Screen{}, ErrNotFinalized
	}
	s, err := display.Render(p.result, i)
	if err != nil {
		return display.Screen{}, err
	}
	s.Title = p.cut(s.Title, p.cfg.MaxTitleLen)
	s.Value = p.cut(s.Value, p.cfg.MaxValueLen)
	return s, nil
}

// Reset forgets the current transaction.
func (p *Plugin) Reset() {
	p.ctx = nil
	p.result = nil
	p.screens = 0
}

func (p *Plugin) cut(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}

// Summary is everything the host shows for one call.
type Summary struct {
	App       string
	Operation string
	Kind      decoder.Kind
	Screens   []display.Screen
}

// Summarize plays the host: it splits data into words and drives p through
// a full cycle.
func Summarize(p *Plugin, data []byte) (*Summary, error) {
	r, err := calldata.NewReader(data)
	if err != nil {
		return nil, err
	}
	if err := p.Init(r.Selector()); err != nil {
		return nil, err
	}
	for w, off, ok := r.Next(); ok; w, off, ok = r.Next() {
		if err := p.ProvideParameter(w, off); err != nil {
			return nil, err
		}
	}
	n, err := p.Finalize()
	if err != nil {
		return nil, err
	}

	sum := &Summary{Kind: p.ctx.Kind()}
	if sum.App, sum.Operation, err = p.QueryOperationName(); err != nil {
		return nil, err
	}
	sum.Screens = make([]display.Screen, 0, n)
	for i := 0; i < n; i++ {
		s, err := p.QueryScreen(i)
		if err != nil {
			return nil, fmt.Errorf("screen %d: %w", i, err)
		}
		sum.Screens = append(sum.Screens, s)
	}
	return sum, nil
}
