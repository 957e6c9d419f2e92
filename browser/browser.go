// Package browser is a chromedp backend for the browse bridge. Each Step runs a
// command string against the current tab and reports the resulting page state.
package browser

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/accessibility"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/yosssi/gohtml"
	"go.uber.org/zap"

	"browsebridge/browser/command"
	"browsebridge/browser/js/primitives"
	"browsebridge/browser/virtualid"
	"browsebridge/observation"
	"browsebridge/translators"
	"browsebridge/translators/html2md"
	"browsebridge/translators/tokentrim"
	"browsebridge/utils/jsonx"
)

const DefaultSettleTime = 1 * time.Second

type Browser struct {
	// mu serializes steps; run expects it to be held
	mu          *sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	logger      *zap.Logger
	options     Options
	translator  translators.Translator
	runActions  func(ctx context.Context, actions ...chromedp.Action) error
	listTargets func(ctx context.Context) ([]*target.Info, error)
	currentTab  func(ctx context.Context) target.ID
}

type Options struct {
	RunHeadful                        bool
	AttemptToDisableAutomationMessage bool

	// Screenshots adds a base64 PNG of the viewport to every observation.
	Screenshots   bool
	MaxTextTokens int
	SettleTime    time.Duration
	Logger        *zap.Logger
}

func (o *Options) withDefaults() Options {
	opts := Options{SettleTime: DefaultSettleTime}
	if o != nil {
		opts = *o
	}
	if opts.SettleTime <= 0 {
		opts.SettleTime = DefaultSettleTime
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

// NewBrowser launches Chrome and opens a blank tab.
func NewBrowser(ctx context.Context, options *Options) (*Browser, error) {
	opts := options.withDefaults()
	ops := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if opts.RunHeadful {
		ops = append(ops, chromedp.Flag("headless", false))
	}
	if opts.AttemptToDisableAutomationMessage {
		ops = append(ops, chromedp.UserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"))
		ops = append(ops, chromedp.Flag("enable-automation", false))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, ops...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		browserCancel()
		allocCancel()
	}
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("error starting browser: %w", err)
	}
	b, err := newBrowser(browserCtx, cancel, opts)
	if err != nil {
		cancel()
		return nil, err
	}
	b.runActions = chromedp.Run
	b.listTargets = chromedp.Targets
	b.currentTab = func(ctx context.Context) target.ID {
		if c := chromedp.FromContext(ctx); c != nil && c.Target != nil {
			return c.Target.TargetID
		}
		return ""
	}
	return b, nil
}

func newBrowser(ctx context.Context, cancel context.CancelFunc, opts Options) (*Browser, error) {
	trimmer, err := tokentrim.New(opts.MaxTextTokens)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger.Named("browser")
	translator := translators.Chain(
		html2md.NewHTML2MDTranslator(&html2md.Options{Logger: logger}),
		trimmer,
	)
	return &Browser{
		mu:         &sync.Mutex{},
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
		options:    opts,
		translator: translator,
	}, nil
}

func (b *Browser) run(actions ...chromedp.Action) error {
	return b.runActions(b.ctx, actions...)
}

// Step executes command and returns the page state afterwards. Failures of the
// command itself are reported under last_action_error; an error is returned
// only when the page state cannot be read.
func (b *Browser) Step(cmd string) (observation.Raw, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	lastActionError := ""
	if err := b.perform(cmd); err != nil {
		b.logger.Debug("Browser action failed.", zap.String("command", cmd), zap.Error(err))
		lastActionError = err.Error()
	}
	raw, err := b.collect()
	if err != nil {
		return nil, fmt.Errorf("error reading page state: %w", err)
	}
	raw["last_action"] = cmd
	raw["last_action_error"] = lastActionError
	return raw, nil
}

func (b *Browser) perform(cmd string) error {
	calls, err := command.Parse(cmd)
	if err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}
	for _, call := range calls {
		action, err := toAction(call)
		if err != nil {
			return err
		}
		if err := b.run(action, chromedp.Sleep(b.options.SettleTime)); err != nil {
			return fmt.Errorf("%s failed: %w", call.Name, err)
		}
	}
	return nil
}

func (b *Browser) collect() (observation.Raw, error) {
	var (
		location   string
		title      string
		outerHTML  string
		focused    string
		props      map[string]any
		axNodes    []*accessibility.Node
		screenshot []byte
	)
	tasks := chromedp.Tasks{
		chromedp.Evaluate(virtualid.AssignScript, nil),
		chromedp.Location(&location),
		chromedp.Title(&title),
		chromedp.ActionFunc(func(ctx context.Context) error {
			node, err := dom.GetDocument().Do(ctx)
			if err != nil {
				return err
			}
			outerHTML, err = dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
			return err
		}),
		primitives.FocusedVirtualID(virtualid.VirtualIDDataAttr, &focused),
		primitives.ElementProperties(virtualid.VirtualIDDataAttr, &props),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			axNodes, err = accessibility.GetFullAXTree().Do(ctx)
			return err
		}),
	}
	if b.options.Screenshots {
		tasks = append(tasks, chromedp.CaptureScreenshot(&screenshot))
	}
	if err := b.run(tasks); err != nil {
		return nil, err
	}

	text, err := b.translator.Translate(outerHTML)
	if err != nil {
		return nil, fmt.Errorf("error rendering page %s: %w", location, err)
	}
	nodes, err := jsonx.ToGeneric(axNodes)
	if err != nil {
		return nil, fmt.Errorf("error encoding accessibility tree: %w", err)
	}
	pages, active, err := b.pages()
	if err != nil {
		return nil, fmt.Errorf("error listing pages: %w", err)
	}
	if props == nil {
		props = map[string]any{}
	}
	raw := observation.Raw{
		"text_content": text,
		"url":          location,
		"dom_object": map[string]any{
			"url":   location,
			"title": title,
			"html":  gohtml.Format(outerHTML),
		},
		"axtree_object":            map[string]any{"nodes": nodes},
		"open_pages_urls":          pages,
		"active_page_index":        active,
		"extra_element_properties": props,
	}
	if focused != "" {
		raw["focused_element_bid"] = focused
	}
	if screenshot != nil {
		raw["screenshot"] = base64.StdEncoding.EncodeToString(screenshot)
	}
	return raw, nil
}

// pages lists the urls of open tabs and the index of the controlled one, or -1.
func (b *Browser) pages() ([]any, int, error) {
	infos, err := b.listTargets(b.ctx)
	if err != nil {
		return nil, -1, err
	}
	current := b.currentTab(b.ctx)
	urls := []any{}
	active := -1
	for _, info := range infos {
		if info.Type != "page" {
			continue
		}
		if info.TargetID == current {
			active = len(urls)
		}
		urls = append(urls, info.URL)
	}
	return urls, active, nil
}

// Close shuts down the tab and the browser process.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	err := chromedp.Cancel(b.ctx)
	b.cancel()
	return err
}
