package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/ppiankov/adscout/internal/fault"
	"github.com/ppiankov/adscout/internal/model"
)

// Rod is a Session backed by Chrome over the DevTools protocol
type Rod struct {
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher // nil when attached to an existing Chrome

	navTimeout    time.Duration
	actionTimeout time.Duration
	logger        *zap.Logger
}

// Launch starts Chrome, or attaches to cfg.ControlURL, and opens one page
func Launch(ctx context.Context, cfg model.BrowserConfig, logger *zap.Logger) (*Rod, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Rod{
		navTimeout:    orDefault(cfg.NavTimeout, 30*time.Second),
		actionTimeout: orDefault(cfg.WaitTimeout, 10*time.Second),
		logger:        logger,
	}

	controlURL := cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().
			Headless(cfg.Headless).
			Set(flags.Flag("window-size"), fmt.Sprintf("%d,%d", cfg.WindowWidth, cfg.WindowHeight)).
			Set(flags.Flag("disable-blink-features"), "AutomationControlled")
		if cfg.Bin != "" {
			l = l.Bin(cfg.Bin)
		}
		if cfg.Proxy != "" {
			l = l.Proxy(cfg.Proxy)
		}

		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		r.launcher = l
		controlURL = u
	}

	r.browser = rod.New().ControlURL(controlURL).Context(ctx)
	if err := r.browser.Connect(); err != nil {
		r.cleanupLauncher()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}
	r.page = page

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.WindowWidth,
		Height:            cfg.WindowHeight,
		DeviceScaleFactor: 1.0,
	}).Call(page); err != nil {
		logger.Warn("set viewport failed", zap.Error(err))
	}

	if cfg.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: cfg.UserAgent}); err != nil {
			logger.Warn("set user agent failed", zap.Error(err))
		}
	}

	logger.Debug("browser ready", zap.String("control_url", controlURL), zap.Bool("headless", cfg.Headless))
	return r, nil
}

func (r *Rod) Navigate(ctx context.Context, url string) error {
	p := r.page.Context(ctx).Timeout(r.navTimeout)
	defer p.CancelTimeout()

	if err := p.Navigate(url); err != nil {
		return navFault("navigate "+url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return navFault("load "+url, err)
	}
	return nil
}

func (r *Rod) Find(ctx context.Context, selector string) (Element, error) {
	p := r.page.Context(ctx).Sleeper(rod.NotFoundSleeper)

	el, err := first(p, selector)
	if err != nil {
		return nil, lookupFault("find "+selector, err)
	}
	return r.wrap(ctx, el), nil
}

func (r *Rod) FindAll(ctx context.Context, selector string) ([]Element, error) {
	p := r.page.Context(ctx)

	var (
		els rod.Elements
		err error
	)
	if IsXPath(selector) {
		els, err = p.ElementsX(selector)
	} else {
		els, err = p.Elements(selector)
	}
	if err != nil {
		return nil, lookupFault("find all "+selector, err)
	}

	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, r.wrap(ctx, el))
	}
	return out, nil
}

func (r *Rod) WaitFor(ctx context.Context, selector string, timeout time.Duration) (Element, error) {
	p := r.page.Context(ctx).Timeout(timeout)
	defer p.CancelTimeout()

	el, err := first(p, selector)
	if err != nil {
		return nil, lookupFault("wait for "+selector, err)
	}
	return r.wrap(ctx, el), nil
}

func (r *Rod) HTML(ctx context.Context) (string, error) {
	html, err := r.page.Context(ctx).HTML()
	if err != nil {
		return "", fault.New(fault.KindExtraction, "page html", err)
	}
	return html, nil
}

// Close tears down the page, the browser and any launched process. Safe to
// call more than once.
func (r *Rod) Close() error {
	var errs []error
	if r.page != nil {
		errs = append(errs, r.page.Close())
		r.page = nil
	}
	if r.browser != nil {
		errs = append(errs, r.browser.Close())
		r.browser = nil
	}
	r.cleanupLauncher()
	return errors.Join(errs...)
}

func (r *Rod) cleanupLauncher() {
	if r.launcher != nil {
		r.launcher.Kill()
		r.launcher.Cleanup()
		r.launcher = nil
	}
}

// wrap rebinds el to the caller's context, detaching it from any
// per-query timeout
func (r *Rod) wrap(ctx context.Context, el *rod.Element) Element {
	return &rodElement{el: el.Context(ctx), timeout: r.actionTimeout}
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

func first(p *rod.Page, selector string) (*rod.Element, error) {
	if IsXPath(selector) {
		return p.ElementX(selector)
	}
	return p.Element(selector)
}

func lookupFault(op string, err error) error {
	var nf *rod.ElementNotFoundError
	switch {
	case errors.As(err, &nf):
		return fault.NotFound(op, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fault.New(fault.KindNavigationTimeout, op, err)
	default:
		return fault.New(fault.KindUnexpected, op, err)
	}
}

func navFault(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fault.New(fault.KindNavigationTimeout, op, err)
	}
	return fault.New(fault.KindUnexpected, op, err)
}

type rodElement struct {
	el      *rod.Element
	timeout time.Duration
}

func (e *rodElement) Text() (string, error) {
	el := e.el.Timeout(e.timeout)
	defer el.CancelTimeout()

	text, err := el.Text()
	if err != nil {
		return "", fault.New(fault.KindExtraction, "element text", err)
	}
	return text, nil
}

func (e *rodElement) Attribute(name string) (string, error) {
	el := e.el.Timeout(e.timeout)
	defer el.CancelTimeout()

	v, err := el.Attribute(name)
	if err != nil {
		return "", fault.New(fault.KindExtraction, "element attribute "+name, err)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

func (e *rodElement) Click() error {
	el := e.el.Timeout(e.timeout)
	defer el.CancelTimeout()

	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return lookupFault("click", err)
	}
	return nil
}

func (e *rodElement) Input(text string) error {
	el := e.el.Timeout(e.timeout)
	defer el.CancelTimeout()

	if err := el.Input(text); err != nil {
		return lookupFault("input", err)
	}
	return nil
}
