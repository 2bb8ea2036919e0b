package fetcher

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"barber-prices/logger"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodFetcher implements PageFetcher with a headless browser, for booking
// widgets that render their price list with JavaScript
type RodFetcher struct {
	timeout time.Duration
	log     *logger.Logger

	mu      sync.Mutex
	browser *rod.Browser
}

// NewRodFetcher creates a RodFetcher. The browser is launched on the first fetch.
func NewRodFetcher(timeout time.Duration, log *logger.Logger) *RodFetcher {
	return &RodFetcher{timeout: timeout, log: log}
}

// connect launches and connects the browser once
func (rf *RodFetcher) connect() (*rod.Browser, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.browser != nil {
		return rf.browser, nil
	}

	l := launcher.New().
		Headless(true).
		Set("disable-blink-features", "AutomationControlled").
		NoSandbox(true).
		Leakless(false).
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("disable-extensions").
		Set("mute-audio")

	// Prefer a system Chrome/Chromium over downloading one
	for _, path := range []string{
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/snap/bin/chromium",
	} {
		if _, err := os.Stat(path); err == nil {
			l = l.Bin(path)
			break
		}
	}

	browserURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	rf.log.Info("headless browser started", "control_url", browserURL)
	rf.browser = browser
	return browser, nil
}

// Close closes the browser if it was started
func (rf *RodFetcher) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.browser == nil {
		return nil
	}
	err := rf.browser.Close()
	rf.browser = nil
	return err
}

// Fetch implements the PageFetcher interface
func (rf *RodFetcher) Fetch(ctx context.Context, url string) (string, error) {
	browser, err := rf.connect()
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	if rf.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rf.timeout)
		defer cancel()
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("failed to open page: %w", err)}
	}
	defer page.Close()

	if err := page.Navigate(url); err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("failed to navigate: %w", err)}
	}
	if err := page.WaitLoad(); err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("failed to load: %w", err)}
	}

	// Booking widgets fill in prices after load
	if err := page.WaitStable(500 * time.Millisecond); err != nil {
		if ctx.Err() != nil {
			return "", &FetchError{URL: url, Err: ctx.Err()}
		}
		rf.log.Warn("page did not stabilize, continuing anyway", "url", url, "error", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("failed to get HTML: %w", err)}
	}

	text, err := ExtractText(html)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	return text, nil
}
