package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before the browser is
// relaunched. Chrome memory grows with every page and never returns to
// its baseline.
const DefaultMaxPages = 75

// browser owns a headless Chrome process and relaunches it after
// maxPages renders. It is safe for concurrent use.
type browser struct {
	mu       sync.Mutex
	b        *rod.Browser
	l        *launcher.Launcher
	pages    int64
	maxPages int64
}

func newBrowser(maxPages int64) (*browser, error) {
	br := &browser{maxPages: maxPages}
	if err := br.launch(); err != nil {
		return nil, err
	}
	return br, nil
}

// acquire returns the browser to use for the next page, relaunching it
// first when the page budget is spent. A failed relaunch keeps the old
// process.
func (br *browser) acquire() *rod.Browser {
	br.mu.Lock()
	defer br.mu.Unlock()

	if br.maxPages > 0 && br.pages >= br.maxPages {
		oldB, oldL := br.b, br.l
		if err := br.launch(); err == nil {
			_ = oldB.Close()
			oldL.Kill()
			br.pages = 0
		}
	}
	br.pages++
	return br.b
}

func (br *browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	br.b, br.l = b, l
	return nil
}

func (br *browser) close() error {
	br.mu.Lock()
	defer br.mu.Unlock()

	var err error
	if br.b != nil {
		err = br.b.Close()
		br.b = nil
	}
	if br.l != nil {
		br.l.Kill()
		br.l = nil
	}
	return err
}

func (br *browser) pid() int {
	br.mu.Lock()
	defer br.mu.Unlock()
	if br.l == nil {
		return 0
	}
	return br.l.PID()
}
