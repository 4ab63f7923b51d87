package gmaps

import (
	"context"
	"math/rand"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"

	"maps-scraper/config"
	"maps-scraper/models"
	"maps-scraper/utils"
)

const (
	navigateTimeout = 90 * time.Second
	actionTimeout   = 30 * time.Second
	resultsTimeout  = 10 * time.Second
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:122.0) Gecko/20100101 Firefox/122.0",
}

// Browser owns one Chrome process and hands out tabs as Sessions. It starts
// lazily on the first session and can be restarted after a crash.
type Browser struct {
	cfg    *config.Config
	logger *utils.Logger

	mu          sync.Mutex
	browserCtx  context.Context
	cancelAlloc context.CancelFunc
	cancelCtx   context.CancelFunc
}

func NewBrowser(cfg *config.Config, logger *utils.Logger) *Browser {
	return &Browser{cfg: cfg, logger: logger}
}

func (b *Browser) start() {
	chromeBin := b.cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	b.logger.Info("[gmaps] Starting browser (binary: %q, headless: %v)", chromeBin, b.cfg.Headless)

	ua := userAgents[0]
	if b.cfg.UserAgentRotation {
		ua = userAgents[rand.Intn(len(userAgents))]
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.cfg.Headless),
		chromedp.Flag("disable-gpu", !b.cfg.EnableGPU),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("lang", "en-US"),
		chromedp.WindowSize(b.cfg.WindowWidth, b.cfg.WindowHeight),
		chromedp.UserAgent(ua),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	// Suppress chromedp log noise
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	b.browserCtx = browserCtx
	b.cancelAlloc = cancelAlloc
	b.cancelCtx = cancelCtx
}

func (b *Browser) stop() {
	if b.cancelCtx != nil {
		b.cancelCtx()
	}
	if b.cancelAlloc != nil {
		b.cancelAlloc()
	}
	b.browserCtx, b.cancelCtx, b.cancelAlloc = nil, nil, nil
}

// NewSession opens a fresh tab.
func (b *Browser) NewSession(ctx context.Context) (Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browserCtx == nil {
		b.start()
	}
	tabCtx, cancel := chromedp.NewContext(b.browserCtx)
	// First Run allocates the browser and the tab.
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, eris.Wrap(err, "open browser tab")
	}
	return &chromeSession{ctx: tabCtx, cancel: cancel, cfg: b.cfg, logger: b.logger}, nil
}

// Restart kills the browser; the next session starts a new one.
func (b *Browser) Restart() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stop()
	b.start()
	b.logger.Info("[gmaps] Browser restarted")
	return nil
}

func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stop()
}

// chromeSession is one browser tab driven through chromedp.
type chromeSession struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config.Config
	logger *utils.Logger
}

// run executes actions on the tab, bounded by timeout and by the caller's
// context.
func (s *chromeSession) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	opCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(opCtx, actions...)
}

func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, navigateTimeout,
		chromedp.Navigate(url),
		chromedp.Sleep(s.cfg.PageLoadWait),
		chromedp.Evaluate(consentJS, nil),
	); err != nil {
		return eris.Wrapf(err, "navigate %s", url)
	}
	if err := s.run(ctx, resultsTimeout, chromedp.WaitVisible(`[role="main"]`, chromedp.ByQuery)); err != nil {
		s.logger.Warn("[gmaps] Results panel did not appear, continuing anyway")
	}
	return nil
}

func (s *chromeSession) Scroll(ctx context.Context) error {
	return s.run(ctx, actionTimeout,
		chromedp.Evaluate(scrollResultsJS, nil),
		chromedp.Sleep(s.cfg.ScrollDelay),
	)
}

func (s *chromeSession) AltScroll(ctx context.Context) error {
	return s.run(ctx, actionTimeout,
		chromedp.Evaluate(altScrollJS, nil),
		chromedp.Sleep(2*s.cfg.ScrollDelay),
	)
}

func (s *chromeSession) CountCards(ctx context.Context) (int, error) {
	var n int
	err := s.run(ctx, actionTimeout, chromedp.Evaluate(countCardsJS, &n))
	return n, err
}

func (s *chromeSession) EndOfList(ctx context.Context) (bool, error) {
	var end bool
	err := s.run(ctx, actionTimeout, chromedp.Evaluate(endOfListJS, &end))
	return end, err
}

func (s *chromeSession) Cards(ctx context.Context) ([]*models.RawListing, error) {
	var cards []*models.RawListing
	if err := s.run(ctx, actionTimeout, chromedp.Evaluate(extractCardsJS, &cards)); err != nil {
		return nil, eris.Wrap(err, "extract cards")
	}
	return cards, nil
}

func (s *chromeSession) OpenDetail(ctx context.Context, index int) (*Detail, error) {
	var clicked bool
	if err := s.run(ctx, actionTimeout,
		chromedp.Evaluate(clickCardJS(index), &clicked),
	); err != nil {
		return nil, eris.Wrapf(err, "click card %d", index)
	}
	if !clicked {
		return nil, eris.Errorf("card %d not found", index)
	}

	var d Detail
	if err := s.run(ctx, actionTimeout,
		chromedp.Sleep(s.cfg.DetailWait),
		chromedp.Evaluate(detailPanelJS, &d),
	); err != nil {
		return nil, eris.Wrapf(err, "read detail panel %d", index)
	}
	return &d, nil
}

func (s *chromeSession) Close() {
	s.cancel()
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
