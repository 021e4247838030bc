// Package browser оборачивает playwright в минимальный интерфейс страницы.
package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// ErrTimeout возвращается, когда браузер не дождался загрузки страницы
var ErrTimeout = errors.New("browser timeout")

// Page одна вкладка браузера, которой владеет один воркер
type Page interface {
	// Goto переходит по адресу и ждет загрузки
	Goto(url string) error
	// URL текущий адрес страницы
	URL() string
	// Attributes значения атрибута у всех элементов по селектору
	Attributes(selector, name string) ([]string, error)
	// Text текст первого элемента по селектору
	Text(selector string) (string, error)
	Close() error
}

// Launcher открывает новую сессию браузера
type Launcher interface {
	Launch() (Page, error)
}

// Config настройки запуска браузера
type Config struct {
	Engine   string
	Headless bool
	Timeout  time.Duration
}

// Playwright запускает отдельный процесс playwright и браузер на каждую сессию
type Playwright struct {
	config Config
	logger *zap.Logger
}

// NewPlaywright создает Launcher на базе playwright
func NewPlaywright(config Config, logger *zap.Logger) *Playwright {
	if config.Engine == "" {
		config.Engine = "firefox"
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	return &Playwright{config: config, logger: logger}
}

// Install скачивает драйвер и браузер, если их еще нет
func (p *Playwright) Install() error {
	return playwright.Install(&playwright.RunOptions{
		Browsers: []string{p.config.Engine},
	})
}

// Launch запускает браузер и открывает в нем страницу
func (p *Playwright) Launch() (Page, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType, err := p.browserType(pw)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}

	timeoutMs := float64(p.config.Timeout.Milliseconds())
	options := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(p.config.Headless),
	}
	if p.config.Engine == "firefox" {
		seconds := int(p.config.Timeout.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		options.FirefoxUserPrefs = map[string]interface{}{
			"dom.ipc.plugins.enabled.libflashplayer.so": false,
			"media.peerconnection.enabled":              false,
			"http.response.timeout":                     seconds,
			"dom.max_script_run_time":                   seconds,
		}
	}

	browser, err := browserType.Launch(options)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", p.config.Engine, err)
	}

	page, err := browser.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	page.SetDefaultNavigationTimeout(timeoutMs)
	page.SetDefaultTimeout(timeoutMs)

	p.logger.Debug("Browser session started", zap.String("engine", p.config.Engine), zap.Bool("headless", p.config.Headless))

	return &session{pw: pw, browser: browser, page: page, logger: p.logger}, nil
}

func (p *Playwright) browserType(pw *playwright.Playwright) (playwright.BrowserType, error) {
	switch p.config.Engine {
	case "firefox":
		return pw.Firefox, nil
	case "chromium":
		return pw.Chromium, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser engine: %s", p.config.Engine)
	}
}

// session владеет процессом playwright, браузером и страницей
type session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	logger  *zap.Logger
}

func (s *session) Goto(url string) error {
	if _, err := s.page.Goto(url); err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return fmt.Errorf("%w: %s", ErrTimeout, url)
		}
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

func (s *session) URL() string {
	return s.page.URL()
}

func (s *session) Attributes(selector, name string) ([]string, error) {
	locators, err := s.page.Locator(selector).All()
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s: %w", selector, err)
	}

	values := make([]string, 0, len(locators))
	for _, locator := range locators {
		value, err := locator.GetAttribute(name)
		if err != nil {
			s.logger.Debug("Failed to read attribute", zap.String("selector", selector), zap.Error(err))
			value = ""
		}
		values = append(values, value)
	}
	return values, nil
}

func (s *session) Text(selector string) (string, error) {
	locator := s.page.Locator(selector).First()

	count, err := s.page.Locator(selector).Count()
	if err != nil {
		return "", fmt.Errorf("failed to locate %s: %w", selector, err)
	}
	if count == 0 {
		return "", fmt.Errorf("no element matches %s", selector)
	}

	text, err := locator.InnerText()
	if err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", selector, err)
	}
	return text, nil
}

func (s *session) Close() error {
	var errs []error
	if err := s.browser.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.pw.Stop(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
