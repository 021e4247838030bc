package discovery

import (
	"errors"
	"fmt"
	"sync"

	"scrapekit/internal/gateway/browser"
)

// fakeSite описывает страницы, которые видит фейковый браузер
type fakeSite struct {
	mu sync.Mutex
	// redirects поиск сразу ведет на профиль
	redirects map[string]string
	// results ссылки в выдаче поиска
	results map[string][]string
	// titles заголовок h1 по адресу
	titles map[string]string
	// last ссылка на последнюю страницу по адресу
	last map[string]string
	// timeouts сколько раз подряд Goto по адресу вернет таймаут
	timeouts map[string]int
	// failures адреса, которые всегда падают
	failures map[string]bool
}

type fakePage struct {
	site    *fakeSite
	current string
	visits  []string
	closed  bool
}

func newFakePage(site *fakeSite) *fakePage {
	return &fakePage{site: site}
}

func (p *fakePage) Goto(url string) error {
	p.site.mu.Lock()
	defer p.site.mu.Unlock()

	p.visits = append(p.visits, url)
	if p.site.failures[url] {
		return errors.New("connection refused")
	}
	if p.site.timeouts[url] > 0 {
		p.site.timeouts[url]--
		return fmt.Errorf("%w: %s", browser.ErrTimeout, url)
	}
	if target, ok := p.site.redirects[url]; ok {
		p.current = target
		return nil
	}
	p.current = url
	return nil
}

func (p *fakePage) URL() string {
	return p.current
}

func (p *fakePage) Attributes(selector, name string) ([]string, error) {
	cfg := Config{}.withDefaults()
	switch selector {
	case cfg.ResultSelector:
		return p.site.results[p.current], nil
	case cfg.LastPageSelector:
		if href, ok := p.site.last[p.current]; ok {
			return []string{href}, nil
		}
		return nil, nil
	}
	return nil, fmt.Errorf("unexpected selector %s", selector)
}

func (p *fakePage) Text(selector string) (string, error) {
	title, ok := p.site.titles[p.current]
	if !ok {
		return "", errors.New("no h1")
	}
	return title, nil
}

func (p *fakePage) Close() error {
	p.closed = true
	return nil
}

// fakeLauncher выдает новую страницу на каждый запуск
type fakeLauncher struct {
	mu    sync.Mutex
	site  *fakeSite
	pages []*fakePage
	fail  bool
}

func (l *fakeLauncher) Launch() (browser.Page, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fail {
		return nil, errors.New("geckodriver not found")
	}
	page := newFakePage(l.site)
	l.pages = append(l.pages, page)
	return page, nil
}
