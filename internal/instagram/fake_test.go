package instagram

import (
	"context"
	"errors"
	"time"

	"github.com/ppiankov/adscout/internal/browser"
	"github.com/ppiankov/adscout/internal/fault"
)

type fakeElement struct {
	text    string
	attrs   map[string]string
	onClick func()
	clicks  int
	typed   string
	textErr error
}

func (e *fakeElement) Text() (string, error) {
	if e.textErr != nil {
		return "", e.textErr
	}
	return e.text, nil
}

func (e *fakeElement) Attribute(name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) Click() error {
	e.clicks++
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) Input(text string) error {
	e.typed += text
	return nil
}

// fakeSession serves elements by selector. Pages keyed by URL replace the
// element set on navigation; elements not tied to a page stay global.
type fakeSession struct {
	pages   map[string]map[string][]*fakeElement
	html    map[string]string
	global  map[string][]*fakeElement
	navErr  map[string]error
	visited []string
	current string
	closed  bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		pages:  make(map[string]map[string][]*fakeElement),
		html:   make(map[string]string),
		global: make(map[string][]*fakeElement),
		navErr: make(map[string]error),
	}
}

func (s *fakeSession) on(url, selector string, els ...*fakeElement) {
	if s.pages[url] == nil {
		s.pages[url] = make(map[string][]*fakeElement)
	}
	s.pages[url][selector] = append(s.pages[url][selector], els...)
}

func (s *fakeSession) elements(selector string) []*fakeElement {
	if els, ok := s.pages[s.current][selector]; ok {
		return els
	}
	return s.global[selector]
}

func (s *fakeSession) Navigate(_ context.Context, url string) error {
	s.visited = append(s.visited, url)
	if err := s.navErr[url]; err != nil {
		return err
	}
	s.current = url
	return nil
}

func (s *fakeSession) Find(_ context.Context, selector string) (browser.Element, error) {
	els := s.elements(selector)
	if len(els) == 0 {
		return nil, fault.NotFound("find "+selector, errors.New("element not found"))
	}
	return els[0], nil
}

func (s *fakeSession) FindAll(_ context.Context, selector string) ([]browser.Element, error) {
	els := s.elements(selector)
	out := make([]browser.Element, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out, nil
}

func (s *fakeSession) WaitFor(ctx context.Context, selector string, _ time.Duration) (browser.Element, error) {
	return s.Find(ctx, selector)
}

func (s *fakeSession) HTML(context.Context) (string, error) {
	return s.html[s.current], nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func link(href string) *fakeElement {
	return &fakeElement{attrs: map[string]string{"href": href}}
}

func text(s string) *fakeElement {
	return &fakeElement{text: s}
}
