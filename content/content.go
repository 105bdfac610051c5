// Package content holds the site's page copy and card catalog: per route a
// title, a Markdown intro and the cards shown on that page.
package content

import (
	"fmt"

	"github.com/eringen/skillsite/card"
)

// Component is the label used in card validation messages.
const Component = "Card"

// Page is the content of one route.
type Page struct {
	Path        string
	Title       string
	Description string
	Intro       string // Markdown
	Cards       []Entry
}

// Entry is a card placed on a page. IDs are unique across the site.
type Entry struct {
	ID   string
	Card card.Config
}

// Site is a loaded content catalog.
type Site struct {
	order []string
	pages map[string]Page
	cards map[string]card.Config
}

// Page returns the content for path.
func (s *Site) Page(path string) (Page, bool) {
	p, ok := s.pages[path]
	return p, ok
}

// Pages returns all pages in the order they were declared.
func (s *Site) Pages() []Page {
	out := make([]Page, 0, len(s.order))
	for _, path := range s.order {
		out = append(out, s.pages[path])
	}
	return out
}

// Card returns the configuration of the card with the given id.
func (s *Site) Card(id string) (card.Config, bool) {
	c, ok := s.cards[id]
	return c, ok
}

// Problem is an advisory validation message for one card.
type Problem struct {
	Page string
	Card string
	Err  error
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: card %q: %v", p.Page, p.Card, p.Err)
}

// Check validates every card in the catalog. Problems never stop a card
// from rendering; they are meant for development warnings and the CLI.
func (s *Site) Check() []Problem {
	var problems []Problem
	for _, page := range s.Pages() {
		for _, e := range page.Cards {
			for _, err := range card.Check(e.Card, Component) {
				problems = append(problems, Problem{Page: page.Path, Card: e.ID, Err: err})
			}
		}
	}
	return problems
}

func newSite(pages []Page) (*Site, error) {
	s := &Site{
		pages: make(map[string]Page, len(pages)),
		cards: make(map[string]card.Config),
	}
	for _, p := range pages {
		if p.Path == "" || p.Path[0] != '/' {
			return nil, fmt.Errorf("page %q: path must start with /", p.Path)
		}
		if _, dup := s.pages[p.Path]; dup {
			return nil, fmt.Errorf("page %s declared twice", p.Path)
		}
		for i, e := range p.Cards {
			if e.ID == "" {
				return nil, fmt.Errorf("page %s: card %d has no id", p.Path, i+1)
			}
			if _, dup := s.cards[e.ID]; dup {
				return nil, fmt.Errorf("page %s: card id %q already used", p.Path, e.ID)
			}
			s.cards[e.ID] = e.Card
		}
		s.pages[p.Path] = p
		s.order = append(s.order, p.Path)
	}
	return s, nil
}
