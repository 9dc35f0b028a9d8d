// Package identity resolves bearer tokens to annotators from the configured
// roster. Tokens are opaque static credentials issued out of band; the rest
// of the service trusts a resolved identity unconditionally.
package identity

import (
	"errors"
	"sort"
	"strings"

	"furrow/internal/config"
)

// Roles an annotator can hold.
const (
	RoleAdmin     = "admin"
	RoleAnnotator = "annotator"
)

// ErrUnknownToken is returned when no roster entry matches a credential.
var ErrUnknownToken = errors.New("unknown token")

// Annotator is a resolved identity.
type Annotator struct {
	ID     string
	Name   string
	Role   string
	Active bool
}

// IsAdmin reports whether the annotator may call admin operations.
func (a Annotator) IsAdmin() bool { return a.Role == RoleAdmin }

// DisplayName returns the name, falling back to the ID.
func (a Annotator) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

// Provider looks up annotators by credential or ID.
type Provider interface {
	// Lookup resolves a bearer token. Inactive annotators still resolve;
	// callers decide whether to admit them.
	Lookup(token string) (Annotator, error)
	// ByID returns the annotator with the given ID.
	ByID(id string) (Annotator, bool)
	// List returns the full roster sorted by ID.
	List() []Annotator
}

type staticProvider struct {
	byToken map[string]Annotator
	byID    map[string]Annotator
	roster  []Annotator
}

// FromConfig builds a provider over the config roster. The roster is
// validated at load time, so duplicate IDs and tokens cannot occur here.
func FromConfig(cfg *config.Config) Provider {
	p := &staticProvider{
		byToken: make(map[string]Annotator, len(cfg.Annotators)),
		byID:    make(map[string]Annotator, len(cfg.Annotators)),
	}
	for _, entry := range cfg.Annotators {
		a := Annotator{
			ID:     entry.ID,
			Name:   entry.Name,
			Role:   entry.Role,
			Active: entry.Active,
		}
		p.byToken[entry.Token] = a
		p.byID[entry.ID] = a
		p.roster = append(p.roster, a)
	}
	sort.Slice(p.roster, func(i, j int) bool { return p.roster[i].ID < p.roster[j].ID })
	return p
}

func (p *staticProvider) Lookup(token string) (Annotator, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Annotator{}, ErrUnknownToken
	}
	a, ok := p.byToken[token]
	if !ok {
		return Annotator{}, ErrUnknownToken
	}
	return a, nil
}

func (p *staticProvider) ByID(id string) (Annotator, bool) {
	a, ok := p.byID[id]
	return a, ok
}

func (p *staticProvider) List() []Annotator {
	out := make([]Annotator, len(p.roster))
	copy(out, p.roster)
	return out
}
