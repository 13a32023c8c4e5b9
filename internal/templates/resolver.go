package templates

import (
	"strings"

	"github.com/jonathan/resume-composer/internal/types"
)

// Option adjusts a resolved layout
type Option func(*Layout)

// WithPageSize resolves the layout on a different page size.
func WithPageSize(size PageSize) Option {
	return func(l *Layout) {
		if size.Width > 0 && size.Height > 0 {
			l.Page = size
		}
	}
}

// WithATSSafe switches off decorative fills so the document parses cleanly in
// applicant tracking systems.
func WithATSSafe(enabled bool) Option {
	return func(l *Layout) {
		l.ATSSafe = enabled
	}
}

// Resolver maps template identifiers to layouts
type Resolver struct {
	templates []types.Template
	byID      map[string]int
	defaultID string
}

// NewResolver creates a resolver over the given templates. defaultID must name
// one of them; if it does not, the first template is the default.
func NewResolver(list []types.Template, defaultID string) *Resolver {
	r := &Resolver{
		templates: make([]types.Template, len(list)),
		byID:      make(map[string]int, len(list)),
	}
	for i, t := range list {
		t.Features = append([]string(nil), t.Features...)
		r.templates[i] = t
		r.byID[t.ID] = i
	}
	if _, ok := r.byID[defaultID]; ok {
		r.defaultID = defaultID
	} else if len(list) > 0 {
		r.defaultID = list[0].ID
	}
	return r
}

var defaultResolver = NewResolver(builtin, DefaultTemplateID)

// Default returns the resolver over the built-in gallery.
func Default() *Resolver {
	return defaultResolver
}

// Resolve returns the layout for a template id, or a *NotFoundError.
func (r *Resolver) Resolve(id string, opts ...Option) (Layout, error) {
	i, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return Layout{}, &NotFoundError{ID: id}
	}
	return r.build(r.templates[i], opts), nil
}

// ResolveOrDefault resolves id, falling back to the default layout. The
// returned error is the non-fatal *NotFoundError when the fallback was used.
func (r *Resolver) ResolveOrDefault(id string, opts ...Option) (Layout, error) {
	layout, err := r.Resolve(id, opts...)
	if err == nil {
		return layout, nil
	}
	if i, ok := r.byID[r.defaultID]; ok {
		return r.build(r.templates[i], opts), err
	}
	// Empty resolver: a bare single-column layout still renders.
	return r.build(types.Template{ID: "default", Name: "Default", Layout: types.LayoutSingleColumn, ColorScheme: types.SchemeProfessional}, opts), err
}

// Get returns the template descriptor for id.
func (r *Resolver) Get(id string) (types.Template, bool) {
	i, ok := r.byID[id]
	if !ok {
		return types.Template{}, false
	}
	t := r.templates[i]
	t.Features = append([]string(nil), t.Features...)
	return t, true
}

// List returns every template in gallery order.
func (r *Resolver) List() []types.Template {
	return r.ByCategory("all")
}

// ByCategory returns the templates in a category; "all" or "" returns every template.
func (r *Resolver) ByCategory(category string) []types.Template {
	category = strings.ToLower(strings.TrimSpace(category))
	out := make([]types.Template, 0, len(r.templates))
	for _, t := range r.templates {
		if category == "" || category == "all" || t.Category == category {
			t.Features = append([]string(nil), t.Features...)
			out = append(out, t)
		}
	}
	return out
}

func (r *Resolver) build(t types.Template, opts []Option) Layout {
	l := layoutFor(t, Letter)
	for _, opt := range opts {
		opt(&l)
	}
	l.arrange()
	return l.clone()
}

// Resolve resolves id against the built-in gallery.
func Resolve(id string, opts ...Option) (Layout, error) {
	return defaultResolver.Resolve(id, opts...)
}

// ResolveOrDefault resolves id against the built-in gallery with fallback.
func ResolveOrDefault(id string, opts ...Option) (Layout, error) {
	return defaultResolver.ResolveOrDefault(id, opts...)
}
