package model

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidValue is returned when a known layout key carries a value of the
// wrong shape.
var ErrInvalidValue = errors.New("invalid layout value")

// Anchor is the viewport edge the navigation panel attaches to.
type Anchor string

const (
	AnchorLeft   Anchor = "left"
	AnchorRight  Anchor = "right"
	AnchorTop    Anchor = "top"
	AnchorBottom Anchor = "bottom"
)

// Validate rejects unknown anchors.
func (a Anchor) Validate() error {
	switch a {
	case AnchorLeft, AnchorRight, AnchorTop, AnchorBottom:
		return nil
	}
	return fmt.Errorf("%w: unknown anchor %q", ErrInvalidValue, string(a))
}

// Horizontal reports whether the panel sits on the left or right edge.
func (a Anchor) Horizontal() bool {
	return a == AnchorLeft || a == AnchorRight
}

// Variant is the interaction mode of the navigation panel.
type Variant string

const (
	// VariantTemporary overlays the content and can be dismissed.
	VariantTemporary Variant = "temporary"
	// VariantPermanent is always visible.
	VariantPermanent Variant = "permanent"
	// VariantPersistent is toggled open and closed without an overlay.
	VariantPersistent Variant = "persistent"
)

// Validate rejects unknown variants.
func (v Variant) Validate() error {
	switch v {
	case VariantTemporary, VariantPermanent, VariantPersistent:
		return nil
	}
	return fmt.Errorf("%w: unknown variant %q", ErrInvalidValue, string(v))
}

// HeaderPosition is consumed by the shell header, not by the panel.
type HeaderPosition string

const (
	HeaderRelative HeaderPosition = "relative"
	HeaderSticky   HeaderPosition = "sticky"
	HeaderFixed    HeaderPosition = "fixed"
	HeaderAbsolute HeaderPosition = "absolute"
	HeaderStatic   HeaderPosition = "static"
)

// Validate rejects unknown header positions.
func (h HeaderPosition) Validate() error {
	switch h {
	case HeaderRelative, HeaderSticky, HeaderFixed, HeaderAbsolute, HeaderStatic:
		return nil
	}
	return fmt.Errorf("%w: unknown header position %q", ErrInvalidValue, string(h))
}

// Pinned reports whether the header stays on screen while content scrolls.
func (h HeaderPosition) Pinned() bool {
	return h == HeaderSticky || h == HeaderFixed
}

// Layout keys as they appear in config files and override maps.
const (
	KeyNavWidth       = "navWidth"
	KeyNavAnchor      = "navAnchor"
	KeyNavVariant     = "navVariant"
	KeyCollapsible    = "collapsible"
	KeyCollapsedWidth = "collapsedWidth"
	KeyClipped        = "clipped"
	KeyHeaderPosition = "headerPosition"
	KeySqueezed       = "squeezed"
	KeyFooterShrink   = "footerShrink"
)

// Config describes a navigation layout. Widths are in layout pixels.
type Config struct {
	NavWidth       Responsive[int]     `yaml:"navWidth"`
	NavAnchor      Anchor              `yaml:"navAnchor"`
	NavVariant     Responsive[Variant] `yaml:"navVariant"`
	Collapsible    Responsive[bool]    `yaml:"collapsible"`
	CollapsedWidth int                 `yaml:"collapsedWidth"`

	// Chrome flags read by the shell around the panel.
	Clipped        bool           `yaml:"clipped"`
	HeaderPosition HeaderPosition `yaml:"headerPosition"`
	Squeezed       bool           `yaml:"squeezed"`
	FooterShrink   bool           `yaml:"footerShrink"`

	// Extra carries keys this package does not know about.
	Extra map[string]any `yaml:",inline"`
}

// Overrides is a partial Config. Nil fields are not supplied.
type Overrides struct {
	NavWidth       *Responsive[int]
	NavAnchor      *Anchor
	NavVariant     *Responsive[Variant]
	Collapsible    *Responsive[bool]
	CollapsedWidth *int
	Clipped        *bool
	HeaderPosition *HeaderPosition
	Squeezed       *bool
	FooterShrink   *bool
	Extra          map[string]any
}

// Ptr returns a pointer to v. Handy for building Overrides literals.
func Ptr[T any](v T) *T {
	return &v
}

// IsZero reports whether no field is supplied.
func (o Overrides) IsZero() bool {
	return o.NavWidth == nil && o.NavAnchor == nil && o.NavVariant == nil &&
		o.Collapsible == nil && o.CollapsedWidth == nil && o.Clipped == nil &&
		o.HeaderPosition == nil && o.Squeezed == nil && o.FooterShrink == nil &&
		len(o.Extra) == 0
}

// Keys returns the layout keys o supplies, in a stable order.
func (o Overrides) Keys() []string {
	var keys []string
	add := func(set bool, k string) {
		if set {
			keys = append(keys, k)
		}
	}
	add(o.NavWidth != nil, KeyNavWidth)
	add(o.NavAnchor != nil, KeyNavAnchor)
	add(o.NavVariant != nil, KeyNavVariant)
	add(o.Collapsible != nil, KeyCollapsible)
	add(o.CollapsedWidth != nil, KeyCollapsedWidth)
	add(o.Clipped != nil, KeyClipped)
	add(o.HeaderPosition != nil, KeyHeaderPosition)
	add(o.Squeezed != nil, KeySqueezed)
	add(o.FooterShrink != nil, KeyFooterShrink)
	return append(keys, sortedKeys(o.Extra)...)
}

// Apply returns c with every supplied field of o replacing the whole value
// of the matching field. Breakpoint-keyed values are replaced, never merged
// per breakpoint. c is not modified.
func (c Config) Apply(o Overrides) Config {
	out := c
	out.Extra = copyMap(c.Extra)
	if o.NavWidth != nil {
		out.NavWidth = *o.NavWidth
	}
	if o.NavAnchor != nil {
		out.NavAnchor = *o.NavAnchor
	}
	if o.NavVariant != nil {
		out.NavVariant = *o.NavVariant
	}
	if o.Collapsible != nil {
		out.Collapsible = *o.Collapsible
	}
	if o.CollapsedWidth != nil {
		out.CollapsedWidth = *o.CollapsedWidth
	}
	if o.Clipped != nil {
		out.Clipped = *o.Clipped
	}
	if o.HeaderPosition != nil {
		out.HeaderPosition = *o.HeaderPosition
	}
	if o.Squeezed != nil {
		out.Squeezed = *o.Squeezed
	}
	if o.FooterShrink != nil {
		out.FooterShrink = *o.FooterShrink
	}
	for k, v := range o.Extra {
		if out.Extra == nil {
			out.Extra = make(map[string]any, len(o.Extra))
		}
		out.Extra[k] = v
	}
	return out
}

// Equal reports whether two configs are structurally equal. Extra values are
// compared with fmt formatting.
func (c Config) Equal(o Config) bool {
	if !c.NavWidth.Equal(o.NavWidth) || !c.NavVariant.Equal(o.NavVariant) ||
		!c.Collapsible.Equal(o.Collapsible) {
		return false
	}
	if c.NavAnchor != o.NavAnchor || c.CollapsedWidth != o.CollapsedWidth ||
		c.Clipped != o.Clipped || c.HeaderPosition != o.HeaderPosition ||
		c.Squeezed != o.Squeezed || c.FooterShrink != o.FooterShrink {
		return false
	}
	if len(c.Extra) != len(o.Extra) {
		return false
	}
	for k, v := range c.Extra {
		ov, ok := o.Extra[k]
		if !ok || fmt.Sprint(v) != fmt.Sprint(ov) {
			return false
		}
	}
	return true
}

// Map returns the generic key/value form of c.
func (c Config) Map() map[string]any {
	m := map[string]any{
		KeyNavWidth:       c.NavWidth.Raw(),
		KeyNavAnchor:      string(c.NavAnchor),
		KeyNavVariant:     variantRaw(c.NavVariant),
		KeyCollapsible:    c.Collapsible.Raw(),
		KeyCollapsedWidth: c.CollapsedWidth,
		KeyClipped:        c.Clipped,
		KeyHeaderPosition: string(c.HeaderPosition),
		KeySqueezed:       c.Squeezed,
		KeyFooterShrink:   c.FooterShrink,
	}
	for k, v := range c.Extra {
		m[k] = v
	}
	return m
}

// Validate checks enum fields and widths. Extra keys are never rejected.
func (c Config) Validate() error {
	var errs []error
	if err := c.NavAnchor.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.HeaderPosition.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, bp := range Breakpoints {
		if err := c.NavVariant.Resolve(bp).Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s at %s: %w", KeyNavVariant, bp, err))
			break
		}
	}
	if c.NavWidth.Any(func(w int) bool { return w < 0 }) {
		errs = append(errs, fmt.Errorf("%w: %s must not be negative", ErrInvalidValue, KeyNavWidth))
	}
	if c.CollapsedWidth < 0 {
		errs = append(errs, fmt.Errorf("%w: %s must not be negative", ErrInvalidValue, KeyCollapsedWidth))
	}
	return errors.Join(errs...)
}

func variantRaw(r Responsive[Variant]) any {
	if v, ok := r.Scalar(); ok {
		return string(v)
	}
	m := make(map[string]any)
	for _, k := range r.Keys() {
		v, _ := r.Lookup(k)
		m[k.String()] = string(v)
	}
	return m
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
