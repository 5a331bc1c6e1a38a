package model

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func baseConfig() Config {
	return Config{
		NavWidth:       Fixed(256),
		NavAnchor:      AnchorLeft,
		NavVariant:     At(map[Breakpoint]Variant{XS: VariantTemporary, SM: VariantPermanent}),
		Collapsible:    At(map[Breakpoint]bool{XS: false, SM: true}),
		CollapsedWidth: 64,
		HeaderPosition: HeaderRelative,
		FooterShrink:   true,
	}
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	c := baseConfig()
	c.Extra = map[string]any{"a": 1}

	out := c.Apply(Overrides{
		CollapsedWidth: Ptr(40),
		Extra:          map[string]any{"a": 2, "b": 3},
	})

	if c.CollapsedWidth != 64 || c.Extra["a"] != 1 || len(c.Extra) != 1 {
		t.Errorf("receiver was modified: %+v", c)
	}
	if out.CollapsedWidth != 40 || out.Extra["a"] != 2 || out.Extra["b"] != 3 {
		t.Errorf("overrides not applied: %+v", out)
	}
}

func TestApplyZeroOverridesIsIdentity(t *testing.T) {
	c := baseConfig()
	if !c.Apply(Overrides{}).Equal(c) {
		t.Error("empty overrides should leave config unchanged")
	}
}

func TestParseOverridesKnownAndUnknownKeys(t *testing.T) {
	o, err := ParseOverrides(map[string]any{
		"navWidth":       map[string]any{"sm": 200, "md": 256},
		"navAnchor":      "right",
		"navVariant":     "persistent",
		"collapsible":    false,
		"collapsedWidth": 48,
		"headerPosition": "sticky",
		"squeezed":       true,
		"footerHeight":   2,
		"brand":          map[string]any{"title": "ops"},
	})
	if err != nil {
		t.Fatalf("ParseOverrides: %v", err)
	}

	c := baseConfig().Apply(o)
	if c.NavWidth.Resolve(SM) != 200 || c.NavWidth.Resolve(LG) != 256 {
		t.Errorf("navWidth: %v", c.NavWidth)
	}
	if c.NavAnchor != AnchorRight {
		t.Errorf("navAnchor: %s", c.NavAnchor)
	}
	if c.NavVariant.IsKeyed() || c.NavVariant.Resolve(XS) != VariantPersistent {
		t.Errorf("navVariant: %v", c.NavVariant)
	}
	if c.Collapsible.Resolve(XL) {
		t.Errorf("collapsible: %v", c.Collapsible)
	}
	if c.CollapsedWidth != 48 || !c.Squeezed || c.HeaderPosition != HeaderSticky {
		t.Errorf("scalars not applied: %+v", c)
	}
	if c.Extra["footerHeight"] != 2 {
		t.Errorf("unknown key dropped: %v", c.Extra)
	}
	if _, ok := c.Extra["brand"].(map[string]any); !ok {
		t.Errorf("nested unknown value should pass through untouched: %v", c.Extra["brand"])
	}
	if o.Clipped != nil || o.FooterShrink != nil {
		t.Error("absent keys should stay nil")
	}
}

func TestParseOverridesRejectsMalformedKnownKeys(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"bad anchor", map[string]any{"navAnchor": "middle"}},
		{"bad variant", map[string]any{"navVariant": map[string]any{"xs": "floating"}}},
		{"bad width", map[string]any{"navWidth": "wide"}},
		{"bad breakpoint", map[string]any{"collapsible": map[string]any{"xxl": true}}},
		{"bad bool", map[string]any{"clipped": "yes please"}},
		{"bad header", map[string]any{"headerPosition": "floating"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOverrides(tt.raw)
			if !errors.Is(err, ErrInvalidValue) {
				t.Errorf("expected ErrInvalidValue, got %v", err)
			}
		})
	}
}

func TestConfigMapRoundTrip(t *testing.T) {
	c := baseConfig()
	c.Extra = map[string]any{"footerHeight": 2}

	o, err := ParseOverrides(c.Map())
	if err != nil {
		t.Fatalf("ParseOverrides(Map()): %v", err)
	}
	back := Config{}.Apply(o)
	if !back.Equal(c) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, c)
	}
}

func TestConfigYAMLKeepsExtraKeys(t *testing.T) {
	src := `
navWidth: {sm: 200, md: 256}
navAnchor: left
navVariant: temporary
collapsible: false
collapsedWidth: 64
clipped: true
headerPosition: sticky
squeezed: false
footerShrink: true
accent: purple
`
	var c Config
	if err := yaml.Unmarshal([]byte(src), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c.Extra["accent"] != "purple" {
		t.Errorf("extra key lost: %v", c.Extra)
	}
	if c.NavWidth.Resolve(MD) != 256 || !c.Clipped {
		t.Errorf("unexpected config: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	c := baseConfig()
	c.NavAnchor = "middle"
	c.CollapsedWidth = -1
	err := c.Validate()
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}

	c = baseConfig()
	c.Extra = map[string]any{"anything": struct{}{}}
	if err := c.Validate(); err != nil {
		t.Errorf("extra keys must not fail validation: %v", err)
	}
}

func TestFullConfigResolves(t *testing.T) {
	var opened []bool
	fc := FullConfig{
		Config:     baseConfig(),
		Breakpoint: XS,
		SetOpened:  func(v bool) { opened = append(opened, v) },
	}
	if fc.Variant() != VariantTemporary || fc.IsCollapsible() {
		t.Errorf("xs should be temporary and not collapsible")
	}
	fc.Breakpoint = MD
	if fc.Variant() != VariantPermanent || !fc.IsCollapsible() || fc.Width() != 256 {
		t.Errorf("md should be permanent, collapsible, 256 wide")
	}

	fc.Open(false)
	fc.Collapse(true) // nil setter is a no-op
	if len(opened) != 1 || opened[0] {
		t.Errorf("expected one SetOpened(false), got %v", opened)
	}
}
