// Package preset provides named layout factories for the navigation shell.
//
// Every factory builds a complete model.Config. Presets that specialize the
// default start from DefaultLayout with no overrides, apply their own fields,
// and apply the caller's overrides last, so a caller override is never
// shadowed by a preset's specialization.
package preset

import (
	"errors"
	"fmt"

	"github.com/Dicklesworthstone/navshell/pkg/model"
)

// Factory builds a layout from optional overrides.
type Factory func(model.Overrides) model.Config

// ErrUnknownPreset is returned by Lookup for names not in the registry.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset names.
const (
	NameDefault      = "default"
	NameFixed        = "fixed"
	NameContentBased = "content-based"
	NameCozy         = "cozy"
	NameMuiTreasury  = "mui-treasury"
)

var registry = map[string]Factory{
	NameDefault:      DefaultLayout,
	NameFixed:        FixedLayout,
	NameContentBased: ContentBasedLayout,
	NameCozy:         CozyLayout,
	NameMuiTreasury:  MuiTreasuryLayout,
}

// order is the display order for Names.
var order = []string{NameDefault, NameFixed, NameContentBased, NameCozy, NameMuiTreasury}

// DefaultLayout is the base preset: a 256px left drawer that is temporary on
// extra-small screens and permanent from small up, collapsible to 64px from
// small up.
func DefaultLayout(o model.Overrides) model.Config {
	return model.Config{
		NavWidth:  model.Fixed(256),
		NavAnchor: model.AnchorLeft,
		NavVariant: model.At(map[model.Breakpoint]model.Variant{
			model.XS: model.VariantTemporary,
			model.SM: model.VariantPermanent,
		}),
		Collapsible: model.At(map[model.Breakpoint]bool{
			model.XS: false,
			model.SM: true,
		}),
		CollapsedWidth: 64,
		Clipped:        false,
		HeaderPosition: model.HeaderRelative,
		Squeezed:       false,
		FooterShrink:   true,
	}.Apply(o)
}

// FixedLayout moves the variant and collapse thresholds to medium, clips the
// drawer under a sticky header and squeezes the content.
func FixedLayout(o model.Overrides) model.Config {
	return DefaultLayout(model.Overrides{}).Apply(model.Overrides{
		NavVariant: model.Ptr(model.At(map[model.Breakpoint]model.Variant{
			model.XS: model.VariantTemporary,
			model.MD: model.VariantPermanent,
		})),
		Collapsible: model.Ptr(model.At(map[model.Breakpoint]bool{
			model.XS: false,
			model.MD: true,
		})),
		Clipped:        model.Ptr(true),
		Squeezed:       model.Ptr(true),
		HeaderPosition: model.Ptr(model.HeaderSticky),
	}).Apply(o)
}

// ContentBasedLayout sizes the drawer per breakpoint, keeps it persistent from
// small up and never collapses.
func ContentBasedLayout(o model.Overrides) model.Config {
	return DefaultLayout(model.Overrides{}).Apply(model.Overrides{
		NavWidth: model.Ptr(model.At(map[model.Breakpoint]int{
			model.SM: 200,
			model.MD: 256,
		})),
		NavVariant: model.Ptr(model.At(map[model.Breakpoint]model.Variant{
			model.XS: model.VariantTemporary,
			model.SM: model.VariantPersistent,
		})),
		Collapsible: model.Ptr(model.Fixed(false)),
	}).Apply(o)
}

// CozyLayout keeps a narrow persistent drawer on extra-small screens and a
// permanent one from small up.
func CozyLayout(o model.Overrides) model.Config {
	return DefaultLayout(model.Overrides{}).Apply(model.Overrides{
		NavVariant: model.Ptr(model.At(map[model.Breakpoint]model.Variant{
			model.XS: model.VariantPersistent,
			model.SM: model.VariantPermanent,
		})),
		NavWidth: model.Ptr(model.At(map[model.Breakpoint]int{
			model.XS: 64,
			model.SM: 200,
			model.MD: 256,
		})),
		Collapsible: model.Ptr(model.At(map[model.Breakpoint]bool{
			model.XS: false,
			model.SM: true,
		})),
		Clipped: model.Ptr(false),
	}).Apply(o)
}

// MuiTreasuryLayout is a clipped 200px drawer, temporary below medium and
// permanent from medium up, without collapse.
func MuiTreasuryLayout(o model.Overrides) model.Config {
	return DefaultLayout(model.Overrides{}).Apply(model.Overrides{
		NavWidth: model.Ptr(model.Fixed(200)),
		NavVariant: model.Ptr(model.At(map[model.Breakpoint]model.Variant{
			model.XS: model.VariantTemporary,
			model.MD: model.VariantPermanent,
		})),
		Clipped:     model.Ptr(true),
		Collapsible: model.Ptr(model.Fixed(false)),
	}).Apply(o)
}

// Names returns the registered preset names in display order.
func Names() []string {
	return append([]string(nil), order...)
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownPreset, name, Names())
	}
	return f, nil
}

// Build resolves name and applies o.
func Build(name string, o model.Overrides) (model.Config, error) {
	f, err := Lookup(name)
	if err != nil {
		return model.Config{}, err
	}
	return f(o), nil
}

// Next returns the preset after name in display order, wrapping around.
// Unknown names yield the first preset.
func Next(name string) string {
	names := Names()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
