package model

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// ParseOverrides decodes the generic key/value form of a layout (a config
// file section, a koanf subtree, a flag map) into Overrides. Known keys are
// type-checked; unknown keys are carried in Extra untouched.
func ParseOverrides(raw map[string]any) (Overrides, error) {
	var o Overrides
	for key, val := range raw {
		var err error
		switch key {
		case KeyNavWidth:
			o.NavWidth = new(Responsive[int])
			err = o.NavWidth.DecodeRaw(val)
		case KeyNavAnchor:
			o.NavAnchor = new(Anchor)
			err = decodeEnum(val, o.NavAnchor)
		case KeyNavVariant:
			o.NavVariant = new(Responsive[Variant])
			err = o.NavVariant.DecodeRaw(val)
		case KeyCollapsible:
			o.Collapsible = new(Responsive[bool])
			err = o.Collapsible.DecodeRaw(val)
		case KeyCollapsedWidth:
			o.CollapsedWidth = new(int)
			err = decodeValue(val, o.CollapsedWidth)
		case KeyClipped:
			o.Clipped = new(bool)
			err = decodeValue(val, o.Clipped)
		case KeyHeaderPosition:
			o.HeaderPosition = new(HeaderPosition)
			err = decodeEnum(val, o.HeaderPosition)
		case KeySqueezed:
			o.Squeezed = new(bool)
			err = decodeValue(val, o.Squeezed)
		case KeyFooterShrink:
			o.FooterShrink = new(bool)
			err = decodeValue(val, o.FooterShrink)
		default:
			if o.Extra == nil {
				o.Extra = make(map[string]any)
			}
			o.Extra[key] = val
		}
		if err != nil {
			return Overrides{}, fmt.Errorf("layout key %s: %w", key, err)
		}
	}
	return o, nil
}

func decodeValue(raw, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: DecodeHook(),
		Result:     out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return nil
}

func decodeEnum[E interface {
	~string
	Validate() error
}](raw any, out *E) error {
	if err := decodeValue(raw, out); err != nil {
		return err
	}
	return (*out).Validate()
}
