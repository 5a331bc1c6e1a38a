package model

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Responsive is a value that is either a single scalar or a mapping from
// breakpoint to value. Keyed values resolve smallest-first: the value for the
// largest key not exceeding the active breakpoint wins.
type Responsive[T comparable] struct {
	value T
	byBP  map[Breakpoint]T
}

// Fixed returns a responsive value that is v at every breakpoint.
func Fixed[T comparable](v T) Responsive[T] {
	return Responsive[T]{value: v}
}

// At returns a breakpoint-keyed responsive value. The map is copied.
func At[T comparable](m map[Breakpoint]T) Responsive[T] {
	cp := make(map[Breakpoint]T, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Responsive[T]{byBP: cp}
}

// IsKeyed reports whether the value is breakpoint-keyed.
func (r Responsive[T]) IsKeyed() bool {
	return r.byBP != nil
}

// Keys returns the breakpoints the value is keyed on, smallest first.
func (r Responsive[T]) Keys() []Breakpoint {
	keys := make([]Breakpoint, 0, len(r.byBP))
	for k := range r.byBP {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Scalar returns the scalar value and whether the value is a scalar.
func (r Responsive[T]) Scalar() (T, bool) {
	return r.value, r.byBP == nil
}

// Lookup resolves the value at bp. It returns false when the value is keyed
// and no key is at or below bp.
func (r Responsive[T]) Lookup(bp Breakpoint) (T, bool) {
	if r.byBP == nil {
		return r.value, true
	}
	var (
		out   T
		found bool
	)
	for _, k := range r.Keys() {
		if k > bp {
			break
		}
		out, found = r.byBP[k], true
	}
	return out, found
}

// Resolve returns the value at bp. A keyed value with no key at or below bp
// falls back to its smallest key.
func (r Responsive[T]) Resolve(bp Breakpoint) T {
	if v, ok := r.Lookup(bp); ok {
		return v
	}
	keys := r.Keys()
	if len(keys) == 0 {
		var zero T
		return zero
	}
	return r.byBP[keys[0]]
}

// Any reports whether pred holds at any breakpoint.
func (r Responsive[T]) Any(pred func(T) bool) bool {
	for _, bp := range Breakpoints {
		if pred(r.Resolve(bp)) {
			return true
		}
	}
	return false
}

// Equal reports whether two responsive values are structurally equal.
func (r Responsive[T]) Equal(o Responsive[T]) bool {
	if r.IsKeyed() != o.IsKeyed() {
		return false
	}
	if !r.IsKeyed() {
		return r.value == o.value
	}
	if len(r.byBP) != len(o.byBP) {
		return false
	}
	for k, v := range r.byBP {
		if ov, ok := o.byBP[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func (r Responsive[T]) String() string {
	if !r.IsKeyed() {
		return fmt.Sprint(r.value)
	}
	s := "{"
	for i, k := range r.Keys() {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s:%v", k, r.byBP[k])
	}
	return s + "}"
}

// Raw returns the generic form: the scalar, or a map keyed by breakpoint name.
func (r Responsive[T]) Raw() any {
	if !r.IsKeyed() {
		return r.value
	}
	m := make(map[string]any, len(r.byBP))
	for k, v := range r.byBP {
		m[k.String()] = v
	}
	return m
}

// DecodeRaw fills r from the generic form produced by YAML or koanf: a
// scalar, or a map from breakpoint name to scalar.
func (r *Responsive[T]) DecodeRaw(data any) error {
	switch m := data.(type) {
	case map[string]any:
		out := make(map[Breakpoint]T, len(m))
		for k, raw := range m {
			bp, err := ParseBreakpoint(k)
			if err != nil {
				return err
			}
			v, err := decodeScalar[T](raw)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			out[bp] = v
		}
		*r = Responsive[T]{byBP: out}
		return nil
	case map[any]any:
		conv := make(map[string]any, len(m))
		for k, v := range m {
			conv[fmt.Sprint(k)] = v
		}
		return r.DecodeRaw(conv)
	case Responsive[T]:
		*r = m
		return nil
	}
	v, err := decodeScalar[T](data)
	if err != nil {
		return err
	}
	*r = Responsive[T]{value: v}
	return nil
}

type validator interface {
	Validate() error
}

func decodeScalar[T comparable](raw any) (T, error) {
	var v T
	if raw == nil {
		return v, fmt.Errorf("%w: missing value", ErrInvalidValue)
	}
	if err := mapstructure.Decode(raw, &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if val, ok := any(v).(validator); ok {
		if err := val.Validate(); err != nil {
			return v, err
		}
	}
	return v, nil
}

// MarshalYAML writes keyed values in breakpoint order.
func (r Responsive[T]) MarshalYAML() (any, error) {
	if !r.IsKeyed() {
		return r.value, nil
	}
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range r.Keys() {
		var val yaml.Node
		if err := val.Encode(r.byBP[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k.String()},
			&val,
		)
	}
	return node, nil
}

// UnmarshalYAML accepts either a scalar or a breakpoint mapping.
func (r *Responsive[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var m map[string]T
		if err := node.Decode(&m); err != nil {
			return err
		}
		raw := make(map[string]any, len(m))
		for k, v := range m {
			raw[k] = v
		}
		return r.DecodeRaw(raw)
	}
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	return r.DecodeRaw(v)
}

type rawDecoder interface {
	DecodeRaw(data any) error
}

var rawDecoderType = reflect.TypeOf((*rawDecoder)(nil)).Elem()

// DecodeHook lets mapstructure (and therefore koanf) decode Responsive fields
// from their generic form.
func DecodeHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if !reflect.PointerTo(to).Implements(rawDecoderType) {
			return data, nil
		}
		if from == to {
			return data, nil
		}
		ptr := reflect.New(to)
		if err := ptr.Interface().(rawDecoder).DecodeRaw(data); err != nil {
			return nil, err
		}
		return ptr.Elem().Interface(), nil
	}
}
