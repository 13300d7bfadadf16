package scene

import (
	"github.com/gogpu/frame/displaylist"
	"github.com/gogpu/frame/geom"
)

// DynamicProperties is a batch of animated property values supplied by the
// client for the next frame.
type DynamicProperties struct {
	Transforms map[displaylist.PropertyBindingKey]geom.Transform
	Floats     map[displaylist.PropertyBindingKey]float64
}

// Properties holds the current values of animated properties and resolves
// property bindings against them.
type Properties struct {
	transforms map[displaylist.PropertyBindingKey]geom.Transform
	floats     map[displaylist.PropertyBindingKey]float64
}

// NewProperties creates an empty property set.
func NewProperties() *Properties {
	return &Properties{
		transforms: make(map[displaylist.PropertyBindingKey]geom.Transform),
		floats:     make(map[displaylist.PropertyBindingKey]float64),
	}
}

// SetProperties replaces all property values with the given batch.
func (p *Properties) SetProperties(props DynamicProperties) {
	clear(p.transforms)
	clear(p.floats)
	for k, v := range props.Transforms {
		p.transforms[k] = v
	}
	for k, v := range props.Floats {
		p.floats[k] = v
	}
}

// SetFloat sets one float property.
func (p *Properties) SetFloat(key displaylist.PropertyBindingKey, v float64) {
	p.floats[key] = v
}

// SetTransform sets one transform property.
func (p *Properties) SetTransform(key displaylist.PropertyBindingKey, t geom.Transform) {
	p.transforms[key] = t
}

// ResolveFloat returns the binding's literal value, or the value stored for
// its key, or def if the key has no value.
func (p *Properties) ResolveFloat(b displaylist.PropertyBinding[float64], def float64) float64 {
	if v, ok := b.Value(); ok {
		return v
	}
	key, _ := b.Key()
	if v, ok := p.floats[key]; ok {
		return v
	}
	return def
}

// ResolveLayoutTransform resolves an optional transform binding. A nil
// binding or a key without a value resolves to the identity.
func (p *Properties) ResolveLayoutTransform(b *displaylist.PropertyBinding[geom.Transform]) geom.Transform {
	if b == nil {
		return geom.Identity()
	}
	if v, ok := b.Value(); ok {
		return v
	}
	key, _ := b.Key()
	if v, ok := p.transforms[key]; ok {
		return v
	}
	return geom.Identity()
}
