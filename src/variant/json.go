package variant

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Tagged wraps a Variant so it encodes as {"Type": <kind>, "Value": <payload>}.
// A nil Value encodes as JSON null. Tagged is not itself a Variant.
type Tagged struct {
	Value Variant
}

type taggedJSON struct {
	Type  *VariantType    `json:"Type"`
	Value json.RawMessage `json:"Value"`
}

// MarshalJSON implements json.Marshaler.
func (t Tagged) MarshalJSON() ([]byte, error) {
	if t.Value == nil {
		return []byte("null"), nil
	}
	payload, err := json.Marshal(t.Value)
	if err != nil {
		return nil, fmt.Errorf("variant: encoding %s: %w", t.Value.Type(), err)
	}
	ty := t.Value.Type()
	return json.Marshal(taggedJSON{Type: &ty, Value: payload})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tagged) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		t.Value = nil
		return nil
	}
	v, err := UnmarshalTagged(data)
	if err != nil {
		return err
	}
	t.Value = v
	return nil
}

// MarshalTagged encodes v in the tagged form.
func MarshalTagged(v Variant) ([]byte, error) {
	if v == nil {
		return nil, errors.New("variant: cannot encode nil variant")
	}
	return Tagged{Value: v}.MarshalJSON()
}

// UnmarshalTagged decodes a value in the tagged form. Both fields are
// required and the payload must match the shape of the named kind.
func UnmarshalTagged(data []byte) (Variant, error) {
	var raw taggedJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("variant: %w", err)
	}
	if raw.Type == nil {
		return nil, errors.New("variant: missing Type")
	}
	if len(raw.Value) == 0 || bytes.Equal(raw.Value, []byte("null")) {
		return nil, fmt.Errorf("variant: missing Value for %s", *raw.Type)
	}
	v, err := payloadDecoders[*raw.Type](raw.Value)
	if err != nil {
		return nil, fmt.Errorf("variant: decoding %s: %w", *raw.Type, err)
	}
	return v, nil
}

func decodeAs[T Variant](data []byte) (Variant, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// splitTuple decodes a JSON array that must have exactly n elements.
func splitTuple(data []byte, n int) ([]json.RawMessage, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, err
	}
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(parts))
	}
	return parts, nil
}

func unmarshalTuple[T any](data []byte, fields ...*T) error {
	parts, err := splitTuple(data, len(fields))
	if err != nil {
		return err
	}
	for i, part := range parts {
		if err := json.Unmarshal(part, fields[i]); err != nil {
			return err
		}
	}
	return nil
}

func (v Vector2) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float32{v.X, v.Y})
}

func (v *Vector2) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &v.X, &v.Y)
}

func (v Vector2int16) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int16{v.X, v.Y})
}

func (v *Vector2int16) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &v.X, &v.Y)
}

func (v Vector3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float32{v.X, v.Y, v.Z})
}

func (v *Vector3) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &v.X, &v.Y, &v.Z)
}

func (v Vector3int16) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int16{v.X, v.Y, v.Z})
}

func (v *Vector3int16) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &v.X, &v.Y, &v.Z)
}

func (m Matrix3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]Vector3{m.X, m.Y, m.Z})
}

func (m *Matrix3) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &m.X, &m.Y, &m.Z)
}

func (c Color3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float32{c.R, c.G, c.B})
}

func (c *Color3) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &c.R, &c.G, &c.B)
}

// Color3uint8 components go through uint16 because encoding/json treats
// []uint8 as base64.
func (c Color3uint8) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]uint16{uint16(c.R), uint16(c.G), uint16(c.B)})
}

func (c *Color3uint8) UnmarshalJSON(data []byte) error {
	var r, g, b uint16
	if err := unmarshalTuple(data, &r, &g, &b); err != nil {
		return err
	}
	if r > 255 || g > 255 || b > 255 {
		return fmt.Errorf("Color3uint8 component out of range: [%d,%d,%d]", r, g, b)
	}
	c.R, c.G, c.B = uint8(r), uint8(g), uint8(b)
	return nil
}

func (r NumberRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float32{r.Min, r.Max})
}

func (r *NumberRange) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &r.Min, &r.Max)
}

func (r Rect) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]Vector2{r.Min, r.Max})
}

func (r *Rect) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &r.Min, &r.Max)
}

func (u UDim) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{u.Scale, u.Offset})
}

func (u *UDim) UnmarshalJSON(data []byte) error {
	parts, err := splitTuple(data, 2)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(parts[0], &u.Scale); err != nil {
		return err
	}
	return json.Unmarshal(parts[1], &u.Offset)
}

func (u UDim2) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]UDim{u.X, u.Y})
}

func (u *UDim2) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &u.X, &u.Y)
}

func (a Axes) MarshalJSON() ([]byte, error) {
	names := []string{}
	for _, axis := range axisNames {
		if a&axis.flag != 0 {
			names = append(names, axis.name)
		}
	}
	return json.Marshal(names)
}

func (a *Axes) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var out Axes
next:
	for _, name := range names {
		for _, axis := range axisNames {
			if axis.name == name {
				out |= axis.flag
				continue next
			}
		}
		return fmt.Errorf("unknown axis %q", name)
	}
	*a = out
	return nil
}

func (f Faces) MarshalJSON() ([]byte, error) {
	names := []string{}
	for _, face := range faceNames {
		if f&face.flag != 0 {
			names = append(names, face.name)
		}
	}
	return json.Marshal(names)
}

func (f *Faces) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var out Faces
next:
	for _, name := range names {
		for _, face := range faceNames {
			if face.name == name {
				out |= face.flag
				continue next
			}
		}
		return fmt.Errorf("unknown face %q", name)
	}
	*f = out
	return nil
}

const physicalPropertiesDefault = "Default"

func (p PhysicalProperties) MarshalJSON() ([]byte, error) {
	if p.Custom == nil {
		return json.Marshal(physicalPropertiesDefault)
	}
	return json.Marshal(p.Custom)
}

func (p *PhysicalProperties) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		if name != physicalPropertiesDefault {
			return fmt.Errorf("unknown PhysicalProperties %q", name)
		}
		p.Custom = nil
		return nil
	}
	var custom CustomPhysicalProperties
	if err := json.Unmarshal(data, &custom); err != nil {
		return err
	}
	p.Custom = &custom
	return nil
}

// MarshalJSON encodes b as base64. A nil blob encodes as "" rather than null.
func (b BinaryString) MarshalJSON() ([]byte, error) {
	if b == nil {
		b = BinaryString{}
	}
	return json.Marshal([]byte(b))
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "null" {
		*r = Ref{}
		return nil
	}
	decoded, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return fmt.Errorf("invalid Ref %q: %w", s, err)
	}
	if len(decoded) != len(r) {
		return fmt.Errorf("invalid Ref %q: want %d bytes, got %d", s, len(r), len(decoded))
	}
	copy(r[:], decoded)
	return nil
}

func (s SharedString) MarshalJSON() ([]byte, error) {
	return BinaryString(s.Data).MarshalJSON()
}

func (s *SharedString) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &s.Data)
}
