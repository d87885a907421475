package variant

import (
	"encoding/hex"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// Bool is a boolean property value.
type Bool bool

// Int32 is a 32-bit signed integer property value.
type Int32 int32

// Int64 is a 64-bit signed integer property value.
type Int64 int64

// Float32 is a single precision property value.
type Float32 float32

// Float64 is a double precision property value.
type Float64 float64

// String is a UTF-8 string property value.
type String string

// Content is a string that references an asset (for example "rbxassetid://1").
type Content string

// BinaryString is an opaque blob of bytes.
type BinaryString []byte

// BrickColor is a palette index.
type BrickColor uint16

// EnumValue is the numeric value of an enum item. The enum it belongs to is
// known from the property's declared data type.
type EnumValue uint32

// Vector2 is a 2D vector.
type Vector2 struct {
	X, Y float32
}

// Vector2int16 is a 2D vector with 16-bit integer components.
type Vector2int16 struct {
	X, Y int16
}

// Vector3 is a 3D vector.
type Vector3 struct {
	X, Y, Z float32
}

// Vector3int16 is a 3D vector with 16-bit integer components.
type Vector3int16 struct {
	X, Y, Z int16
}

// Matrix3 is a 3x3 rotation matrix stored as rows.
type Matrix3 struct {
	X, Y, Z Vector3
}

// IdentityMatrix3 returns the identity rotation.
func IdentityMatrix3() Matrix3 {
	return Matrix3{
		X: Vector3{X: 1},
		Y: Vector3{Y: 1},
		Z: Vector3{Z: 1},
	}
}

// CFrame is a coordinate frame: a position plus an orientation.
type CFrame struct {
	Position    Vector3 `json:"position"`
	Orientation Matrix3 `json:"orientation"`
}

// Color3 is a color with float components in [0, 1].
type Color3 struct {
	R, G, B float32
}

// Color3uint8 is a color with byte components.
type Color3uint8 struct {
	R, G, B uint8
}

// ColorSequenceKeypoint is one stop of a ColorSequence.
type ColorSequenceKeypoint struct {
	Time  float32 `json:"time"`
	Color Color3  `json:"color"`
}

// ColorSequence is a gradient of colors over time.
type ColorSequence struct {
	Keypoints []ColorSequenceKeypoint `json:"keypoints"`
}

// NumberSequenceKeypoint is one stop of a NumberSequence.
type NumberSequenceKeypoint struct {
	Time     float32 `json:"time"`
	Value    float32 `json:"value"`
	Envelope float32 `json:"envelope"`
}

// NumberSequence is a curve of numbers over time.
type NumberSequence struct {
	Keypoints []NumberSequenceKeypoint `json:"keypoints"`
}

// NumberRange is an inclusive range of numbers.
type NumberRange struct {
	Min, Max float32
}

// Ray is a half-line.
type Ray struct {
	Origin    Vector3 `json:"origin"`
	Direction Vector3 `json:"direction"`
}

// Rect is an axis aligned 2D rectangle.
type Rect struct {
	Min, Max Vector2
}

// UDim is one axis of a UI dimension: a scale plus a pixel offset.
type UDim struct {
	Scale  float32
	Offset int32
}

// UDim2 is a 2D UI dimension.
type UDim2 struct {
	X, Y UDim
}

// Axes is a set of axes.
type Axes uint8

const (
	AxisX Axes = 1 << iota
	AxisY
	AxisZ
)

var axisNames = []struct {
	flag Axes
	name string
}{
	{AxisX, "X"},
	{AxisY, "Y"},
	{AxisZ, "Z"},
}

// Faces is a set of the six faces of a box.
type Faces uint8

const (
	FaceRight Faces = 1 << iota
	FaceTop
	FaceBack
	FaceLeft
	FaceBottom
	FaceFront
)

var faceNames = []struct {
	flag Faces
	name string
}{
	{FaceRight, "Right"},
	{FaceTop, "Top"},
	{FaceBack, "Back"},
	{FaceLeft, "Left"},
	{FaceBottom, "Bottom"},
	{FaceFront, "Front"},
}

// CustomPhysicalProperties overrides the material's physical properties.
type CustomPhysicalProperties struct {
	Density          float32 `json:"density"`
	Friction         float32 `json:"friction"`
	Elasticity       float32 `json:"elasticity"`
	FrictionWeight   float32 `json:"frictionWeight"`
	ElasticityWeight float32 `json:"elasticityWeight"`
}

// PhysicalProperties is either the material default (Custom == nil) or a
// custom set of physical properties.
type PhysicalProperties struct {
	Custom *CustomPhysicalProperties
}

// DefaultPhysicalProperties returns the material default.
func DefaultPhysicalProperties() PhysicalProperties {
	return PhysicalProperties{}
}

// Ref is an opaque reference to another instance. The zero Ref is null.
type Ref [16]byte

// NullRef returns the null reference.
func NullRef() Ref {
	return Ref{}
}

// NewRef returns a random, non-null reference.
func NewRef() Ref {
	for {
		r := Ref(uuid.New())
		if !r.IsNull() {
			return r
		}
	}
}

// IsNull reports whether r points nowhere.
func (r Ref) IsNull() bool {
	return r == Ref{}
}

func (r Ref) String() string {
	if r.IsNull() {
		return "null"
	}
	return hex.EncodeToString(r[:])
}

// SharedStringHash identifies the content of a SharedString.
type SharedStringHash [blake2b.Size256]byte

func (h SharedStringHash) String() string {
	return hex.EncodeToString(h[:])
}

// SharedString is a blob that serializers deduplicate by content hash.
type SharedString struct {
	Data []byte
}

// NewSharedString wraps data.
func NewSharedString(data []byte) SharedString {
	return SharedString{Data: data}
}

// Hash returns the blake2b-256 digest of the content.
func (s SharedString) Hash() SharedStringHash {
	return blake2b.Sum256(s.Data)
}
