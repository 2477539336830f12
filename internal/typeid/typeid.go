package typeid

import (
	"errors"
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixEntity = "ent"
	PrefixSpace  = "spc"
)

// ErrInvalidID is returned when a string is not a well-formed identifier for
// the requested kind.
var ErrInvalidID = errors.New("invalid identifier")

// EntityID identifies a drawable entity. The zero value is "no id".
type EntityID struct{ value string }

// SpaceID identifies a scene.
type SpaceID struct{ value string }

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewEntityID() EntityID { return EntityID{value: New(PrefixEntity)} }
func NewSpaceID() SpaceID   { return SpaceID{value: New(PrefixSpace)} }

// ParseEntityID validates s and wraps it as an EntityID.
func ParseEntityID(s string) (EntityID, error) {
	if err := Validate(s, PrefixEntity); err != nil {
		return EntityID{}, err
	}
	return EntityID{value: s}, nil
}

// ParseSpaceID validates s and wraps it as a SpaceID.
func ParseSpaceID(s string) (SpaceID, error) {
	if err := Validate(s, PrefixSpace); err != nil {
		return SpaceID{}, err
	}
	return SpaceID{value: s}, nil
}

func (id EntityID) String() string { return id.value }
func (id EntityID) IsZero() bool   { return id.value == "" }

func (id SpaceID) String() string { return id.value }
func (id SpaceID) IsZero() bool   { return id.value == "" }

// MarshalText lets ids be used as JSON values and map keys.
func (id EntityID) MarshalText() ([]byte, error) { return []byte(id.value), nil }
func (id SpaceID) MarshalText() ([]byte, error)  { return []byte(id.value), nil }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidID, id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("%w: expected prefix %q but got %q in id %q", ErrInvalidID, expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
