package engine

import "github.com/chazu/strut/pkg/support"

// PrimKind identifies a primitive part shape.
type PrimKind int

const (
	PrimBox PrimKind = iota
	PrimCylinder
)

// Part is a named primitive defined by a fixture script. Box parts use
// Width/Depth/Height; cylinder parts use Diameter/Height.
type Part struct {
	Name     string
	Kind     PrimKind
	Width    float64
	Depth    float64
	Height   float64
	Diameter float64
}

// Placement positions a defined part on the plate plane, centered at
// (X, Z) with its base on the plate top, optionally rotated about the
// vertical axis.
type Placement struct {
	PartName string
	X, Z     float64
	RotateY  float64 // degrees
}

// Plate describes the fixture baseplate.
type Plate struct {
	Width     float64
	Depth     float64
	Thickness float64
}

// Request is the evaluated output of a fixture script: part definitions,
// their placements, the plate, and support placement options.
type Request struct {
	Parts      map[string]*Part
	Placements []Placement
	Plate      Plate
	Options    support.Options
}

// NewRequest returns an empty request with the default plate and
// default support options.
func NewRequest() *Request {
	return &Request{
		Parts:   make(map[string]*Part),
		Plate:   Plate{Width: 200, Depth: 150, Thickness: 8},
		Options: support.DefaultOptions(),
	}
}

// PartCount returns the number of defined parts.
func (r *Request) PartCount() int { return len(r.Parts) }
