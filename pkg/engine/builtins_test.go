package engine

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(box :width 40)`,
			expect: `(box "__kw_width" 40)`,
		},
		{
			name:   "multiple keywords",
			input:  `(box :width 40 :depth 30)`,
			expect: `(box "__kw_width" 40 "__kw_depth" 30)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(my-fn :overhang-angle 45)`,
			expect: `(my_fn "__kw_overhang-angle" 45)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:max-support-span`,
			expect: `"__kw_max-support-span"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Part definition
// ---------------------------------------------------------------------------

func TestDefpartBox(t *testing.T) {
	eng := NewEngine()

	source := `
(defpart "block"
  (box :width 40 :depth 30 :height 20))
`
	req, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if req.PartCount() != 1 {
		t.Fatalf("expected 1 part, got %d", req.PartCount())
	}

	block := req.Parts["block"]
	if block == nil {
		t.Fatal("expected part named 'block'")
	}
	if block.Kind != PrimBox {
		t.Errorf("expected PrimBox, got %d", block.Kind)
	}
	if block.Width != 40 || block.Depth != 30 || block.Height != 20 {
		t.Errorf("dimensions = %vx%vx%v, want 40x30x20", block.Width, block.Depth, block.Height)
	}
}

func TestDefpartCylinder(t *testing.T) {
	eng := NewEngine()

	req, evalErrs, err := eng.Evaluate(`(defpart "pin" (cylinder :diameter 12 :height 25))`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}

	pin := req.Parts["pin"]
	if pin == nil {
		t.Fatal("expected part named 'pin'")
	}
	if pin.Kind != PrimCylinder {
		t.Errorf("expected PrimCylinder, got %d", pin.Kind)
	}
	if pin.Diameter != 12 || pin.Height != 25 {
		t.Errorf("got d%v h%v, want d12 h25", pin.Diameter, pin.Height)
	}
}

func TestBoxRequiresPositiveDimensions(t *testing.T) {
	eng := NewEngine()

	_, evalErrs, err := eng.Evaluate(`(defpart "bad" (box :width 40))`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for missing dimensions")
	}
}

// ---------------------------------------------------------------------------
// Placement
// ---------------------------------------------------------------------------

func TestPlacePart(t *testing.T) {
	eng := NewEngine()

	source := `
(defpart "block" (box :width 40 :depth 30 :height 20))
(place (part "block") :x 50 :z -25 :rotate 90)
(place (part "block") :x -50 :z 25)
`
	req, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(req.Placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(req.Placements))
	}

	first := req.Placements[0]
	if first.PartName != "block" || first.X != 50 || first.Z != -25 || first.RotateY != 90 {
		t.Errorf("unexpected first placement: %+v", first)
	}
	if req.Placements[1].RotateY != 0 {
		t.Errorf("second placement should have no rotation")
	}
}

func TestPlaceUnknownPart(t *testing.T) {
	eng := NewEngine()

	_, evalErrs, err := eng.Evaluate(`(place (part "ghost") :x 0 :z 0)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for unknown part")
	}
	if !strings.Contains(evalErrs[0].Message, "ghost") {
		t.Errorf("error should name the missing part: %v", evalErrs[0])
	}
}

// ---------------------------------------------------------------------------
// Plate and options
// ---------------------------------------------------------------------------

func TestPlateOverrides(t *testing.T) {
	eng := NewEngine()

	req, evalErrs, err := eng.Evaluate(`(plate :width 300 :depth 200 :thickness 10)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if req.Plate.Width != 300 || req.Plate.Depth != 200 || req.Plate.Thickness != 10 {
		t.Errorf("unexpected plate: %+v", req.Plate)
	}
}

func TestOptionsOverrides(t *testing.T) {
	eng := NewEngine()

	source := `(options :overhang-angle 45 :max-support-span 60 :boundary-supports 4)`
	req, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if req.Options.OverhangAngle != 45 {
		t.Errorf("overhang angle = %v, want 45", req.Options.OverhangAngle)
	}
	if req.Options.MaxSupportSpan != 60 {
		t.Errorf("max support span = %v, want 60", req.Options.MaxSupportSpan)
	}
	if req.Options.BoundaryTarget != 4 {
		t.Errorf("boundary target = %v, want 4", req.Options.BoundaryTarget)
	}
	// Untouched options keep their defaults.
	if req.Options.ClusterDistance != 15 {
		t.Errorf("cluster distance = %v, want default 15", req.Options.ClusterDistance)
	}
}

func TestOptionsUnknownKey(t *testing.T) {
	eng := NewEngine()

	_, evalErrs, err := eng.Evaluate(`(options :warp-drive 9)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for unknown option")
	}
}

// ---------------------------------------------------------------------------
// Full fixture script
// ---------------------------------------------------------------------------

func TestFullFixtureScript(t *testing.T) {
	eng := NewEngine()

	source := `
;; Simple two-part fixture.
(plate :width 250 :depth 180 :thickness 8)
(options :overhang-angle 55)

(defpart "base" (box :width 80 :depth 60 :height 15))
(defpart "pin" (cylinder :diameter 10 :height 30))

(place (part "base") :x 0 :z 0)
(place (part "pin") :x 60 :z 40)
(place (part "pin") :x -60 :z 40)
`
	req, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}

	if req.PartCount() != 2 {
		t.Errorf("expected 2 parts, got %d", req.PartCount())
	}
	if len(req.Placements) != 3 {
		t.Errorf("expected 3 placements, got %d", len(req.Placements))
	}
	if req.Plate.Width != 250 {
		t.Errorf("plate width = %v, want 250", req.Plate.Width)
	}
	if req.Options.OverhangAngle != 55 {
		t.Errorf("overhang angle = %v, want 55", req.Options.OverhangAngle)
	}
}
