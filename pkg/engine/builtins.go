package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms fixture script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: overhang-angle -> overhang_angle
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPrim wraps an anonymous primitive produced by `box` or `cylinder`,
// consumed by `defpart`.
type sexpPrim struct {
	part Part
}

func (p *sexpPrim) SexpString(ps *zygo.PrintState) string {
	if p.part.Kind == PrimCylinder {
		return fmt.Sprintf("(cylinder d%.0f h%.0f)", p.part.Diameter, p.part.Height)
	}
	return fmt.Sprintf("(box %.0fx%.0fx%.0f)", p.part.Width, p.part.Depth, p.part.Height)
}
func (p *sexpPrim) Type() *zygo.RegisteredType { return nil }

// sexpPartRef wraps a defined part name so it can be passed to `place`.
type sexpPartRef struct {
	name string
}

func (r *sexpPartRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(partref %q)", r.name)
}
func (r *sexpPartRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// floatKW reads an optional numeric keyword argument into *dst.
func floatKW(pa kwArgs, name string, dst *float64, fn string) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, name, err)
	}
	*dst = f
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the fixture DSL builtins into a zygomys
// environment. The builtins populate req during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, req *Request) {

	// -----------------------------------------------------------------------
	// (options :overhang-angle 45 :cluster-distance 20 :max-support-span 60)
	// -----------------------------------------------------------------------
	env.AddFunction("options", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		fields := map[string]*float64{
			"overhang-angle":       &req.Options.OverhangAngle,
			"buildplate-tolerance": &req.Options.BuildplateTolerance,
			"cluster-distance":     &req.Options.ClusterDistance,
			"min-cluster-area":     &req.Options.MinClusterArea,
			"support-padding":      &req.Options.SupportPadding,
			"min-support-size":     &req.Options.MinSupportSize,
			"max-support-size":     &req.Options.MaxSupportSize,
			"corner-radius":        &req.Options.CornerRadius,
			"contact-offset":       &req.Options.ContactOffset,
			"max-support-span":     &req.Options.MaxSupportSpan,
		}
		for kw := range pa.kw {
			if _, known := fields[kw]; !known && kw != "boundary-supports" {
				return zygo.SexpNull, fmt.Errorf("options: unknown option %q", kw)
			}
		}
		for kw, dst := range fields {
			if err := floatKW(pa, kw, dst, "options"); err != nil {
				return zygo.SexpNull, err
			}
		}
		if v, ok := pa.kw["boundary-supports"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("options: boundary-supports: %w", err)
			}
			req.Options.BoundaryTarget = int(f)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (box :width 40 :depth 30 :height 20)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := Part{Kind: PrimBox}

		for kw, dst := range map[string]*float64{
			"width":  &p.Width,
			"depth":  &p.Depth,
			"height": &p.Height,
		} {
			if err := floatKW(pa, kw, dst, "box"); err != nil {
				return zygo.SexpNull, err
			}
		}
		if p.Width <= 0 || p.Depth <= 0 || p.Height <= 0 {
			return zygo.SexpNull, fmt.Errorf("box requires positive :width, :depth and :height")
		}
		return &sexpPrim{part: p}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder :diameter 12 :height 25)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := Part{Kind: PrimCylinder}

		for kw, dst := range map[string]*float64{
			"diameter": &p.Diameter,
			"height":   &p.Height,
		} {
			if err := floatKW(pa, kw, dst, "cylinder"); err != nil {
				return zygo.SexpNull, err
			}
		}
		if p.Diameter <= 0 || p.Height <= 0 {
			return zygo.SexpNull, fmt.Errorf("cylinder requires positive :diameter and :height")
		}
		return &sexpPrim{part: p}, nil
	})

	// -----------------------------------------------------------------------
	// (defpart "block" (box :width 40 :depth 30 :height 20))
	// -----------------------------------------------------------------------
	env.AddFunction("defpart", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("defpart requires a name and a primitive expression")
		}

		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defpart: name: %w", err)
		}

		prim, ok := args[1].(*sexpPrim)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("defpart: expected box or cylinder expression, got %T", args[1])
		}

		p := prim.part
		p.Name = partName
		req.Parts[partName] = &p

		return &sexpPartRef{name: partName}, nil
	})

	// -----------------------------------------------------------------------
	// (part "block")
	// -----------------------------------------------------------------------
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("part requires a name argument")
		}

		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: name: %w", err)
		}

		if _, ok := req.Parts[partName]; !ok {
			return zygo.SexpNull, fmt.Errorf("part: no part named %q", partName)
		}

		return &sexpPartRef{name: partName}, nil
	})

	// -----------------------------------------------------------------------
	// (place (part "block") :x 50 :z 30 :rotate 90)
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("place requires a part reference as first argument")
		}
		ref, ok := pa.positional[0].(*sexpPartRef)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("place: expected part reference, got %T (%s)",
				pa.positional[0], pa.positional[0].SexpString(nil))
		}

		pl := Placement{PartName: ref.name}
		for kw, dst := range map[string]*float64{
			"x":      &pl.X,
			"z":      &pl.Z,
			"rotate": &pl.RotateY,
		} {
			if err := floatKW(pa, kw, dst, "place"); err != nil {
				return zygo.SexpNull, err
			}
		}
		req.Placements = append(req.Placements, pl)

		return &sexpPartRef{name: ref.name}, nil
	})

	// -----------------------------------------------------------------------
	// (plate :width 200 :depth 150 :thickness 8)
	// -----------------------------------------------------------------------
	env.AddFunction("plate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		for kw, dst := range map[string]*float64{
			"width":     &req.Plate.Width,
			"depth":     &req.Plate.Depth,
			"thickness": &req.Plate.Thickness,
		} {
			if err := floatKW(pa, kw, dst, "plate"); err != nil {
				return zygo.SexpNull, err
			}
		}
		return zygo.SexpNull, nil
	})
}
