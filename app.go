package main

import (
	"context"
	"log"

	"github.com/chazu/strut/pkg/engine"
	"github.com/chazu/strut/pkg/fuse"
	"github.com/chazu/strut/pkg/geom"
	"github.com/chazu/strut/pkg/kernel"
	"github.com/chazu/strut/pkg/kernel/sdfx"
	"github.com/chazu/strut/pkg/mesh"
	"github.com/chazu/strut/pkg/raster"
	"github.com/chazu/strut/pkg/support"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// supportColor marks the fused plate-and-supports mesh in the viewport.
const supportColor = "#95A5A6"

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// PointData is a plate-plane point for the frontend.
type PointData struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// SupportData is a JSON-serializable placed support.
type SupportData struct {
	ID            string      `json:"id"`
	Type          string      `json:"type"`
	CenterX       float64     `json:"centerX"`
	CenterZ       float64     `json:"centerZ"`
	Height        float64     `json:"height"`
	BaseY         float64     `json:"baseY"`
	ContactOffset float64     `json:"contactOffset"`
	Polygon       []PointData `json:"polygon"`
	CornerRadius  float64     `json:"cornerRadius"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes            []MeshData      `json:"meshes"`
	Supports          []SupportData   `json:"supports"`
	Errors            []EvalErrorData `json:"errors"`
	Message           string          `json:"message"`
	TotalOverhangArea float64         `json:"totalOverhangArea"`
	DebugPerimeter    []PointData     `json:"debugPerimeter"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Evaluate takes fixture script source and returns part meshes, placed
// supports, and the fused plate mesh. This is the primary binding
// called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Supports: []SupportData{},
		Errors:   []EvalErrorData{},
	}

	// Step 1: Evaluate the script into a fixture request.
	req, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 2: Solid-model and mesh every placement.
	objs, err := engine.Build(req, a.kernel)
	if err != nil {
		log.Printf("Build error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "modeling failed: " + err.Error()})
		return result
	}

	for i, o := range objs {
		result.Meshes = append(result.Meshes, bakeMesh(o, colorPalette[i%len(colorPalette)]))
	}

	if len(objs) == 0 {
		return result
	}

	// Step 3: Place supports on the plate plane.
	placement := support.PlaceOverhangSupports(objs, 0, placementOptions(req))
	result.Message = placement.Message
	result.TotalOverhangArea = placement.TotalOverhangArea
	result.DebugPerimeter = toPointData(placement.DebugPerimeter)
	for _, s := range placement.Supports {
		result.Supports = append(result.Supports, SupportData{
			ID:            s.ID,
			Type:          s.Type,
			CenterX:       s.CenterX,
			CenterZ:       s.CenterZ,
			Height:        s.Height,
			BaseY:         s.BaseY,
			ContactOffset: s.ContactOffset,
			Polygon:       toPointData(s.Polygon),
			CornerRadius:  s.CornerRadius,
		})
	}

	// Step 4: Fuse supports onto the baseplate and mesh the result.
	plate := fuse.Baseplate(a.kernel, req.Plate.Width, req.Plate.Depth, req.Plate.Thickness)
	assembly, err := fuse.Assemble(a.kernel, plate, placement.Supports)
	if err != nil {
		log.Printf("Assemble error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "support fusing failed: " + err.Error()})
		return result
	}
	fused, err := a.kernel.ToMesh(assembly)
	if err != nil {
		log.Printf("ToMesh error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "plate meshing failed: " + err.Error()})
		return result
	}
	fused.PartName = "plate"
	result.Meshes = append(result.Meshes, bakeMesh(mesh.Object{
		Mesh:      mesh.FromZUp(fused),
		Transform: mesh.Identity(),
	}, supportColor))

	return result
}

// placementOptions fills in the runtime collaborators a script cannot
// name: the software rasterizer for the accurate top-down silhouette.
// Concave-hull tracing remains the fallback inside the pipeline.
func placementOptions(req *engine.Request) support.Options {
	opts := req.Options
	if opts.Rasterizer == nil {
		opts.Rasterizer = raster.Software{}
	}
	return opts
}

// bakeMesh applies an object's world transform to its vertices and
// packages it for the frontend.
func bakeMesh(o mesh.Object, color string) MeshData {
	verts := make([]float32, len(o.Mesh.Vertices))
	for i := 0; i+2 < len(o.Mesh.Vertices); i += 3 {
		v := o.Transform.Apply(mesh.Vec3{
			X: float64(o.Mesh.Vertices[i]),
			Y: float64(o.Mesh.Vertices[i+1]),
			Z: float64(o.Mesh.Vertices[i+2]),
		})
		verts[i] = float32(v.X)
		verts[i+1] = float32(v.Y)
		verts[i+2] = float32(v.Z)
	}
	return MeshData{
		Vertices: verts,
		Normals:  o.Mesh.Normals,
		Indices:  o.Mesh.Indices,
		PartName: o.Mesh.PartName,
		Color:    color,
	}
}

func toPointData(pts []geom.Point2D) []PointData {
	out := make([]PointData, len(pts))
	for i, p := range pts {
		out[i] = PointData{X: p.X, Z: p.Z}
	}
	return out
}
