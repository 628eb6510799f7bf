// Package glyph turns font glyph outlines into extruded 3D text meshes.
// Outlines come from a TTF via x/image/font/sfnt; pre-modelled meshes can
// also be loaded from glTF instead.
package glyph

import (
	"fmt"
	"os"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"glyphlight/scene"
)

// Typeface wraps a parsed font. It is not safe for concurrent use; the
// sfnt buffer is reused across glyph loads.
type Typeface struct {
	font *sfnt.Font
	buf  sfnt.Buffer
}

// Load parses the TTF at path. An empty path selects the embedded Latin
// Modern Roman face.
func Load(path string) (*Typeface, error) {
	if path == "" {
		return Parse(lmroman10regular.TTF)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Typeface, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Typeface{font: f}, nil
}

// MeshOptions controls glyph mesh generation.
type MeshOptions struct {
	Height     float32 // target glyph height in world units
	Depth      float32 // extrusion depth
	CurveSteps int     // line segments per bezier
}

func DefaultMeshOptions() MeshOptions {
	return MeshOptions{
		Height:     1.0,
		Depth:      0.2,
		CurveSteps: 8,
	}
}

// glyphPPEM is the pixels-per-em the outline is loaded at; the mesh is
// rescaled to MeshOptions.Height afterwards, so the value only sets the
// precision of the fixed-point outline coordinates.
const glyphPPEM = 64

// GlyphMesh extrudes one glyph into a centered 3D mesh.
func (t *Typeface) GlyphMesh(r rune, opts MeshOptions) (*scene.Mesh, error) {
	if opts.Height <= 0 {
		opts.Height = 1
	}
	if opts.Depth <= 0 {
		opts.Depth = 0.2
	}
	if opts.CurveSteps < 1 {
		opts.CurveSteps = 8
	}

	idx, err := t.font.GlyphIndex(&t.buf, r)
	if err != nil {
		return nil, fmt.Errorf("glyph index for %q: %w", r, err)
	}
	if idx == 0 {
		return nil, fmt.Errorf("font has no glyph for %q", r)
	}

	segments, err := t.font.LoadGlyph(&t.buf, idx, fixed.I(glyphPPEM), nil)
	if err != nil {
		return nil, fmt.Errorf("load glyph %q: %w", r, err)
	}

	contours := flattenSegments(segments, opts.CurveSteps)
	if len(contours) == 0 {
		return nil, fmt.Errorf("glyph %q has an empty outline", r)
	}

	mesh, err := extrudeContours(fmt.Sprintf("Glyph_%c", r), contours, opts.Height, opts.Depth)
	if err != nil {
		return nil, fmt.Errorf("extrude glyph %q: %w", r, err)
	}
	return mesh, nil
}

// Result delivers an asynchronously generated glyph mesh.
type Result struct {
	Mesh *scene.Mesh
	Err  error
}

// GenerateAsync runs GlyphMesh on its own goroutine. Each call must use
// its own Typeface; the sfnt buffer is not shared safely.
func GenerateAsync(t *Typeface, r rune, opts MeshOptions) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		mesh, err := t.GlyphMesh(r, opts)
		ch <- Result{Mesh: mesh, Err: err}
	}()
	return ch
}
