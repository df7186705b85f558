package papercut

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUVertexSize is the size in bytes of one encoded GPUVertex.
const GPUVertexSize = 28

// GlobalsSize is the size in bytes of the encoded Globals uniform.
const GlobalsSize = 128

// GPUVertex is the per-vertex record uploaded to the graphics device:
// a world-space position whose z is the shape's z-index, and a color.
type GPUVertex struct {
	Position [3]float32
	Color    [4]float32
}

// Globals is the per-frame uniform block.
type Globals struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// GrowRequest asks the graphics device to enlarge its vertex and index
// buffers before the frame is uploaded.
type GrowRequest struct {
	VertexCapacity int
	IndexCapacity  int
}

// FrameBuffer is the combined geometry of one frame, drawn with a single
// indexed draw call. It is created by the Assembler and belongs to the
// renderer once handed off; it must not be reused for another frame.
type FrameBuffer struct {
	Vertices   []GPUVertex
	Indices    []uint16
	Globals    Globals
	ClearColor Color

	// Grow is non-nil when the frame does not fit the device buffers the
	// assembler last asked for.
	Grow *GrowRequest
}

// Empty reports whether the frame draws nothing.
func (f *FrameBuffer) Empty() bool {
	return len(f.Indices) == 0
}

// VertexBytes encodes the vertices little-endian, GPUVertexSize bytes each.
func (f *FrameBuffer) VertexBytes() []byte {
	buf := make([]byte, len(f.Vertices)*GPUVertexSize)
	off := 0
	for _, v := range f.Vertices {
		for _, c := range v.Position {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(c))
			off += 4
		}
		for _, c := range v.Color {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(c))
			off += 4
		}
	}
	return buf
}

// IndexBytes encodes the indices little-endian, padded with zeros to a
// multiple of four bytes as buffer uploads require.
func (f *FrameBuffer) IndexBytes() []byte {
	n := len(f.Indices) * 2
	buf := make([]byte, (n+3)&^3)
	for i, idx := range f.Indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

// GlobalsBytes encodes view then projection, column-major float32.
func (f *FrameBuffer) GlobalsBytes() []byte {
	buf := make([]byte, GlobalsSize)
	for i, c := range f.Globals.View {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(c))
	}
	for i, c := range f.Globals.Projection {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(c))
	}
	return buf
}

// AssemblerConfig configures an Assembler.
type AssemblerConfig struct {
	// InitialVertexCapacity and InitialIndexCapacity describe the device
	// buffers that exist before the first frame.
	InitialVertexCapacity int
	InitialIndexCapacity  int

	// AutoUpdate re-tessellates stale shapes while assembling. When false
	// (the default) stale shapes are drawn with their cached geometry.
	AutoUpdate bool

	// ClearColor is copied into every frame.
	ClearColor Color
}

// DefaultAssemblerConfig returns the default assembler configuration.
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		InitialVertexCapacity: 4096,
		InitialIndexCapacity:  8192,
		ClearColor:            White,
	}
}

// Assembler concatenates the cached geometry of every drawable into one
// FrameBuffer per frame.
type Assembler struct {
	config AssemblerConfig
	tess   *Tessellator

	vertexCap int
	indexCap  int

	// Sizes of the previous frame, used to pre-allocate the next one.
	lastVertices int
	lastIndices  int
}

// NewAssembler returns an assembler. The tessellator is used only when
// AutoUpdate is set.
func NewAssembler(tess *Tessellator, config AssemblerConfig) *Assembler {
	if tess == nil {
		tess = NewTessellator(DefaultTolerance)
	}
	return &Assembler{
		config:    config,
		tess:      tess,
		vertexCap: config.InitialVertexCapacity,
		indexCap:  config.InitialIndexCapacity,
	}
}

// Capacity returns the device buffer sizes the assembler assumes.
func (a *Assembler) Capacity() (vertices, indices int) {
	return a.vertexCap, a.indexCap
}

// SetCapacity records the actual device buffer sizes, for example after
// the device recreated its buffers.
func (a *Assembler) SetCapacity(vertices, indices int) {
	a.vertexCap, a.indexCap = vertices, indices
}

// BuildFrame walks pairs in order, so later pairs draw on top, and appends
// each drawable's cached geometry transformed to world space. Indices are
// offset by the number of vertices already in the frame.
//
// A frame that needs more than MaxVertices vertices fails with
// ErrCapacityExceeded and no frame is returned.
func (a *Assembler) BuildFrame(pairs iter.Seq2[*Transform, Drawable], cam *Camera) (*FrameBuffer, error) {
	if cam == nil {
		return nil, ErrNilCamera
	}

	frame := &FrameBuffer{
		Vertices:   make([]GPUVertex, 0, a.lastVertices),
		Indices:    make([]uint16, 0, a.lastIndices),
		Globals:    Globals{View: cam.View(), Projection: cam.Projection()},
		ClearColor: a.config.ClearColor,
	}

	for tr, d := range pairs {
		if tr == nil || d == nil {
			continue
		}
		if a.config.AutoUpdate && d.staleFor(a.tess) {
			d.Update(a.tess)
		}
		g := d.Geometry()
		if g.Empty() {
			continue
		}

		base := len(frame.Vertices)
		if need := base + len(g.Vertices); need > MaxVertices {
			return nil, fmt.Errorf("papercut: frame needs %d vertices, limit is %d: %w", need, MaxVertices, ErrCapacityExceeded)
		}

		m := tr.WorldMatrix()
		z := float32(d.zIndex())
		for _, v := range g.Vertices {
			p := m.Mul4x1(mgl32.Vec4{float32(v.Position.X), float32(v.Position.Y), 0, 1})
			frame.Vertices = append(frame.Vertices, GPUVertex{
				Position: [3]float32{p.X(), p.Y(), z},
				Color:    v.Color.Array(),
			})
		}
		offset := uint16(base)
		for _, i := range g.Indices {
			frame.Indices = append(frame.Indices, i+offset)
		}
	}

	a.lastVertices = len(frame.Vertices)
	a.lastIndices = len(frame.Indices)
	a.requestGrowth(frame)
	return frame, nil
}

// requestGrowth attaches a GrowRequest when the frame exceeds the known
// capacity. New capacities are the next power of two, vertices capped at
// MaxVertices. The assembler assumes the device honors the request.
func (a *Assembler) requestGrowth(frame *FrameBuffer) {
	nv, ni := len(frame.Vertices), len(frame.Indices)
	if nv <= a.vertexCap && ni <= a.indexCap {
		return
	}
	vc := max(a.vertexCap, nextPowerOfTwo(nv))
	if vc > MaxVertices {
		vc = MaxVertices
	}
	ic := max(a.indexCap, nextPowerOfTwo(ni))

	frame.Grow = &GrowRequest{VertexCapacity: vc, IndexCapacity: ic}
	Logger().Debug("papercut: buffer growth requested",
		"vertices", nv, "vertexCapacity", vc,
		"indices", ni, "indexCapacity", ic)
	a.vertexCap, a.indexCap = vc, ic
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
