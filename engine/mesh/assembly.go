package mesh

// Assembly is the primitive topology used to group vertices for drawing.
type Assembly int

const (
	AssemblyTriangles Assembly = iota
	AssemblyPoints
	AssemblyLines
	AssemblyLineLoop
	AssemblyLineStrip
	AssemblyTriangleStrip
	AssemblyTriangleFan
)

func (a Assembly) String() string {
	switch a {
	case AssemblyTriangles:
		return "Triangles"
	case AssemblyPoints:
		return "Points"
	case AssemblyLines:
		return "Lines"
	case AssemblyLineLoop:
		return "LineLoop"
	case AssemblyLineStrip:
		return "LineStrip"
	case AssemblyTriangleStrip:
		return "TriangleStrip"
	case AssemblyTriangleFan:
		return "TriangleFan"
	default:
		return "Unknown"
	}
}
