package mesh

// ResourceState is the lifecycle state of a MeshResource payload.
type ResourceState int

const (
	// ResourceEmpty is the state of a resource that has never been updated.
	ResourceEmpty ResourceState = iota
	// ResourcePopulated means geometry is present and not yet fetched.
	ResourcePopulated
	// ResourceFetched means the geometry has been moved out by Fetch.
	ResourceFetched
)

func (s ResourceState) String() string {
	switch s {
	case ResourceEmpty:
		return "Empty"
	case ResourcePopulated:
		return "Populated"
	case ResourceFetched:
		return "Fetched"
	default:
		return "Unknown"
	}
}

// MeshResource owns the geometry of one drawable primitive until a consumer fetches it.
// Fetch moves the payload out: a second Fetch without an intervening Update returns nothing.
// Not safe for concurrent use; one consumer per resource.
type MeshResource struct {
	assembly Assembly
	state    ResourceState
	indices  *Indices
	vertices *VertexData
}

// NewMeshResource creates an empty resource with Triangles assembly.
func NewMeshResource() *MeshResource {
	return &MeshResource{assembly: AssemblyTriangles}
}

// Assembly returns the resource's topology.
func (m *MeshResource) Assembly() Assembly {
	return m.assembly
}

// SetAssembly changes the resource's topology.
func (m *MeshResource) SetAssembly(a Assembly) {
	m.assembly = a
}

// State returns the current lifecycle state.
func (m *MeshResource) State() ResourceState {
	return m.state
}

// Has reports whether a payload is available to Fetch.
func (m *MeshResource) Has() bool {
	return m.state == ResourcePopulated
}

// Update replaces the payload and moves the resource to Populated.
// Indices may be nil for non-indexed geometry; a nil vertices argument is ignored.
//
// Parameters:
//   - indices: the index buffer or nil
//   - vertices: the packed vertex data
func (m *MeshResource) Update(indices *Indices, vertices *VertexData) {
	if vertices == nil {
		return
	}
	m.indices = indices
	m.vertices = vertices
	m.state = ResourcePopulated
}

// Fetch moves the payload out of the resource.
//
// Returns:
//   - *Indices: the index buffer, nil for non-indexed geometry
//   - *VertexData: the vertex data
//   - bool: false when the resource is Empty or already Fetched
func (m *MeshResource) Fetch() (*Indices, *VertexData, bool) {
	if m.state != ResourcePopulated {
		return nil, nil, false
	}
	indices, vertices := m.indices, m.vertices
	m.indices, m.vertices = nil, nil
	m.state = ResourceFetched
	return indices, vertices, true
}

// Peek returns the payload without consuming it.
func (m *MeshResource) Peek() (*Indices, *VertexData) {
	return m.indices, m.vertices
}
