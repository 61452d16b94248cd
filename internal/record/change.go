package record

// ContainerType hints which container to create when a path segment is
// missing during path application.
type ContainerType string

const (
	// ContainerObject creates a map[string]any.
	ContainerObject ContainerType = "object"
	// ContainerArray creates a []any; its segments are decimal indexes.
	ContainerArray ContainerType = "array"
	// ContainerMap is accepted as a synonym for object. The reactive
	// layer distinguishes Map-backed observables, the persisted shape
	// does not.
	ContainerMap ContainerType = "map"
)

// Change is one path-addressed mutation from the reactive layer.
//
// PathTypes runs parallel to Path: PathTypes[i] is the container type
// of the value addressed by Path[:i+1], consulted only when an
// intermediate container must be created.
//
// An empty Path denotes replacement of the whole table value. Within
// one batch a replacement is authoritative: the reducer applies it and
// ignores any remaining changes.
type Change struct {
	Path      []string
	PathTypes []ContainerType
	Value     any
}
