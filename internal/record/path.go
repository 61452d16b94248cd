package record

import "strconv"

// ApplyAtPath applies value onto t at the given path, creating missing
// intermediate containers according to types. A nil value deletes the
// addressed entry instead of assigning it.
//
// The path must be non-empty; whole-table replacement is the reducer's
// job, not this primitive's. Array segments are decimal indexes and the
// array grows as needed to admit them.
func ApplyAtPath(t Table, path []string, types []ContainerType, value any) {
	if len(path) == 0 {
		return
	}
	applySegment(map[string]any(t), path, types, 0, value)
}

// applySegment descends one level and returns the (possibly regrown)
// container so slice growth propagates back up to the parent.
func applySegment(container any, path []string, types []ContainerType, depth int, value any) any {
	seg := path[depth]
	if depth == len(path)-1 {
		return assign(container, seg, value)
	}
	child := lookup(container, seg)
	if !isContainer(child) {
		// Absent, or a scalar standing where the path needs a container.
		child = newContainer(typeAt(types, depth))
	}
	child = applySegment(child, path, types, depth+1, value)
	return assign(container, seg, child)
}

// lookup reads one segment from a map or slice container. Returns nil
// for anything it cannot descend into, which makes the caller replace
// the entry with a fresh container.
func lookup(container any, seg string) any {
	switch c := container.(type) {
	case map[string]any:
		return c[seg]
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(c) {
			return nil
		}
		return c[i]
	default:
		return nil
	}
}

// assign writes one segment into a map or slice container and returns
// the container. A nil value deletes a map key; in a slice it blanks
// the slot since positions must be preserved.
func assign(container any, seg string, value any) any {
	switch c := container.(type) {
	case map[string]any:
		if value == nil {
			delete(c, seg)
		} else {
			c[seg] = value
		}
		return c
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 {
			return c
		}
		for len(c) <= i {
			c = append(c, nil)
		}
		c[i] = value
		return c
	default:
		// Entry held a scalar; replace it with a map so the write lands.
		m := map[string]any{}
		if value != nil {
			m[seg] = value
		}
		return m
	}
}

// isContainer reports whether v can be descended into.
func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}

// typeAt returns the hint for depth, defaulting to object when the
// hints run short.
func typeAt(types []ContainerType, depth int) ContainerType {
	if depth < len(types) {
		return types[depth]
	}
	return ContainerObject
}

// newContainer materializes an empty container for a type hint.
func newContainer(t ContainerType) any {
	if t == ContainerArray {
		return []any{}
	}
	return map[string]any{}
}
