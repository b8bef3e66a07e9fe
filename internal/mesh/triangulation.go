package mesh

import "sort"

// Triangle is an index triple over a LandmarkSet.
type Triangle [3]int

// Edge is an undirected landmark pair with A < B.
type Edge struct {
	A, B int
}

// Table is an immutable triangulation. Triangles share vertices; the table is
// a mesh, not a partition.
type Table struct {
	version   string
	triangles []Triangle
	patch     int // trailing triangles that close the mouth
}

var defaultTable = newTable(TableVersion, faceTriangles, lipPatchTriangles)

func newTable(version string, face, patch []Triangle) *Table {
	tris := make([]Triangle, 0, len(face)+len(patch))
	tris = append(tris, face...)
	tris = append(tris, patch...)
	return &Table{version: version, triangles: tris, patch: len(patch)}
}

// DefaultTable returns the shipped face triangulation including the lip patch.
func DefaultTable() *Table {
	return defaultTable
}

// NewTable builds a table from arbitrary triangles (tests, custom meshes).
func NewTable(version string, tris []Triangle) *Table {
	return newTable(version, tris, nil)
}

func (t *Table) Version() string { return t.version }

func (t *Table) Len() int { return len(t.triangles) }

// At returns triangle i.
func (t *Table) At(i int) Triangle { return t.triangles[i] }

// PatchLen returns how many trailing triangles belong to the mouth patch.
func (t *Table) PatchLen() int { return t.patch }

// Each calls fn for every triangle in table order.
func (t *Table) Each(fn func(i int, tri Triangle)) {
	for i, tri := range t.triangles {
		fn(i, tri)
	}
}

// MaxIndex returns the highest landmark index referenced, or -1 when empty.
func (t *Table) MaxIndex() int {
	max := -1
	for _, tri := range t.triangles {
		for _, i := range tri {
			if i > max {
				max = i
			}
		}
	}
	return max
}

// RepeatedIndex counts triangles naming the same landmark twice. Those have
// zero area at every pose.
func (t *Table) RepeatedIndex() int {
	n := 0
	for _, tri := range t.triangles {
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			n++
		}
	}
	return n
}

// Edges returns the unique undirected edges, sorted.
func (t *Table) Edges() []Edge {
	seen := make(map[Edge]struct{}, len(t.triangles)*3)
	for _, tri := range t.triangles {
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}
			seen[Edge{a, b}] = struct{}{}
		}
	}
	edges := make([]Edge, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}
