package main

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrUnknownGroup    = errors.New("unknown symmetry group")
	ErrLatticeTooDense = errors.New("lattice too dense")
)

const maxLatticeCells = 2048

// LatticeKey is the full argument tuple of the transform provider. Equal
// keys always produce equal transform sets.
type LatticeKey struct {
	Group    string
	Width    int
	Height   int
	Spacing  float64
	Rotation float64
	X        float64
	Y        float64
}

// TransformSource produces the ordered affine transform set and the raw
// lattice points for a symmetry group laid over a grid.
type TransformSource interface {
	Transforms(key LatticeKey) ([]Affine, error)
	Lattice(key LatticeKey) ([]Point, error)
}

type wallpaperGroup struct {
	b1, b2 Point
	ops    []Affine
	single bool
}

var (
	rectBasis = [2]Point{{1, 0}, {0, 1}}
	hexBasis  = [2]Point{{1, 0}, {0.5, math.Sqrt(3) / 2}}
	// centredBasis is a rectangular cell 1 x 1.5 with a point in its middle.
	centredBasis = [2]Point{{1, 0}, {0.5, 0.75}}
)

func rotations(n int) []Affine {
	ops := make([]Affine, n)
	for k := 0; k < n; k++ {
		ops[k] = Rotate(2 * math.Pi * float64(k) / float64(n))
	}
	return ops
}

func withMirror(ops []Affine, mirror Affine) []Affine {
	out := append([]Affine{}, ops...)
	for _, op := range ops {
		out = append(out, op.Mul(mirror))
	}
	return out
}

// Point-group operations are in lattice units. Glides and off-origin
// mirrors carry their half-cell translation.
var wallpaperGroups = map[string]wallpaperGroup{
	"none": {b1: rectBasis[0], b2: rectBasis[1], ops: []Affine{Identity()}, single: true},
	"p1":   {b1: rectBasis[0], b2: rectBasis[1], ops: rotations(1)},
	"p2":   {b1: rectBasis[0], b2: rectBasis[1], ops: rotations(2)},
	"pm":   {b1: rectBasis[0], b2: rectBasis[1], ops: withMirror(rotations(1), ReflectX())},
	"pg":   {b1: rectBasis[0], b2: rectBasis[1], ops: withMirror(rotations(1), Translate(0, 0.5).Mul(ReflectX()))},
	"cm":   {b1: centredBasis[0], b2: centredBasis[1], ops: withMirror(rotations(1), ReflectX())},
	"pmm":  {b1: rectBasis[0], b2: rectBasis[1], ops: withMirror(rotations(2), ReflectX())},
	"pmg":  {b1: rectBasis[0], b2: rectBasis[1], ops: withMirror(rotations(2), Translate(0.5, 0).Mul(ReflectX()))},
	"pgg":  {b1: rectBasis[0], b2: rectBasis[1], ops: withMirror(rotations(2), Translate(0.5, 0.5).Mul(ReflectX()))},
	"cmm":  {b1: centredBasis[0], b2: centredBasis[1], ops: withMirror(rotations(2), ReflectX())},
	"p4":   {b1: rectBasis[0], b2: rectBasis[1], ops: rotations(4)},
	"p4m":  {b1: rectBasis[0], b2: rectBasis[1], ops: withMirror(rotations(4), ReflectY())},
	"p4g":  {b1: rectBasis[0], b2: rectBasis[1], ops: withMirror(rotations(4), Translate(0.5, 0.5).Mul(ReflectX()))},
	"p3":   {b1: hexBasis[0], b2: hexBasis[1], ops: rotations(3)},
	"p3m1": {b1: hexBasis[0], b2: hexBasis[1], ops: withMirror(rotations(3), ReflectX())},
	"p31m": {b1: hexBasis[0], b2: hexBasis[1], ops: withMirror(rotations(3), ReflectY())},
	"p6":   {b1: hexBasis[0], b2: hexBasis[1], ops: rotations(6)},
	"p6m":  {b1: hexBasis[0], b2: hexBasis[1], ops: withMirror(rotations(6), ReflectY())},
}

// GroupNames lists the supported groups in a stable order, "none" first.
func GroupNames() []string {
	names := make([]string, 0, len(wallpaperGroups))
	for name := range wallpaperGroups {
		if name != "none" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{"none"}, names...)
}

func IsKnownGroup(name string) bool {
	_, ok := wallpaperGroups[name]
	return ok
}

// GroupOrder is the number of point-group elements per lattice cell.
func GroupOrder(name string) int {
	return len(wallpaperGroups[name].ops)
}

type latticeResult struct {
	transforms []Affine
	points     []Point
}

// SymmetryProvider generates wallpaper transform sets and memoizes them by
// argument tuple.
type SymmetryProvider struct {
	cache    map[LatticeKey]latticeResult
	maxCache int
}

func NewSymmetryProvider() *SymmetryProvider {
	return &SymmetryProvider{
		cache:    make(map[LatticeKey]latticeResult),
		maxCache: 64,
	}
}

func (s *SymmetryProvider) Transforms(key LatticeKey) ([]Affine, error) {
	res, err := s.lookup(key)
	if err != nil {
		return nil, err
	}
	return res.transforms, nil
}

func (s *SymmetryProvider) Lattice(key LatticeKey) ([]Point, error) {
	res, err := s.lookup(key)
	if err != nil {
		return nil, err
	}
	return res.points, nil
}

func (s *SymmetryProvider) lookup(key LatticeKey) (latticeResult, error) {
	if res, ok := s.cache[key]; ok {
		return res, nil
	}
	res, err := generateLattice(key)
	if err != nil {
		return latticeResult{}, err
	}
	if len(s.cache) >= s.maxCache {
		s.cache = make(map[LatticeKey]latticeResult)
	}
	s.cache[key] = res
	return res, nil
}

func generateLattice(key LatticeKey) (latticeResult, error) {
	group, ok := wallpaperGroups[key.Group]
	if !ok {
		return latticeResult{}, fmt.Errorf("%w: %q", ErrUnknownGroup, key.Group)
	}
	if key.Spacing <= 0 {
		return latticeResult{}, fmt.Errorf("lattice spacing must be positive, got %g", key.Spacing)
	}

	toCanvas := Translate(key.X, key.Y).Mul(Rotate(key.Rotation)).Mul(ScaleXY(key.Spacing, key.Spacing))
	fromCanvas := toCanvas.Invert()

	imin, imax, jmin, jmax := 0, 0, 0, 0
	if !group.single && key.Width > 0 && key.Height > 0 {
		imin, imax, jmin, jmax = cellRange(group, fromCanvas, float64(key.Width), float64(key.Height))
	}
	cells := (imax - imin + 1) * (jmax - jmin + 1)
	if cells > maxLatticeCells {
		return latticeResult{}, fmt.Errorf("%w: %d cells at spacing %g", ErrLatticeTooDense, cells, key.Spacing)
	}

	res := latticeResult{
		transforms: make([]Affine, 0, cells*len(group.ops)),
		points:     make([]Point, 0, cells),
	}
	for i := imin; i <= imax; i++ {
		for j := jmin; j <= jmax; j++ {
			t := group.b1.Scale(float64(i)).Add(group.b2.Scale(float64(j)))
			cell := toCanvas.Mul(Translate(t.X, t.Y))
			res.points = append(res.points, cell.Apply(Point{}))
			for _, op := range group.ops {
				res.transforms = append(res.transforms, cell.Mul(op).Mul(fromCanvas))
			}
		}
	}
	return res, nil
}

// cellRange returns the lattice index bounds whose cells cover the grid
// rectangle, with one cell of margin on each side.
func cellRange(group wallpaperGroup, fromCanvas Affine, w, h float64) (imin, imax, jmin, jmax int) {
	basis := Affine{A: group.b1.X, B: group.b2.X, D: group.b1.Y, E: group.b2.Y}.Invert()
	corners := []Point{{0, 0}, {w, 0}, {0, h}, {w, h}}
	minI, maxI := math.Inf(1), math.Inf(-1)
	minJ, maxJ := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		ij := basis.Apply(fromCanvas.Apply(c))
		minI, maxI = math.Min(minI, ij.X), math.Max(maxI, ij.X)
		minJ, maxJ = math.Min(minJ, ij.Y), math.Max(maxJ, ij.Y)
	}
	return int(math.Floor(minI)) - 1, int(math.Ceil(maxI)) + 1,
		int(math.Floor(minJ)) - 1, int(math.Ceil(maxJ)) + 1
}
