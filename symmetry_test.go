package main

import (
	"errors"
	"math"
	"testing"
)

func TestGroupNames(t *testing.T) {
	names := GroupNames()
	if names[0] != "none" {
		t.Errorf("first group = %q, want none", names[0])
	}
	if len(names) != len(wallpaperGroups) {
		t.Errorf("got %d names for %d groups", len(names), len(wallpaperGroups))
	}
	for _, n := range names {
		if !IsKnownGroup(n) {
			t.Errorf("%q listed but unknown", n)
		}
	}
	if IsKnownGroup("p5") {
		t.Error("p5 reported as known")
	}
}

func TestGroupOrder(t *testing.T) {
	tests := map[string]int{
		"none": 1, "p1": 1, "p2": 2, "pm": 2, "pg": 2, "cm": 2,
		"pmm": 4, "pmg": 4, "pgg": 4, "cmm": 4,
		"p4": 4, "p4m": 8, "p4g": 8,
		"p3": 3, "p3m1": 6, "p31m": 6, "p6": 6, "p6m": 12,
	}
	if len(tests) != len(wallpaperGroups) {
		t.Errorf("%d groups defined, want the 17 wallpaper groups plus none", len(wallpaperGroups))
	}
	for name, want := range tests {
		if got := GroupOrder(name); got != want {
			t.Errorf("GroupOrder(%q) = %d, want %d", name, got, want)
		}
	}
}

func testKey(group string) LatticeKey {
	return LatticeKey{Group: group, Width: 640, Height: 400, Spacing: 120, X: 320, Y: 200, Rotation: 0.3}
}

func TestNoneIsSingleIdentity(t *testing.T) {
	ts, err := NewSymmetryProvider().Transforms(testKey("none"))
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 1 {
		t.Fatalf("got %d transforms, want 1", len(ts))
	}
	p := Point{12, 34}
	if q := ts[0].Apply(p); math.Abs(q.X-p.X) > 1e-9 || math.Abs(q.Y-p.Y) > 1e-9 {
		t.Errorf("none moved %v to %v", p, q)
	}
}

func TestTransformsAreIsometries(t *testing.T) {
	sp := NewSymmetryProvider()
	for _, name := range GroupNames() {
		t.Run(name, func(t *testing.T) {
			key := testKey(name)
			ts, err := sp.Transforms(key)
			if err != nil {
				t.Fatal(err)
			}
			pts, err := sp.Lattice(key)
			if err != nil {
				t.Fatal(err)
			}
			if len(ts) != len(pts)*GroupOrder(name) {
				t.Errorf("%d transforms for %d cells of order %d", len(ts), len(pts), GroupOrder(name))
			}

			a, b := Point{300, 180}, Point{340, 230}
			hasIdentity := false
			for _, m := range ts {
				if math.Abs(math.Abs(m.Determinant())-1) > 1e-9 {
					t.Fatalf("determinant %g is not +-1", m.Determinant())
				}
				if d := m.Apply(a).Dist(m.Apply(b)); math.Abs(d-a.Dist(b)) > 1e-6 {
					t.Fatalf("distance changed to %g", d)
				}
				if m.Apply(a).Dist(a) < 1e-9 && m.Apply(b).Dist(b) < 1e-9 {
					hasIdentity = true
				}
			}
			if !hasIdentity {
				t.Error("identity missing from the set")
			}
		})
	}
}

// latticeInt reports whether v is an integer combination of the basis
// whose inverse is inv.
func latticeInt(inv Affine, v Point) bool {
	ij := inv.Apply(v)
	return math.Abs(ij.X-math.Round(ij.X)) < 1e-9 && math.Abs(ij.Y-math.Round(ij.Y)) < 1e-9
}

// sameModLattice reports whether a and b differ by a lattice translation.
func sameModLattice(inv, a, b Affine) bool {
	d := a.Invert().Mul(b)
	if math.Abs(d.A-1) > 1e-9 || math.Abs(d.B) > 1e-9 || math.Abs(d.D) > 1e-9 || math.Abs(d.E-1) > 1e-9 {
		return false
	}
	return latticeInt(inv, Point{d.C, d.F})
}

func TestGroupsCloseModuloLattice(t *testing.T) {
	for name, g := range wallpaperGroups {
		t.Run(name, func(t *testing.T) {
			inv := Affine{A: g.b1.X, B: g.b2.X, D: g.b1.Y, E: g.b2.Y}.Invert()
			for i, op := range g.ops {
				linear := Affine{A: op.A, B: op.B, D: op.D, E: op.E}
				if !latticeInt(inv, linear.Apply(g.b1)) || !latticeInt(inv, linear.Apply(g.b2)) {
					t.Errorf("op %d does not map the lattice onto itself", i)
				}
				for j := range g.ops[:i] {
					if sameModLattice(inv, op, g.ops[j]) {
						t.Errorf("ops %d and %d coincide", j, i)
					}
				}
			}
			for _, a := range g.ops {
				for _, b := range g.ops {
					found := false
					for _, c := range g.ops {
						if sameModLattice(inv, c, a.Mul(b)) {
							found = true
							break
						}
					}
					if !found {
						t.Fatalf("product %+v is not in the group", a.Mul(b))
					}
				}
			}
		})
	}
}

func TestMirrorPlacement(t *testing.T) {
	centroid := Point{0.5, math.Sqrt(3) / 6}
	fixes := func(name string, p Point) bool {
		for _, op := range wallpaperGroups[name].ops {
			if op.Determinant() < 0 && op.Apply(p).Dist(p) < 1e-9 {
				return true
			}
		}
		return false
	}
	// In p3m1 every 3-fold centre lies on a mirror, in p31m the triangle
	// centres do not.
	if !fixes("p3m1", centroid) {
		t.Error("p3m1 has no mirror through the triangle centre")
	}
	if fixes("p31m", centroid) {
		t.Error("p31m mirrors pass through the triangle centre")
	}
	// pgg has glides only, pmg has true mirrors.
	for _, name := range []string{"pg", "pgg"} {
		for _, op := range wallpaperGroups[name].ops {
			if op.Determinant() < 0 {
				if q := op.Apply(op.Apply(Point{0.1, 0.2})); q.Dist(Point{0.1, 0.2}) < 1e-9 {
					t.Errorf("%s has a plain mirror", name)
				}
			}
		}
	}
	if !fixes("pmg", Point{0.25, 0.3}) {
		t.Error("pmg has no mirror at x = 1/4")
	}
}

func TestLatticeCoversGrid(t *testing.T) {
	pts, err := NewSymmetryProvider().Lattice(testKey("p4"))
	if err != nil {
		t.Fatal(err)
	}
	// Every grid corner is within one cell diagonal of some lattice point.
	for _, c := range []Point{{0, 0}, {640, 0}, {0, 400}, {640, 400}} {
		best := math.Inf(1)
		for _, p := range pts {
			best = math.Min(best, p.Dist(c))
		}
		if best > 120*math.Sqrt2 {
			t.Errorf("corner %v is %g from the nearest lattice point", c, best)
		}
	}
}

func TestProviderCachesByKey(t *testing.T) {
	sp := NewSymmetryProvider()
	a, err := sp.Transforms(testKey("p3"))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := sp.Transforms(testKey("p3"))
	if &a[0] != &b[0] {
		t.Error("equal keys did not share the cached set")
	}
	other := testKey("p3")
	other.Spacing = 90
	c, _ := sp.Transforms(other)
	if len(c) == len(a) && &c[0] == &a[0] {
		t.Error("different spacing returned the cached set")
	}
}

func TestProviderErrors(t *testing.T) {
	sp := NewSymmetryProvider()
	if _, err := sp.Transforms(testKey("p9")); !errors.Is(err, ErrUnknownGroup) {
		t.Errorf("unknown group error = %v", err)
	}
	dense := testKey("p1")
	dense.Spacing = 1
	if _, err := sp.Transforms(dense); !errors.Is(err, ErrLatticeTooDense) {
		t.Errorf("dense lattice error = %v", err)
	}
	zero := testKey("p1")
	zero.Spacing = 0
	if _, err := sp.Transforms(zero); err == nil {
		t.Error("zero spacing accepted")
	}
}

func TestAffineInvertAndMul(t *testing.T) {
	m := Translate(5, -3).Mul(Rotate(0.7)).Mul(ScaleXY(2, 3))
	p := Point{4, 9}
	if q := m.Invert().Apply(m.Apply(p)); q.Dist(p) > 1e-9 {
		t.Errorf("invert round trip gave %v, want %v", q, p)
	}
	// Mul applies the right operand first.
	got := Translate(10, 0).Mul(ReflectX()).Apply(Point{1, 2})
	if got != (Point{9, 2}) {
		t.Errorf("T*R(1,2) = %v, want (9,2)", got)
	}
	if r := (Point{3, 4}).ReflectThrough(Point{1, 1}); r != (Point{-1, -2}) {
		t.Errorf("ReflectThrough = %v", r)
	}
}
