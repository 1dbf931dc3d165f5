package main

import "math"

type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }

// Normalize returns the unit vector in the direction of p, or the zero
// vector when p has no length.
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// ReflectThrough mirrors p through the point c.
func (p Point) ReflectThrough(c Point) Point {
	return Point{2*c.X - p.X, 2*c.Y - p.Y}
}

// Affine is a 2D affine transform stored as the top two rows of a 3x3
// matrix:
//
//	| A  B  C |
//	| D  E  F |
//
// so that x' = A*x + B*y + C and y' = D*x + E*y + F.
type Affine struct {
	A, B, C float64
	D, E, F float64
}

func Identity() Affine {
	return Affine{A: 1, E: 1}
}

func Translate(x, y float64) Affine {
	return Affine{A: 1, C: x, E: 1, F: y}
}

func Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{A: cos, B: -sin, D: sin, E: cos}
}

func ScaleXY(sx, sy float64) Affine {
	return Affine{A: sx, E: sy}
}

// ReflectX mirrors across the y axis (x -> -x).
func ReflectX() Affine {
	return Affine{A: -1, E: 1}
}

// ReflectY mirrors across the x axis (y -> -y).
func ReflectY() Affine {
	return Affine{A: 1, E: -1}
}

// Mul returns m*n, the transform that applies n first and then m.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

func (m Affine) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

func (m Affine) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse transform. A singular matrix yields the
// identity.
func (m Affine) Invert() Affine {
	det := m.Determinant()
	if det == 0 {
		return Identity()
	}
	inv := 1 / det
	return Affine{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.E*m.C) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.D*m.C - m.A*m.F) * inv,
	}
}
