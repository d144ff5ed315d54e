// Package geom is the geometry kernel: points, axis-aligned rectangles,
// simple polygons, and the robust segment predicates the rest of the core
// is built on. Every operation here is total and deterministic — degenerate
// input yields a documented sentinel rather than an error or a panic.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the default tolerance used throughout the kernel for
// "same point", "parallel", and "proper intersection" tests.
const Epsilon = 1e-10

// Point is a pair of double-precision coordinates. It is a value type and
// is freely copied; geometric "same point" uses Epsilon, bitwise equality
// uses ==.
type Point struct {
	X, Y float64
}

func (p Point) String() string { return fmt.Sprintf("(%v, %v)", p.X, p.Y) }

// Add returns the standard vector sum of p and q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the standard vector difference of p and q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by m.
func (p Point) Mul(m float64) Point { return Point{p.X * m, p.Y * m} }

// Div returns p scaled by 1/m.
func (p Point) Div(m float64) Point { return Point{p.X / m, p.Y / m} }

// Dot returns the standard dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the z-component of the 3D cross product of p and q treated
// as vectors from the origin; its sign gives the turn direction from p to q.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Norm returns the Euclidean length of p treated as a vector from the origin.
func (p Point) Norm() float64 { return math.Sqrt(p.Dot(p)) }

// Norm2 returns the squared Euclidean length, avoiding the sqrt.
func (p Point) Norm2() float64 { return p.Dot(p) }

// AlmostEqual reports whether p and q are within Epsilon of each other.
func (p Point) AlmostEqual(q Point) bool {
	return Distance(p, q) < Epsilon
}

// Distance returns the Euclidean distance between p and q; exact (zero)
// for equal points.
func Distance(p, q Point) float64 {
	return p.Sub(q).Norm()
}
