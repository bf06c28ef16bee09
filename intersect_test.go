package svo

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestIntersects(t *testing.T) {
	unit := r3.Box{Max: r3.Vec{X: 1, Y: 1, Z: 1}}
	for _, test := range []struct {
		name string
		tri  Triangle
		box  r3.Box
		want bool
	}{
		{
			name: "inside",
			tri:  Triangle{{X: .2, Y: .2, Z: .2}, {X: .8, Y: .2, Z: .2}, {X: .2, Y: .8, Z: .5}},
			box:  unit,
			want: true,
		},
		{
			name: "outside",
			tri:  Triangle{{X: 5, Y: 5, Z: 5}, {X: 6, Y: 5, Z: 5}, {X: 5, Y: 6, Z: 5}},
			box:  unit,
			want: false,
		},
		{
			name: "straddles with no vertex inside",
			tri:  Triangle{{X: -10, Y: -10, Z: .5}, {X: 10, Y: -10, Z: .5}, {X: 0, Y: 10, Z: .5}},
			box:  unit,
			want: true,
		},
		{
			name: "crosses one face",
			tri:  Triangle{{X: .5, Y: .5, Z: .5}, {X: 1.5, Y: .5, Z: .5}, {X: .5, Y: .7, Z: .5}},
			box:  unit,
			want: true,
		},
		{
			name: "separated by triangle plane",
			tri:  Triangle{{X: 3.1}, {Y: 3.1}, {Z: 3.1}},
			box:  unit,
			want: false,
		},
		{
			name: "plane cuts corner",
			tri:  Triangle{{X: 2.9}, {Y: 2.9}, {Z: 2.9}},
			box:  unit,
			want: true,
		},
		{
			name: "separated by edge axis",
			tri:  Triangle{{X: 2.2, Y: 0, Z: .5}, {X: 0, Y: 2.2, Z: .5}, {X: 3, Y: 3, Z: .5}},
			box:  unit,
			want: false,
		},
		{
			name: "vertex touches corner",
			tri:  Triangle{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 1, Z: 1}, {X: 1, Y: 2, Z: 2}},
			box:  unit,
			want: true,
		},
		{
			name: "lies on face",
			tri:  Triangle{{X: 1, Y: .2, Z: .2}, {X: 1, Y: .8, Z: .2}, {X: 1, Y: .2, Z: .8}},
			box:  unit,
			want: true,
		},
		{
			name: "lies on face of neighbor",
			tri:  Triangle{{X: 1, Y: .2, Z: .2}, {X: 1, Y: .8, Z: .2}, {X: 1, Y: .2, Z: .8}},
			box:  r3.Box{Min: r3.Vec{X: 1}, Max: r3.Vec{X: 2, Y: 1, Z: 1}},
			want: true,
		},
		{
			name: "parallel to face just outside",
			tri:  Triangle{{X: 1.001, Y: .2, Z: .2}, {X: 1.001, Y: .8, Z: .2}, {X: 1.001, Y: .2, Z: .8}},
			box:  unit,
			want: false,
		},
		{
			name: "lies on non-dyadic face",
			tri:  Triangle{{X: .4, Y: .2, Z: .2}, {X: .4, Y: .3, Z: .2}, {X: .4, Y: .2, Z: .3}},
			box:  r3.Box{Min: r3.Vec{X: .1, Y: .1, Z: .1}, Max: r3.Vec{X: .4, Y: .4, Z: .4}},
			want: true,
		},
		{
			name: "lies on non-dyadic face of neighbor",
			tri:  Triangle{{X: .4, Y: .2, Z: .2}, {X: .4, Y: .3, Z: .2}, {X: .4, Y: .2, Z: .3}},
			box:  r3.Box{Min: r3.Vec{X: .4, Y: .1, Z: .1}, Max: r3.Vec{X: .7, Y: .4, Z: .4}},
			want: true,
		},
		{
			name: "point box on triangle",
			tri:  Triangle{{}, {X: 1}, {Y: 1}},
			box:  r3.Box{},
			want: true,
		},
	} {
		got := Intersects(test.tri, test.box)
		if got != test.want {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}

// Degenerate triangles are tested as the segment or point they collapse to.
func TestIntersectsDegenerate(t *testing.T) {
	unit := r3.Box{Max: r3.Vec{X: 1, Y: 1, Z: 1}}
	p := r3.Vec{X: .5, Y: .5, Z: .5}
	q := r3.Vec{X: 4, Y: .5, Z: .5}
	for _, test := range []struct {
		name string
		tri  Triangle
		want bool
	}{
		{name: "point inside", tri: Triangle{p, p, p}, want: true},
		{name: "point outside", tri: Triangle{q, q, q}, want: false},
		{name: "point on face", tri: Triangle{{X: 1, Y: .5, Z: .5}, {X: 1, Y: .5, Z: .5}, {X: 1, Y: .5, Z: .5}}, want: true},
		{name: "segment through box", tri: Triangle{{X: -1, Y: .5, Z: .5}, q, q}, want: true},
		{name: "collinear through box", tri: Triangle{{X: -1, Y: .5, Z: .5}, p, q}, want: true},
		{name: "segment missing corner", tri: Triangle{{X: 2.2, Z: .5}, {Y: 2.2, Z: .5}, {Y: 2.2, Z: .5}}, want: false},
	} {
		got := Intersects(test.tri, unit)
		if got != test.want {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}

func TestIntersectsOrderIndependent(t *testing.T) {
	box := r3.Box{Min: r3.Vec{X: -1, Y: -1, Z: -1}, Max: r3.Vec{X: 0.5, Y: 0.25, Z: 2}}
	for _, tri := range randomTriangles(200, 3, 1.5) {
		want := Intersects(tri, box)
		perms := [][3]int{{0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
		for _, p := range perms {
			got := Intersects(Triangle{tri[p[0]], tri[p[1]], tri[p[2]]}, box)
			if got != want {
				t.Fatalf("vertex order %v changed result for %v: got %v, want %v", p, tri, got, want)
			}
		}
	}
}

// Triangles touching a box face must intersect the box for arbitrary,
// non power of two box coordinates.
func TestIntersectsFaceContact(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	randVec := func(lo, span float64) r3.Vec {
		return r3.Vec{X: lo + rng.Float64()*span, Y: lo + rng.Float64()*span, Z: lo + rng.Float64()*span}
	}
	// inside returns a random point in box with the given axis fixed to x.
	inside := func(box r3.Box, axis int, x float64) r3.Vec {
		size := r3.Sub(box.Max, box.Min)
		p := r3.Vec{
			X: box.Min.X + rng.Float64()*size.X,
			Y: box.Min.Y + rng.Float64()*size.Y,
			Z: box.Min.Z + rng.Float64()*size.Z,
		}
		return setAxis(p, axis, x)
	}
	for i := 0; i < 20000; i++ {
		min := randVec(-5, 10)
		box := r3.Box{Min: min, Max: r3.Add(min, randVec(.01, 3))}
		for axis := 0; axis < 3; axis++ {
			for _, face := range [2]float64{axisOf(box.Min, axis), axisOf(box.Max, axis)} {
				tri := Triangle{inside(box, axis, face), inside(box, axis, face), inside(box, axis, face)}
				if !Intersects(tri, box) {
					t.Fatalf("triangle %v on face of %v does not intersect it", tri, box)
				}
			}
			// Single vertex on the upper face, the rest beyond it.
			v := inside(box, axis, axisOf(box.Max, axis))
			out := setAxis(randVec(-5, 10), axis, axisOf(box.Max, axis)+.01+rng.Float64())
			tri := Triangle{out, v, setAxis(v, axis, axisOf(out, axis))}
			if !Intersects(tri, box) {
				t.Fatalf("triangle %v touching %v at a vertex does not intersect it", tri, box)
			}
		}

		octants := Subdivide(box)
		for axis, upper := range [3]int{4, 2, 1} {
			lo, hi := octants[0], octants[upper]
			face := axisOf(lo.Max, axis)
			tri := Triangle{inside(lo, axis, face), inside(lo, axis, face), inside(lo, axis, face)}
			if !Intersects(tri, lo) || !Intersects(tri, hi) {
				t.Fatalf("triangle %v on face shared by %v and %v: got %v and %v, want both true",
					tri, lo, hi, Intersects(tri, lo), Intersects(tri, hi))
			}
		}
	}
}

func axisOf(v r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

func setAxis(v r3.Vec, axis int, x float64) r3.Vec {
	switch axis {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	default:
		v.Z = x
	}
	return v
}
