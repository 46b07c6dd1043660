// Package geometry holds the shapes whose common area is being estimated and
// the closed-form value of that area.
package geometry

import "math"

// ExactAreaValue is the pinned value of ExactArea.
const ExactAreaValue = 0.9445171858994637

// ExactArea returns the analytic area of the intersection of the three
// Circles: π/4 + 1.25·asin(0.8) − 1.
func ExactArea() float64 {
	return 0.25*math.Pi + 1.25*math.Asin(0.8) - 1.0
}

// Circle is a disc in the plane.
type Circle struct {
	CX, CY, R float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c Circle) Contains(x, y float64) bool {
	dx := x - c.CX
	dy := y - c.CY
	return dx*dx+dy*dy <= c.R*c.R
}

// Circles returns the three discs whose intersection is measured.
func Circles() []Circle {
	r := math.Sqrt(5.0) / 2.0
	return []Circle{
		{CX: 1.0, CY: 1.0, R: 1.0},
		{CX: 1.5, CY: 2.0, R: r},
		{CX: 2.0, CY: 1.5, R: r},
	}
}

// InIntersection reports whether (x, y) lies inside every circle.
func InIntersection(x, y float64, circles []Circle) bool {
	for _, c := range circles {
		if !c.Contains(x, y) {
			return false
		}
	}
	return true
}

// Region is a rectangular sampling domain together with the error model used
// when synthesizing results for it.
type Region struct {
	Name                   string
	XMin, XMax, YMin, YMax float64
	// ErrorScale is the nominal relative error at N = 1000.
	ErrorScale float64
	// NoiseSigma is the standard deviation of the multiplicative noise.
	NoiseSigma float64
}

// Area returns the area of the sampling rectangle.
func (r Region) Area() float64 {
	return (r.XMax - r.XMin) * (r.YMax - r.YMin)
}

// Wide is the loose bounding box, three times noisier than Narrow.
var Wide = Region{
	Name: "wide",
	XMin: 0.5, XMax: 2.5,
	YMin: 0.5, YMax: 2.5,
	ErrorScale: 0.3,
	NoiseSigma: 0.1,
}

// Narrow is the tight bounding box.
var Narrow = Region{
	Name: "narrow",
	XMin: 1.0, XMax: 2.0,
	YMin: 1.0, YMax: 2.0,
	ErrorScale: 0.1,
	NoiseSigma: 0.05,
}
