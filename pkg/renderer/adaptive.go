package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/camera"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// AdaptiveSuperSample colors pixel (j, i) by tracing the corners of the pixel and
// subdividing only where the corner colors differ. Subdivision stops at 1/n of the
// pixel size; n <= 1 traces the pixel center only.
func (rt *Raytracer) AdaptiveSuperSample(cam *camera.Camera, nX, nY, j, i, n int) core.Color {
	color, _ := rt.adaptiveSuperSample(cam, nX, nY, j, i, n)
	return color
}

// adaptiveSuperSample also reports how many primary rays were traced
func (rt *Raytracer) adaptiveSuperSample(cam *camera.Camera, nX, nY, j, i, n int) (core.Color, int) {
	if n <= 1 {
		return rt.TraceRay(cam.ConstructRay(nX, nY, j, i)), 1
	}
	width, height := cam.PixelSize(nX, nY)
	center := cam.PixelCenter(nX, nY, j, i)
	s := &adaptiveSampler{rt: rt, cam: cam, minWidth: width / float64(n), minHeight: height / float64(n)}
	color := s.sample(center, width, height, nil)
	return color, s.rays
}

type adaptiveSampler struct {
	rt                  *Raytracer
	cam                 *camera.Camera
	minWidth, minHeight float64
	rays                int
}

func (s *adaptiveSampler) trace(p core.Point) core.Color {
	s.rays++
	return s.rt.TraceRay(s.cam.RayThrough(p))
}

// sample traces the corners of a width by height cell that were not traced
// by the parent cell. Equal corners end the recursion; otherwise each quarter
// around a new corner is sampled in turn.
func (s *adaptiveSampler) sample(center core.Point, width, height float64, parentCorners []core.Point) core.Color {
	if width < 2*s.minWidth || height < 2*s.minHeight {
		return s.trace(center)
	}

	right, up := s.cam.Right(), s.cam.Up()
	offset := func(p core.Point, x, y float64) core.Point {
		return p.Add(core.Must(right.Scale(x))).Add(core.Must(up.Scale(y)))
	}

	corners := make([]core.Point, 0, 4)
	var subCenters []core.Point
	var colors []core.Color
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			corner := offset(center, sx*width/2, sy*height/2)
			corners = append(corners, corner)
			if containsPoint(parentCorners, corner) {
				continue
			}
			subCenters = append(subCenters, offset(center, sx*width/4, sy*height/4))
			colors = append(colors, s.trace(corner))
		}
	}

	if len(colors) == 0 {
		return s.trace(center)
	}

	allEqual := true
	for _, c := range colors[1:] {
		if !colors[0].AlmostEqual(c) {
			allEqual = false
			break
		}
	}
	if allEqual && len(colors) > 1 {
		return colors[0]
	}

	sum := core.Black()
	for _, sub := range subCenters {
		sum = sum.Add(s.sample(sub, width/2, height/2, corners))
	}
	return sum.Reduce(float64(len(subCenters)))
}

func containsPoint(points []core.Point, p core.Point) bool {
	for _, q := range points {
		if q.Equal(p) {
			return true
		}
	}
	return false
}
