package style

import (
	"math"
)

// stCubeLevels are the channel values of the 6x6x6 color cube occupying
// palette indices 16-231.
var stCubeLevels = [6]int{0, 95, 135, 175, 215, 255}

// Downsample maps an RGB color to the closest entry of the 256-color
// palette, choosing between the color cube and the 24-step gray ramp.
// Other colors are returned unchanged.
func (c Color) Downsample() Color {
	if c.Kind != ColorRGB {
		return c
	}

	cube := stNearestCube(c.R, c.G, c.B)
	gray := stNearestGray(c.R, c.G, c.B)

	cr, cg, cb := stCubeRGB(cube)
	gv := stGrayValue(gray)

	if stDistance(c.R, c.G, c.B, gv, gv, gv) < stDistance(c.R, c.G, c.B, cr, cg, cb) {
		return Indexed(gray)
	}
	return Indexed(cube)
}

func stNearestCube(r, g, b uint8) uint8 {
	return uint8(16 + 36*stNearestLevel(r) + 6*stNearestLevel(g) + stNearestLevel(b))
}

// stNearestLevel returns the cube level index (0-5) closest to v.
func stNearestLevel(v uint8) int {
	best, bestDist := 0, math.MaxInt
	for i, lv := range stCubeLevels {
		d := int(v) - lv
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// stNearestGray returns the gray ramp index (232-255) of the average
// channel value. Ramp values are 8, 18, ..., 238.
func stNearestGray(r, g, b uint8) uint8 {
	avg := (int(r) + int(g) + int(b)) / 3
	step := (avg - 8 + 5) / 10
	step = max(0, min(23, step))
	return uint8(232 + step)
}

func stCubeRGB(idx uint8) (r, g, b uint8) {
	i := int(idx) - 16
	return uint8(stCubeLevels[i/36]), uint8(stCubeLevels[(i%36)/6]), uint8(stCubeLevels[i%6])
}

func stGrayValue(idx uint8) uint8 {
	return uint8(8 + (int(idx)-232)*10)
}

func stDistance(r1, g1, b1, r2, g2, b2 uint8) float64 {
	dr := float64(r1) - float64(r2)
	dg := float64(g1) - float64(g2)
	db := float64(b1) - float64(b2)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
