package utils

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ClampVec3 clamps v component-wise into [min, max].
func ClampVec3(v, min, max mgl32.Vec3) mgl32.Vec3 {
	for i := 0; i < 3; i++ {
		if v[i] < min[i] {
			v[i] = min[i]
		}
		if v[i] > max[i] {
			v[i] = max[i]
		}
	}
	return v
}

// SwapAxesYZ converts from the resource coordinate system (z up) to the
// scene coordinate system (y up).
func SwapAxesYZ(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[2], v[1]}
}

func FloatArray32to64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
