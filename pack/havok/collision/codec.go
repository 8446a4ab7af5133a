package collision

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/wiiskii/tank_havok_browser/utils"
)

// Wire layout of the two quantized vertex encodings. Field widths, shifts
// and masks are part of the format contract.
const (
	packedXMask = 0x7FF // bits 0..10
	packedYMask = 0x7FF // bits 11..21
	packedZMask = 0x3FF // bits 22..31

	sharedXMask = 0x1FFFFF // bits 0..20
	sharedYMask = 0x1FFFFF // bits 21..41
	sharedZMask = 0x3FFFFF // bits 42..63
)

// CodecParams is the per-section affine dequantization for packed
// vertices: coordinate = raw*Scale + Min.
type CodecParams struct {
	MinXYZ   mgl32.Vec3
	ScaleXYZ mgl32.Vec3
}

// UnpackPackedVertex decodes one 32-bit fixed-point vertex through the
// section codec and clamps the result into the section domain. The clamp
// covers scale/offset rounding that would otherwise leak coordinates
// outside the stated bounds.
func UnpackPackedVertex(p uint32, codec CodecParams, domainMin, domainMax mgl32.Vec3) mgl32.Vec3 {
	v := mgl32.Vec3{
		float32(p & packedXMask),
		float32((p >> 11) & packedYMask),
		float32((p >> 22) & packedZMask),
	}
	for i := 0; i < 3; i++ {
		v[i] = v[i]*codec.ScaleXYZ[i] + codec.MinXYZ[i]
	}
	return utils.ClampVec3(v, domainMin, domainMax)
}

// UnpackSharedVertex decodes one 64-bit vertex against the mesh-wide
// domain. The bit fields normalize to [0,1] by construction, so no clamp
// is needed after the domain mapping.
func UnpackSharedVertex(s uint64, domainMin, domainMax mgl32.Vec3) mgl32.Vec3 {
	f := mgl32.Vec3{
		float32(s&sharedXMask) / float32(sharedXMask),
		float32((s>>21)&sharedYMask) / float32(sharedYMask),
		float32((s>>42)&sharedZMask) / float32(sharedZMask),
	}
	for i := 0; i < 3; i++ {
		f[i] = f[i]*(domainMax[i]-domainMin[i]) + domainMin[i]
	}
	return f
}

func unpackPackedVertices(dst []mgl32.Vec3, packed []uint32, codec CodecParams, domainMin, domainMax mgl32.Vec3) {
	for i, p := range packed {
		dst[i] = UnpackPackedVertex(p, codec, domainMin, domainMax)
	}
}

func unpackSharedVertices(dst []mgl32.Vec3, shared []uint64, domainMin, domainMax mgl32.Vec3) {
	for i, s := range shared {
		dst[i] = UnpackSharedVertex(s, domainMin, domainMax)
	}
}
