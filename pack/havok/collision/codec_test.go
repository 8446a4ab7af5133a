package collision

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func vecNear(a, b mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(float64(a[i]-b[i])) > eps {
			return false
		}
	}
	return true
}

var identityCodec = CodecParams{ScaleXYZ: mgl32.Vec3{1, 1, 1}}

var packedTests = []struct {
	name      string
	packed    uint32
	codec     CodecParams
	domainMin mgl32.Vec3
	domainMax mgl32.Vec3
	out       mgl32.Vec3
}{
	{
		name:      "zero",
		packed:    0,
		codec:     identityCodec,
		domainMax: mgl32.Vec3{3000, 3000, 3000},
		out:       mgl32.Vec3{0, 0, 0},
	},
	{
		name:      "max x field",
		packed:    0x7FF,
		codec:     identityCodec,
		domainMax: mgl32.Vec3{3000, 3000, 3000},
		out:       mgl32.Vec3{2047, 0, 0},
	},
	{
		name:      "max y field",
		packed:    0x7FF << 11,
		codec:     identityCodec,
		domainMax: mgl32.Vec3{3000, 3000, 3000},
		out:       mgl32.Vec3{0, 2047, 0},
	},
	{
		name:      "max z field",
		packed:    0x3FF << 22,
		codec:     identityCodec,
		domainMax: mgl32.Vec3{3000, 3000, 3000},
		out:       mgl32.Vec3{0, 0, 1023},
	},
	{
		name:   "affine",
		packed: 10 | 20<<11 | 30<<22,
		codec: CodecParams{
			MinXYZ:   mgl32.Vec3{-1, -2, -3},
			ScaleXYZ: mgl32.Vec3{0.5, 0.25, 2},
		},
		domainMin: mgl32.Vec3{-10, -10, -10},
		domainMax: mgl32.Vec3{100, 100, 100},
		out:       mgl32.Vec3{4, 3, 57},
	},
	{
		// scale*raw+min overshoots the domain on x and undershoots on y
		name:   "clamped into domain",
		packed: 0x7FF | 0<<11,
		codec: CodecParams{
			MinXYZ:   mgl32.Vec3{0, -50, 0},
			ScaleXYZ: mgl32.Vec3{1, 1, 1},
		},
		domainMin: mgl32.Vec3{0, -10, 0},
		domainMax: mgl32.Vec3{100, 10, 100},
		out:       mgl32.Vec3{100, -10, 0},
	},
}

func TestUnpackPackedVertex(t *testing.T) {
	for _, test := range packedTests {
		result := UnpackPackedVertex(test.packed, test.codec, test.domainMin, test.domainMax)
		if !vecNear(result, test.out) {
			t.Errorf("%s: UnpackPackedVertex(%#x)=%v; expected %v", test.name, test.packed, result, test.out)
		}
	}
}

func TestUnpackSharedVertexBounds(t *testing.T) {
	domainMin := mgl32.Vec3{-43.5, 0.25, -1000}
	domainMax := mgl32.Vec3{17, 99.75, 2000}

	if r := UnpackSharedVertex(0, domainMin, domainMax); !vecNear(r, domainMin) {
		t.Errorf("UnpackSharedVertex(0)=%v; expected domain min %v", r, domainMin)
	}
	if r := UnpackSharedVertex(math.MaxUint64, domainMin, domainMax); !vecNear(r, domainMax) {
		t.Errorf("UnpackSharedVertex(max)=%v; expected domain max %v", r, domainMax)
	}

	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		s := rnd.Uint64()
		r := UnpackSharedVertex(s, domainMin, domainMax)
		for c := 0; c < 3; c++ {
			if r[c] < domainMin[c]-eps || r[c] > domainMax[c]+eps {
				t.Fatalf("UnpackSharedVertex(%#x)[%d]=%v outside [%v, %v]",
					s, c, r[c], domainMin[c], domainMax[c])
			}
		}
	}
}

func TestUnpackSharedVertexFields(t *testing.T) {
	// each field at its max should land exactly on domain max for that axis
	domainMin := mgl32.Vec3{0, 0, 0}
	domainMax := mgl32.Vec3{10, 20, 30}

	tests := []struct {
		shared uint64
		out    mgl32.Vec3
	}{
		{0x1FFFFF, mgl32.Vec3{10, 0, 0}},
		{0x1FFFFF << 21, mgl32.Vec3{0, 20, 0}},
		{0x3FFFFF << 42, mgl32.Vec3{0, 0, 30}},
	}
	for _, test := range tests {
		if r := UnpackSharedVertex(test.shared, domainMin, domainMax); !vecNear(r, test.out) {
			t.Errorf("UnpackSharedVertex(%#x)=%v; expected %v", test.shared, r, test.out)
		}
	}
}
