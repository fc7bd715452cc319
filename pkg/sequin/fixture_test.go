package sequin

import (
	"bytes"
	"encoding/binary"
	"math"
)

// fixture builds wire bytes for tests.
type fixture struct {
	buf bytes.Buffer
}

func newFixture() *fixture {
	return &fixture{}
}

func (f *fixture) Bytes() []byte { return f.buf.Bytes() }
func (f *fixture) Len() int      { return f.buf.Len() }

func (f *fixture) Raw(b ...byte) *fixture {
	f.buf.Write(b)
	return f
}

func (f *fixture) I32(v int32) *fixture {
	return f.Raw(binary.LittleEndian.AppendUint32(nil, uint32(v))...)
}

func (f *fixture) F32(v float32) *fixture {
	return f.Raw(binary.LittleEndian.AppendUint32(nil, math.Float32bits(v))...)
}

func (f *fixture) Bool(v bool) *fixture {
	if v {
		return f.Raw(1)
	}
	return f.Raw(0)
}

func (f *fixture) Str(s string) *fixture {
	f.I32(int32(len(s)))
	f.buf.WriteString(s)
	return f
}

func (f *fixture) Hash(code TypeCode) *fixture {
	b := code.Bytes()
	return f.Raw(b[:]...)
}

func (f *fixture) Vec3(x, y, z float32) *fixture {
	return f.F32(x).F32(y).F32(z)
}

func (f *fixture) Color(r, g, b, a float32) *fixture {
	return f.F32(r).F32(g).F32(b).F32(a)
}

// Identity writes a transform at the origin with an identity basis and unit
// scale.
func (f *fixture) Identity() *fixture {
	return f.Vec3(0, 0, 0).Vec3(1, 0, 0).Vec3(0, 1, 0).Vec3(0, 0, 1).Vec3(1, 1, 1)
}

func (f *fixture) FilePath(root int32, path string) *fixture {
	return f.I32(root).Str(path)
}

func (f *fixture) TraitPath(segs ...TraitPathSegment) *fixture {
	f.I32(int32(len(segs)))
	for _, s := range segs {
		f.Hash(s.Member).I32(s.Index)
	}
	return f
}

// Components

func (f *fixture) AnimationComp() *fixture {
	return f.Hash(CodeAnimationComponent).I32(1).F32(0).Str("kTimeBeats")
}

func (f *fixture) EditStateComp() *fixture {
	return f.Hash(CodeEditStateComponent)
}

func (f *fixture) ApproachComp(beats int32) *fixture {
	return f.Hash(CodeApproachAnimationComponent).I32(1).F32(0).Str("kTimeBeats").I32(1).I32(beats)
}

func (f *fixture) TransformComp(parent, constraint string) *fixture {
	return f.Hash(CodeTransformComponent).I32(1).Str(parent).Str(constraint).Identity()
}

func (f *fixture) DrawComp(children ...string) *fixture {
	f.Hash(CodeDrawComponent).I32(1).Bool(true).Str("world").Str("opaque").I32(int32(len(children)))
	for _, c := range children {
		f.Str(c)
	}
	return f
}

// Sequencer objects

type intPoint struct {
	time  float32
	value int32
}

func (f *fixture) IntPoints(points ...intPoint) *fixture {
	f.I32(int32(len(points)))
	for _, p := range points {
		f.F32(p.time).I32(p.value).Str("kTraitInterpLinear").Str("kEaseInOut")
	}
	return f
}

func (f *fixture) Footer() *fixture {
	return f.I32(1).I32(2).I32(3).I32(0).I32(0).
		Str("kIntensityOpNone").Str("").
		Bool(true).Bool(false).
		I32(4).F32(0.5).Color(1, 0, 0, 1).
		Bool(false).Bool(true)
}

// IntSeqObj writes an int-typed sequencer object with no ui elements.
func (f *fixture) IntSeqObj(name string, member TypeCode, points ...intPoint) *fixture {
	return f.Str(name).
		TraitPath(TraitPathSegment{Member: member, Index: NoIndex}).
		I32(int32(TraitInt)).
		IntPoints(points...).
		IntPoints().
		Footer().
		Bool(false)
}

// Objects

func (f *fixture) Leaf(beats int32) *fixture {
	f.I32(34).I32(1).I32(4).
		I32(2).AnimationComp().EditStateComp().
		I32(1).IntSeqObj("leaf_tunnel.spn", 0x0a1b2c3d, intPoint{0, 1}, intPoint{4, 2}).
		I32(beats).F32(0.25).F32(0.5)
	for range beats {
		f.Vec3(0, 0, 0)
	}
	return f.I32(3)
}

func (f *fixture) Samp(path string) *fixture {
	return f.I32(1).I32(4).
		I32(1).EditStateComp().
		Str("kSampleOneOff").
		FilePath(0, path).
		Bool(false).I32(0).
		F32(1).F32(1).F32(0).F32(0).
		Str("sfx")
}

func (f *fixture) Spn(objlib string) *fixture {
	return f.I32(1).I32(4).
		I32(2).EditStateComp().TransformComp("tunnel.xfm", "kConstraintParent").
		FilePath(2, objlib).
		Str("kBucketMain")
}
