package sequin

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/EchoTools/sequinFileTools/pkg/record"
)

// LibraryRecord converts a decoded library into a record tree.
func LibraryRecord(lib *ObjectLibrary) *record.Map {
	globals := make(record.List, 0, len(lib.GlobalLibraries))
	for _, g := range lib.GlobalLibraries {
		globals = append(globals, record.String(g.Name))
	}
	externals := make(record.List, 0, len(lib.ExternalObjects))
	for _, x := range lib.ExternalObjects {
		externals = append(externals, record.NewMap().
			Set("obj_type", record.String(x.Type.String())).
			Set("obj_name", record.String(x.Name)))
	}
	objects := make(record.List, 0, len(lib.Objects))
	for _, obj := range lib.Objects {
		objects = append(objects, ObjectRecord(obj))
	}

	return record.NewMap().
		Set("container", record.String(lib.Container.String())).
		Set("original_path", record.String(lib.OriginalPath)).
		Set("global_libs", globals).
		Set("external_objs", externals).
		Set("objects", objects)
}

// ObjectRecord converts one object into a record tree. Stub kinds render only
// their type and name.
func ObjectRecord(obj Object) *record.Map {
	m := record.NewMap().
		Set("obj_type", record.String(obj.Kind())).
		Set("obj_name", record.String(obj.ObjectName()))

	switch o := obj.(type) {
	case *Leaf:
		m.Set("seq_objs", sequencerObjectsRecord(o.SequencerObjects))
		m.Set("beat_cnt", record.Int(o.BeatCount))

	case *Master:
		groupings := make(record.List, 0, len(o.Groupings))
		for _, g := range o.Groupings {
			groupings = append(groupings, record.NewMap().
				Set("lvl_name", record.String(g.LvlName)).
				Set("gate_name", record.String(g.GateName)).
				Set("checkpoint", record.Bool(g.Checkpoint)).
				Set("checkpoint_leader_lvl_name", record.String(g.CheckpointLeaderLvlName)).
				Set("rest_lvl_name", record.String(g.RestLvlName)).
				Set("play_plus", record.Bool(g.PlayPlus)))
		}
		m.Set("skybox_name", record.String(o.SkyboxName))
		m.Set("intro_lvl_name", record.String(o.IntroLvlName))
		m.Set("groupings", groupings)
		m.Set("checkpoint_lvl_name", record.String(o.CheckpointLvlName))

	case *Lvl:
		steps := make(record.List, 0, len(o.Steps))
		for _, s := range o.Steps {
			subPaths := make(record.List, 0, len(s.SubPaths))
			for _, p := range s.SubPaths {
				subPaths = append(subPaths, record.List{record.String(p[0]), record.String(p[1])})
			}
			step := record.NewMap().
				Set("beat_cnt", record.Int(s.BeatCount)).
				Set("leaf_name", record.String(s.LeafName)).
				Set("main_path", record.String(s.MainPath)).
				Set("sub_paths", subPaths)
			setTransform(step, s.Transform)
			steps = append(steps, step)
		}
		loops := make(record.List, 0, len(o.Loops))
		for _, l := range o.Loops {
			loops = append(loops, record.NewMap().
				Set("samp_name", record.String(l.SampName)).
				Set("beats_per_loop", record.Int(l.BeatsPerLoop)))
		}
		m.Set("approach_beats", record.Int(o.ApproachBeats))
		m.Set("seq_objs", sequencerObjectsRecord(o.SequencerObjects))
		m.Set("leaf_seq", steps)
		m.Set("loops", loops)
		m.Set("volume", record.Float(o.Volume))
		m.Set("input_allowed", record.Bool(o.InputAllowed))
		m.Set("tutorial_type", record.String(o.TutorialType))
		m.Set("start_angle_fracs", vec3Record(o.StartAngleFracs))

	case *Samp:
		m.Set("mode", record.String(o.Mode))
		m.Set("path", filePathRecord(o.Path))
		m.Set("volume", record.Float(o.Volume))
		m.Set("pitch", record.Float(o.Pitch))
		m.Set("pan", record.Float(o.Pan))
		m.Set("offset", record.Float(o.Offset))
		m.Set("channel_group", record.String(o.ChannelGroup))

	case *Spn:
		m.Set("xfm_name", record.String(o.Transform.ParentName))
		m.Set("constraint", record.String(o.Transform.Constraint))
		setTransform(m, o.Transform.Transform)
		m.Set("objlib_path", filePathRecord(o.ObjLibPath))
		m.Set("bucket", record.String(o.Bucket))
	}
	return m
}

func sequencerObjectsRecord(objs []*SequencerObject) record.List {
	l := make(record.List, 0, len(objs))
	for _, so := range objs {
		footer := make(record.List, 0, 17)
		for _, v := range so.Footer.Values() {
			footer = append(footer, scalarRecord(v))
		}
		l = append(l, record.NewMap().
			Set("obj_name", record.String(so.Name)).
			Set("param_path", segmentRecord(so.Param)).
			Set("trait_type", record.String(so.TraitType.String())).
			Set("data_points", dataPointsRecord(so.DataPoints)).
			Set("step", record.String("False")).
			Set("footer", footer))
	}
	return l
}

func segmentRecord(s TraitPathSegment) record.Value {
	if !s.HasIndex() {
		return record.String(s.Member.String())
	}
	return record.List{record.String(s.Member.String()), record.Int(s.Index)}
}

func dataPointsRecord(d *DataPoints) *record.Map {
	m := record.NewMap()
	if d == nil {
		return m
	}
	d.Each(func(t float32, v TraitValue) {
		m.Put(record.Float(t), traitValueRecord(v))
	})
	return m
}

func traitValueRecord(v TraitValue) record.Value {
	switch v := v.(type) {
	case IntValue:
		return record.Int(v)
	case BoolValue:
		return record.Bool(v)
	case ActionValue:
		return record.Bool(v)
	case FloatValue:
		return record.Float(v)
	case ColorValue:
		return record.List{record.Float(v[0]), record.Float(v[1]), record.Float(v[2]), record.Float(v[3])}
	}
	panic(fmt.Sprintf("sequin: unexpected trait value %T", v))
}

func scalarRecord(v any) record.Value {
	switch v := v.(type) {
	case int32:
		return record.Int(v)
	case float32:
		return record.Float(v)
	case string:
		return record.String(v)
	case bool:
		return record.Bool(v)
	}
	panic(fmt.Sprintf("sequin: unexpected footer value %T", v))
}

func vec3Record(v mgl32.Vec3) record.List {
	return record.List{record.Float(v[0]), record.Float(v[1]), record.Float(v[2])}
}

func filePathRecord(p FilePath) record.Value {
	if p.IsBare() {
		return record.String(p.Path)
	}
	return record.List{record.Int(p.Root), record.String(p.Path)}
}

func setTransform(m *record.Map, t Transform) {
	m.Set("pos", vec3Record(t.Position))
	m.Set("rot_x", vec3Record(t.RotX))
	m.Set("rot_y", vec3Record(t.RotY))
	m.Set("rot_z", vec3Record(t.RotZ))
	m.Set("scale", vec3Record(t.Scale))
}
