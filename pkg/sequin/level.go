package sequin

import "github.com/go-gl/mathgl/mgl32"

// Master sequences the levels of a stage.
type Master struct {
	Name              string
	Components        []Component
	SequencerObjects  []*SequencerObject
	MinEndFrame       float32
	SkyboxName        string
	IntroLvlName      string
	Groupings         []LvlGrouping
	CheckpointLvlName string
}

func (m *Master) ObjectName() string { return m.Name }
func (m *Master) Kind() ObjectKind   { return ObjMaster }

// LvlGrouping is one level slot of a master, with its gate and checkpoint
// settings.
type LvlGrouping struct {
	LvlName                 string
	GateName                string
	Checkpoint              bool
	CheckpointLeaderLvlName string
	RestLvlName             string
	PlayPlus                bool
}

func readLvlGrouping(c *Cursor) (LvlGrouping, error) {
	var g LvlGrouping
	err := readFields(c,
		str("lvl name", &g.LvlName),
		str("gate name", &g.GateName),
		boolean("checkpoint", &g.Checkpoint),
		str("checkpoint leader lvl name", &g.CheckpointLeaderLvlName),
		str("rest lvl name", &g.RestLvlName),
		boolean("unknown 1", nil),
		boolean("unknown 2", nil),
		i32("unknown 3", nil),
		boolean("unknown 4", nil),
		boolean("play plus", &g.PlayPlus),
	)
	return g, err
}

func readMaster(c *Cursor, name string) (Object, error) {
	m := &Master{Name: name}
	err := readFields(c,
		i32("version", nil),
		i32("sequencer objects version", nil),
		i32("object version", nil),
		components(&m.Components),
		sequencerObjects(&m.SequencerObjects),
		f32("min end frame", &m.MinEndFrame),
		str("skybox name", &m.SkyboxName),
		str("intro lvl name", &m.IntroLvlName),
		// four strings, five flags and an int
		list("groupings", 4*4+5+4, func(c *Cursor, _ int) error {
			g, err := readLvlGrouping(c)
			if err != nil {
				return err
			}
			m.Groupings = append(m.Groupings, g)
			return nil
		}),
		boolean("unknown 1", nil),
		boolean("unknown 2", nil),
		i32("unknown 3", nil),
		i32("unknown 4", nil),
		i32("unknown 5", nil),
		i32("unknown 6", nil),
		vec3("unknown 7", nil),
		str("checkpoint lvl name", &m.CheckpointLvlName),
		str("unknown 8", nil),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Lvl is a level: a sequence of leaf steps with looping samples.
type Lvl struct {
	Name             string
	Components       []Component
	ApproachBeats    int32
	SequencerObjects []*SequencerObject
	MinEndFrame      float32
	MoveType         string
	MoveSequin       string
	Steps            []Step
	Loops            []Loop
	Volume           float32
	StartFlow        string
	StartFlowPath    TraitPath
	StartFlowType    string
	InputAllowed     bool
	TutorialType     string
	StartAngleFracs  mgl32.Vec3
}

func (l *Lvl) ObjectName() string { return l.Name }
func (l *Lvl) Kind() ObjectKind   { return ObjLvl }

// Step places one leaf in a level's leaf sequence. Steps whose leading
// reference string is set carry only the placement fields.
type Step struct {
	Reference string
	BeatCount int32
	LeafName  string
	SkipLeaf  bool
	MainPath  string
	SubPaths  [][2]string
	StepType  string
	Offset    int32
	Transform Transform
}

func readStep(c *Cursor) (Step, error) {
	var s Step
	if err := readFields(c, str("reference", &s.Reference)); err != nil {
		return Step{}, err
	}
	if s.Reference == "" {
		err := readFields(c,
			i32("beat count", &s.BeatCount),
			boolean("skip leaf", &s.SkipLeaf),
		)
		if err != nil {
			return Step{}, err
		}
		if !s.SkipLeaf {
			if err := readFields(c, str("leaf name", &s.LeafName)); err != nil {
				return Step{}, err
			}
		}
		err = readFields(c,
			str("main path", &s.MainPath),
			list("sub paths", 8, func(c *Cursor, _ int) error {
				var pair [2]string
				err := readFields(c, str("sub path", &pair[0]), str("sub path", &pair[1]))
				if err != nil {
					return err
				}
				s.SubPaths = append(s.SubPaths, pair)
				return nil
			}),
		)
		if err != nil {
			return Step{}, err
		}
	}
	err := readFields(c,
		str("step type", &s.StepType),
		i32("offset", &s.Offset),
		transform("transform", &s.Transform),
		boolean("unknown 5", nil),
		boolean("unknown 6", nil),
	)
	if err != nil {
		return Step{}, err
	}
	return s, nil
}

// readSteps reads steps until a false sentinel flag. This is the only list in
// the format terminated by a sentinel rather than prefixed by a count.
func readSteps(c *Cursor) ([]Step, error) {
	var steps []Step
	for i := 0; ; i++ {
		more, err := c.Bool()
		if err != nil {
			return nil, withinIndex(err, "steps", i)
		}
		if !more {
			return steps, nil
		}
		s, err := readStep(c)
		if err != nil {
			return nil, withinIndex(err, "steps", i)
		}
		steps = append(steps, s)
	}
}

// Loop plays a sample every BeatsPerLoop beats.
type Loop struct {
	SampName     string
	BeatsPerLoop int32
	Channel      int32
}

func readLvl(c *Cursor, name string) (Object, error) {
	l := &Lvl{Name: name}
	err := readFields(c,
		i32("version", nil),
		i32("sequencer objects version", nil),
		i32("object version", nil),
		components(&l.Components),
		sequencerObjects(&l.SequencerObjects),
		f32("min end frame", &l.MinEndFrame),
		str("move type", &l.MoveType),
		str("move sequin", &l.MoveSequin),
		field{read: func(c *Cursor) error {
			var err error
			l.Steps, err = readSteps(c)
			return err
		}},
		list("loops", 12, func(c *Cursor, _ int) error {
			var lp Loop
			err := readFields(c,
				str("samp name", &lp.SampName),
				i32("beats per loop", &lp.BeatsPerLoop),
				i32("channel", &lp.Channel),
			)
			if err != nil {
				return err
			}
			l.Loops = append(l.Loops, lp)
			return nil
		}),
		boolean("unknown 1", nil),
		f32("volume", &l.Volume),
		str("start flow", &l.StartFlow),
		traitPath("start flow trait path", &l.StartFlowPath),
		str("start flow trait type", &l.StartFlowType),
		boolean("input allowed", &l.InputAllowed),
		str("tutorial type", &l.TutorialType),
		vec3("start angle fracs", &l.StartAngleFracs),
	)
	if err != nil {
		return nil, err
	}
	if approach, ok := findComponent[ApproachAnimationComponent](l.Components); ok {
		l.ApproachBeats = approach.ApproachBeats
	}
	return l, nil
}
