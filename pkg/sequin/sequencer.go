package sequin

// SequencerObject animates one trait of a named object over time.
type SequencerObject struct {
	Name       string
	Param      TraitPathSegment // first segment of the trait path
	TraitType  TraitType
	DataPoints *DataPoints
	UIElements *DataPoints
	Footer     Footer
	Trailing   bool
}

// Footer holds the fixed trailer of a sequencer object, kept verbatim so it
// can be re-emitted.
type Footer struct {
	LineAnimationType    int32
	DefaultInterpolation int32
	DefaultEasing        int32
	Unused1              int32
	Unused2              int32
	IntensityOp1         string
	IntensityOp2         string
	HasIntensityPhase    bool
	TraitSetterOp        bool
	StepFrequency        int32
	Unused3              float32
	Unused4              Color
	IntensityScale       bool
	Unused5              bool
}

// Values returns the footer in dump order: easing precedes interpolation, the
// color is flattened and flags are 0 or 1.
func (f Footer) Values() []any {
	return []any{
		f.LineAnimationType,
		f.DefaultEasing,
		f.DefaultInterpolation,
		f.Unused1,
		f.Unused2,
		f.IntensityOp1,
		f.IntensityOp2,
		flag(f.HasIntensityPhase),
		flag(f.TraitSetterOp),
		f.StepFrequency,
		f.Unused3,
		f.Unused4[0], f.Unused4[1], f.Unused4[2], f.Unused4[3],
		flag(f.IntensityScale),
		flag(f.Unused5),
	}
}

func flag(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// ReadSequencerObject decodes one sequencer object.
func ReadSequencerObject(c *Cursor) (*SequencerObject, error) {
	var (
		so  SequencerObject
		err error
	)

	if so.Name, err = c.String(); err != nil {
		return nil, err
	}
	path, err := c.TraitPath()
	if err != nil {
		return nil, err
	}
	so.Param = path.First()

	tt, err := c.Int32()
	if err != nil {
		return nil, err
	}
	so.TraitType = TraitType(tt)

	if so.DataPoints, err = ReadDataPoints(c, so.TraitType); err != nil {
		return nil, err
	}
	if so.UIElements, err = ReadDataPoints(c, so.TraitType); err != nil {
		return nil, within(err, "ui_elements")
	}
	if so.Footer, err = readFooter(c); err != nil {
		return nil, within(err, "footer")
	}
	if so.Trailing, err = c.Bool(); err != nil {
		return nil, err
	}
	return &so, nil
}

func readFooter(c *Cursor) (Footer, error) {
	var (
		f   Footer
		err error
	)
	for _, dst := range []*int32{
		&f.LineAnimationType,
		&f.DefaultInterpolation,
		&f.DefaultEasing,
		&f.Unused1,
		&f.Unused2,
	} {
		if *dst, err = c.Int32(); err != nil {
			return Footer{}, err
		}
	}
	if f.IntensityOp1, err = c.String(); err != nil {
		return Footer{}, err
	}
	if f.IntensityOp2, err = c.String(); err != nil {
		return Footer{}, err
	}
	if f.HasIntensityPhase, err = c.Bool(); err != nil {
		return Footer{}, err
	}
	if f.TraitSetterOp, err = c.Bool(); err != nil {
		return Footer{}, err
	}
	if f.StepFrequency, err = c.Int32(); err != nil {
		return Footer{}, err
	}
	if f.Unused3, err = c.Float32(); err != nil {
		return Footer{}, err
	}
	if f.Unused4, err = c.Color(); err != nil {
		return Footer{}, err
	}
	if f.IntensityScale, err = c.Bool(); err != nil {
		return Footer{}, err
	}
	if f.Unused5, err = c.Bool(); err != nil {
		return Footer{}, err
	}
	return f, nil
}

// ReadSequencerObjects reads a count-prefixed sequencer object list.
func ReadSequencerObjects(c *Cursor) ([]*SequencerObject, error) {
	n, err := c.Count(4, "sequencer objects")
	if err != nil {
		return nil, err
	}
	objs := make([]*SequencerObject, 0, n)
	for i := range n {
		so, err := ReadSequencerObject(c)
		if err != nil {
			return nil, withinIndex(err, "seq_objs", i)
		}
		objs = append(objs, so)
	}
	return objs, nil
}
