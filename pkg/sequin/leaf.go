package sequin

// Leaf is a sequin leaf: a reusable block of trait animation spanning a number
// of beats.
type Leaf struct {
	Name             string
	Version          int32 // sequin leaf layout version
	Components       []Component
	SequencerObjects []*SequencerObject
	BeatCount        int32
	PathPhase        float32
	TilePhase        float32
	TurnLaneOffset   int32
}

func (l *Leaf) ObjectName() string { return l.Name }
func (l *Leaf) Kind() ObjectKind   { return ObjLeaf }

func readLeaf(c *Cursor, name string) (Object, error) {
	leaf := &Leaf{Name: name}
	err := readFields(c,
		i32("version", &leaf.Version),
		i32("trait anim version", nil),
		i32("object version", nil),
		components(&leaf.Components),
		sequencerObjects(&leaf.SequencerObjects),
		i32("beat count", &leaf.BeatCount),
		f32("path phase", &leaf.PathPhase),
		f32("tile phase", &leaf.TilePhase),
		beats(&leaf.BeatCount),
		i32("turn lane offset", &leaf.TurnLaneOffset),
	)
	if err != nil {
		return nil, err
	}
	return leaf, nil
}

// beats skips one unused vector per beat. The count is read earlier in the
// layout, separated from the vectors by the path and tile phases.
func beats(count *int32) field {
	return field{name: "beats", read: func(c *Cursor) error {
		if *count > 0 && int(*count) > c.Remaining()/12 {
			return c.fail(KindTruncated, "beats", "count exceeds remaining bytes")
		}
		for range *count {
			if _, err := c.Vector3(); err != nil {
				return err
			}
		}
		return nil
	}}
}
