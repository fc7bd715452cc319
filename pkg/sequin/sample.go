package sequin

// Samp is an audio sample with its playback parameters.
type Samp struct {
	Name         string
	Components   []Component
	Mode         string
	Path         FilePath
	Stream       bool
	LoopCount    int32
	Volume       float32
	Pitch        float32
	Pan          float32
	Offset       float32
	ChannelGroup string
}

func (s *Samp) ObjectName() string { return s.Name }
func (s *Samp) Kind() ObjectKind   { return ObjSamp }

func readSamp(c *Cursor, name string) (Object, error) {
	s := &Samp{Name: name}
	fs := append(header(&s.Components),
		str("play mode", &s.Mode),
		filePath("file path", &s.Path),
		boolean("stream", &s.Stream),
		i32("loop count", &s.LoopCount),
		f32("volume", &s.Volume),
		f32("pitch", &s.Pitch),
		f32("pan", &s.Pan),
		f32("offset", &s.Offset),
		str("channel group", &s.ChannelGroup),
	)
	if err := readFields(c, fs...); err != nil {
		return nil, err
	}
	return s, nil
}

// Spn spawns the entities of another object library at a transform.
type Spn struct {
	Name       string
	Components []Component
	Transform  TransformComponent
	ObjLibPath FilePath
	Bucket     string
}

func (s *Spn) ObjectName() string { return s.Name }
func (s *Spn) Kind() ObjectKind   { return ObjSpn }

func readSpn(c *Cursor, name string) (Object, error) {
	s := &Spn{Name: name}
	fs := append(header(&s.Components),
		filePath("objlib path", &s.ObjLibPath),
		str("render bucket", &s.Bucket),
	)
	if err := readFields(c, fs...); err != nil {
		return nil, err
	}
	if xfm, ok := findComponent[TransformComponent](s.Components); ok {
		s.Transform = xfm
	}
	return s, nil
}
