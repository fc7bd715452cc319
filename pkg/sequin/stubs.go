package sequin

// The layouts below are consumed field by field but their values are not yet
// modelled. Field names follow the reverse-engineered layout so a later
// revision can start keeping them without re-deriving offsets.

// Gate is a boss gate.
type Gate struct{ Name string }

// Tex is a 2D texture reference.
type Tex struct{ Name string }

// Mat is a material.
type Mat struct{ Name string }

// Mesh is a mesh, either inline or backed by a cache file.
type Mesh struct{ Name string }

// Path is a track path.
type Path struct{ Name string }

func (g *Gate) ObjectName() string { return g.Name }
func (g *Gate) Kind() ObjectKind   { return ObjGate }
func (t *Tex) ObjectName() string  { return t.Name }
func (t *Tex) Kind() ObjectKind    { return ObjTex }
func (m *Mat) ObjectName() string  { return m.Name }
func (m *Mat) Kind() ObjectKind    { return ObjMat }
func (m *Mesh) ObjectName() string { return m.Name }
func (m *Mesh) Kind() ObjectKind   { return ObjMesh }
func (p *Path) ObjectName() string { return p.Name }
func (p *Path) Kind() ObjectKind   { return ObjPath }

func readGate(c *Cursor, name string) (Object, error) {
	fs := append(header(nil),
		str("spn name", nil),
		traitPath("ent trait path", nil),
		// hash, string, flag, string, float, int
		list("boss patterns", 4+4+1+4+4+4, func(c *Cursor, _ int) error {
			return readFields(c,
				hash("level script node", nil),
				str("boss pattern lvl name", nil),
				boolean("unknown 1", nil),
				str("sentry type", nil),
				f32("unknown 2", nil),
				i32("bucket", nil),
			)
		}),
		str("pre boss lvl name", nil),
		str("post boss lvl name", nil),
		str("restart lvl name", nil),
		str("unknown 1", nil),
		str("component type", nil),
		f32("unknown 2", nil),
		str("level random type", nil),
	)
	if err := readFields(c, fs...); err != nil {
		return nil, err
	}
	return &Gate{Name: name}, nil
}

func readTex(c *Cursor, name string) (Object, error) {
	fs := append(header(nil),
		str("compression", nil),
		boolean("has mips", nil),
		filePath("file path", nil),
	)
	if err := readFields(c, fs...); err != nil {
		return nil, err
	}
	return &Tex{Name: name}, nil
}

func readMat(c *Cursor, name string) (Object, error) {
	fs := append(header(nil),
		str("decal map", nil),
		str("emissive map", nil),
		str("reflection map", nil),
		str("blending", nil),
		i32("lighting", nil),
		str("cull mode", nil),
		str("z mode", nil),
		boolean("unknown 1", nil),
		boolean("unknown 2", nil),
		str("filtering", nil),
		color("emissive color", nil),
		color("ambient color", nil),
		color("diffuse color", nil),
		color("specular color", nil),
		color("reflectivity color", nil),
		f32("alpha", nil),
		f32("unknown 3", nil),
		str("specular map", nil),
		str("texture transform mode", nil),
		transform("texture transform", nil),
		f32("unknown 4", nil),
		boolean("disable noise vignette on low spec", nil),
		str("noise vignette name", nil),
		boolean("unknown 5", nil),
	)
	if err := readFields(c, fs...); err != nil {
		return nil, err
	}
	return &Mat{Name: name}, nil
}

func readMesh(c *Cursor, name string) (Object, error) {
	var inline string
	fs := append(header(nil),
		str("mat name", nil),
		str("inline data", &inline),
	)
	if err := readFields(c, fs...); err != nil {
		return nil, err
	}

	if inline != "" {
		// position, normal and uvw per vertex; three 4-byte shorts per face
		fs = []field{
			list("vertices", 36, func(c *Cursor, _ int) error {
				return readFields(c, vec3("position", nil), vec3("normal", nil), vec3("uvw", nil))
			}),
			list("faces", 12, func(c *Cursor, _ int) error {
				for range 3 {
					if _, err := c.Short(); err != nil {
						return err
					}
				}
				return nil
			}),
			boolean("unknown 1", nil),
			boolean("unknown 2", nil),
		}
	} else {
		fs = []field{
			filePath("file path", nil),
			i32("cache name param 1", nil),
			i32("cache name param 2", nil),
			i32("cache name param 3", nil),
			boolean("cache name param 4", nil),
			i32("cache name param 5", nil),
		}
	}
	if err := readFields(c, fs...); err != nil {
		return nil, err
	}
	return &Mesh{Name: name}, nil
}

func readPath(c *Cursor, name string) (Object, error) {
	fs := append(header(nil),
		vec3("tile scale", nil),
		vec3("tile size", nil),
		f32("lane spacing", nil),
		str("mesh name", nil),
		boolean("bends", nil),
		str("bend scale interpolation", nil),
		boolean("pulse color", nil),
		boolean("pulse scale", nil),
		f32("v scale", nil),
		list("decorators", 4, func(c *Cursor, _ int) error {
			return readFields(c, str("decorator name", nil))
		}),
		boolean("visible", nil),
	)
	if err := readFields(c, fs...); err != nil {
		return nil, err
	}
	return &Path{Name: name}, nil
}
