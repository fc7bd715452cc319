package sequin

import "github.com/go-gl/mathgl/mgl32"

// field reads one named wire field. A nil destination discards the value but
// still consumes its bytes.
type field struct {
	name string
	read func(c *Cursor) error
}

// readFields reads fs in order and stops at the first failure, tagging the
// error with the failing field's name. List fields tag their own elements and
// have no name.
func readFields(c *Cursor, fs ...field) error {
	for _, f := range fs {
		if err := f.read(c); err != nil {
			if f.name == "" {
				return err
			}
			return within(err, f.name)
		}
	}
	return nil
}

func store[T any](dst *T, v T) {
	if dst != nil {
		*dst = v
	}
}

func scalar[T any](name string, dst *T, read func(*Cursor) (T, error)) field {
	return field{name: name, read: func(c *Cursor) error {
		v, err := read(c)
		if err != nil {
			return err
		}
		store(dst, v)
		return nil
	}}
}

func i32(name string, dst *int32) field {
	return scalar(name, dst, (*Cursor).Int32)
}

func f32(name string, dst *float32) field {
	return scalar(name, dst, (*Cursor).Float32)
}

func boolean(name string, dst *bool) field {
	return scalar(name, dst, (*Cursor).Bool)
}

func str(name string, dst *string) field {
	return scalar(name, dst, (*Cursor).String)
}

func hash(name string, dst *TypeCode) field {
	return scalar(name, dst, (*Cursor).Hash)
}

func vec3(name string, dst *mgl32.Vec3) field {
	return scalar(name, dst, (*Cursor).Vector3)
}

func color(name string, dst *Color) field {
	return scalar(name, dst, (*Cursor).Color)
}

func transform(name string, dst *Transform) field {
	return scalar(name, dst, (*Cursor).Transform)
}

func filePath(name string, dst *FilePath) field {
	return scalar(name, dst, (*Cursor).FilePath)
}

func traitPath(name string, dst *TraitPath) field {
	return scalar(name, dst, (*Cursor).TraitPath)
}

func components(dst *[]Component) field {
	return field{read: func(c *Cursor) error {
		v, err := ReadComponents(c)
		if err != nil {
			return err
		}
		store(dst, v)
		return nil
	}}
}

func sequencerObjects(dst *[]*SequencerObject) field {
	return field{read: func(c *Cursor) error {
		v, err := ReadSequencerObjects(c)
		if err != nil {
			return err
		}
		store(dst, v)
		return nil
	}}
}

// list reads a count-prefixed list, calling elem once per element. minElem is
// the smallest encoded size of one element.
func list(name string, minElem int, elem func(c *Cursor, i int) error) field {
	return field{read: func(c *Cursor) error {
		n, err := c.Count(minElem, name)
		if err != nil {
			return within(err, name)
		}
		for i := range n {
			if err := elem(c, i); err != nil {
				return withinIndex(err, name, i)
			}
		}
		return nil
	}}
}

// header reads the two version fields and the component list that open every
// object layout except Leaf, Master and Lvl.
func header(comps *[]Component) []field {
	return []field{
		i32("version", nil),
		i32("object version", nil),
		components(comps),
	}
}
