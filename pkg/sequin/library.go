package sequin

import "go.uber.org/zap"

// Container codes dispatched after the file kind.
const (
	CodeLevelLibrary TypeCode = 0x0b374d9e
)

// GlobalLibrary references a library shared across levels.
type GlobalLibrary struct {
	Unknown int32
	Name    string
}

// ExternalObject references an object defined in another library.
type ExternalObject struct {
	Type    TypeCode
	Name    string
	Unknown int32
}

// Declaration names one object of a library and its type.
type Declaration struct {
	Name string
	Type TypeCode
}

// ObjectLibrary is a decoded object library file. Objects[i] is the decoded
// payload of Declarations[i].
type ObjectLibrary struct {
	Container       TypeCode
	Header          [4]int32
	GlobalLibraries []GlobalLibrary
	OriginalPath    string
	ExternalObjects []ExternalObject
	Declarations    []Declaration
	Objects         []Object
}

type fileReader func(c *Cursor) (*ObjectLibrary, error)

type containerReader func(c *Cursor, lib *ObjectLibrary) error

var fileReaders = func() *Registry[FileKind, fileReader] {
	r := NewRegistry[FileKind, fileReader](DomainFileKind)
	r.missing = KindUnknownFileKind
	return r.Register(FileKindObjLib, readObjLib).Freeze()
}()

var containerReaders = NewRegistry[TypeCode, containerReader](DomainContainer).
	Register(CodeLevelLibrary, readLevelLibrary).
	Freeze()

// DecodeFile decodes one complete object library file. Objects are decoded in
// declaration order over a single cursor; the first failure aborts the file.
func DecodeFile(data []byte) (*ObjectLibrary, error) {
	c := NewCursor(data)
	kind, err := c.Int32()
	if err != nil {
		return nil, within(err, "file kind")
	}
	read, err := fileReaders.Lookup(c, FileKind(kind))
	if err != nil {
		return nil, err
	}
	lib, err := read(c)
	if err != nil {
		return nil, err
	}
	if c.Remaining() > 0 {
		Logger().Debug("trailing bytes after object library",
			zap.Int("offset", c.Offset()),
			zap.Int("remaining", c.Remaining()))
	}
	return lib, nil
}

// DecodeObject decodes a bare object payload of type code, such as a byte
// range cut out of a library.
func DecodeObject(data []byte, code TypeCode, name string) (Object, error) {
	return ReadObject(NewCursor(data), code, name)
}

func readObjLib(c *Cursor) (*ObjectLibrary, error) {
	code, err := c.Hash()
	if err != nil {
		return nil, within(err, "container")
	}
	read, err := containerReaders.Lookup(c, code)
	if err != nil {
		return nil, err
	}
	lib := &ObjectLibrary{Container: code}
	if err := read(c, lib); err != nil {
		return nil, err
	}
	return lib, nil
}

func readLevelLibrary(c *Cursor, lib *ObjectLibrary) error {
	err := readFields(c,
		i32("unknown 1", &lib.Header[0]),
		i32("unknown 2", &lib.Header[1]),
		i32("unknown 3", &lib.Header[2]),
		i32("unknown 4", &lib.Header[3]),
		list("global_libs", 8, func(c *Cursor, _ int) error {
			var g GlobalLibrary
			err := readFields(c, i32("unknown", &g.Unknown), str("library name", &g.Name))
			if err != nil {
				return err
			}
			lib.GlobalLibraries = append(lib.GlobalLibraries, g)
			return nil
		}),
		str("original path", &lib.OriginalPath),
		list("external_objs", 12, func(c *Cursor, _ int) error {
			var x ExternalObject
			err := readFields(c,
				hash("object type", &x.Type),
				str("object name", &x.Name),
				i32("unknown", &x.Unknown),
			)
			if err != nil {
				return err
			}
			lib.ExternalObjects = append(lib.ExternalObjects, x)
			return nil
		}),
		list("declarations", 8, func(c *Cursor, _ int) error {
			var d Declaration
			if err := readFields(c, str("object name", &d.Name)); err != nil {
				return err
			}
			code, err := c.Hash()
			if err != nil {
				return within(err, "object type")
			}
			// reject unknown types before any payload is read
			if _, err := objectReaders.Lookup(c, code); err != nil {
				return within(err, d.Name)
			}
			d.Type = code
			lib.Declarations = append(lib.Declarations, d)
			return nil
		}),
	)
	if err != nil {
		return err
	}

	lib.Objects = make([]Object, 0, len(lib.Declarations))
	for i, d := range lib.Declarations {
		obj, err := ReadObject(c, d.Type, d.Name)
		if err != nil {
			return withinIndex(within(err, d.Name), "objects", i)
		}
		lib.Objects = append(lib.Objects, obj)
	}
	return nil
}
