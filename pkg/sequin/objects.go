package sequin

import "go.uber.org/zap"

// Object type codes.
const (
	CodeLeaf   TypeCode = 0xf6857ece
	CodeMaster TypeCode = 0xb9800749
	CodeSamp   TypeCode = 0x90f3a87a
	CodeLvl    TypeCode = 0x7374d1bc
	CodeSpn    TypeCode = 0xdbd597d8
	CodeMesh   TypeCode = 0x15f169bf
	CodePath   TypeCode = 0xf6a39048
	CodeMat    TypeCode = 0xe0c8a57b
	CodeGate   TypeCode = 0x08a563aa
	CodeTex    TypeCode = 0x708aba96
)

// ObjectKind names a top-level object layout.
type ObjectKind string

const (
	ObjLeaf   ObjectKind = "SequinLeaf"
	ObjMaster ObjectKind = "SequinMaster"
	ObjLvl    ObjectKind = "SequinLevel"
	ObjGate   ObjectKind = "SequinGate"
	ObjSamp   ObjectKind = "Sample"
	ObjSpn    ObjectKind = "EntitySpawner"
	ObjTex    ObjectKind = "Tex2D"
	ObjMat    ObjectKind = "Mat"
	ObjMesh   ObjectKind = "Mesh"
	ObjPath   ObjectKind = "Path"
)

// Object is a decoded top-level object. Gate, Tex, Mat, Mesh and Path are
// stubs: their layouts are consumed in full but only the name is kept. A stub
// is a successful decode.
type Object interface {
	ObjectName() string
	Kind() ObjectKind
}

// Stub reports whether objects of kind k keep no payload.
func (k ObjectKind) Stub() bool {
	switch k {
	case ObjGate, ObjTex, ObjMat, ObjMesh, ObjPath:
		return true
	}
	return false
}

type objectReader func(c *Cursor, name string) (Object, error)

var objectReaders = NewRegistry[TypeCode, objectReader](DomainObject).
	Register(CodeLeaf, readLeaf).
	Register(CodeMaster, readMaster).
	Register(CodeLvl, readLvl).
	Register(CodeGate, readGate).
	Register(CodeSamp, readSamp).
	Register(CodeSpn, readSpn).
	Register(CodeTex, readTex).
	Register(CodeMat, readMat).
	Register(CodeMesh, readMesh).
	Register(CodePath, readPath).
	Freeze()

// KnownObject reports whether code has an object reader.
func KnownObject(code TypeCode) bool {
	return objectReaders.Has(code)
}

// ReadObject decodes the object of type code named name at the cursor.
func ReadObject(c *Cursor, code TypeCode, name string) (Object, error) {
	read, err := objectReaders.Lookup(c, code)
	if err != nil {
		return nil, err
	}
	start := c.Offset()
	obj, err := read(c, name)
	if err != nil {
		return nil, err
	}
	Logger().Debug("decoded object",
		zap.String("name", name),
		zap.Stringer("type", code),
		zap.Int("offset", start),
		zap.Int("size", c.Offset()-start))
	return obj, nil
}
