package sequin

import (
	"fmt"
	"strconv"
)

// FileKind is the int32 that opens every cache file.
type FileKind int32

// Known file kinds. Only FileKindObjLib is decoded structurally.
const (
	FileKindScoring   FileKind = 0
	FileKindConfig    FileKind = 4
	FileKindMenus     FileKind = 5
	FileKindMesh      FileKind = 6
	FileKindObjLib    FileKind = 8
	FileKindLevelCfg  FileKind = 9
	FileKindTexture   FileKind = 12
	FileKindAsset     FileKind = 13
	FileKindLevelList FileKind = 14
	FileKindShader    FileKind = 28
	FileKindUnknown93 FileKind = 93
)

var fileKindNames = map[FileKind]string{
	FileKindScoring:   "scoring",
	FileKindConfig:    "config",
	FileKindMenus:     "menus",
	FileKindMesh:      "mesh",
	FileKindObjLib:    "objlib",
	FileKindLevelCfg:  "level config",
	FileKindTexture:   "texture",
	FileKindAsset:     "asset",
	FileKindLevelList: "level list",
	FileKindShader:    "shader",
}

// String returns the kind's name, or its number when it has none.
func (k FileKind) String() string {
	if name, ok := fileKindNames[k]; ok {
		return name
	}
	return strconv.Itoa(int(k))
}

// Magic values found after the file kind, in file order.
var (
	MagicGFX     = [4]byte{0x43, 0x14, 0xa5, 0x1b}
	MagicSequin  = [4]byte{0x48, 0x45, 0x95, 0xb0}
	MagicObj     = [4]byte{0x19, 0x62, 0x1c, 0x9d}
	MagicLevel   = [4]byte{0x9e, 0x4d, 0x37, 0x0b}
	MagicAvatar  = [4]byte{0x4f, 0x62, 0x74, 0xe6}
	MagicAudio   = [4]byte{'F', 'S', 'B', '5'}
	MagicTexture = [4]byte{'D', 'D', 'S', ' '}
)

var magicNames = map[[4]byte]string{
	MagicGFX:     "GFX",
	MagicSequin:  "Sequin",
	MagicObj:     "Obj",
	MagicLevel:   "Level",
	MagicAvatar:  "Avatar",
	MagicAudio:   "Audio",
	MagicTexture: "Texture",
}

// DescribeMagic names a known magic, or quotes the raw bytes.
func DescribeMagic(m [4]byte) string {
	if name, ok := magicNames[m]; ok {
		return name
	}
	return fmt.Sprintf("%q", m[:])
}

// Header is the outer view of a cache file. Payload starts at the magic and
// runs to the end of the file.
type Header struct {
	Kind    FileKind
	Magic   [4]byte
	Payload []byte
}

// ReadHeader reads the file kind and magic of a cache file without decoding
// the payload.
func ReadHeader(data []byte) (Header, error) {
	c := NewCursor(data)
	kind, err := c.Int32()
	if err != nil {
		return Header{}, within(err, "file kind")
	}
	payload := c.Rest()
	b, err := c.Bytes(4)
	if err != nil {
		return Header{}, within(err, "magic")
	}
	h := Header{Kind: FileKind(kind), Payload: payload}
	copy(h.Magic[:], b)
	return h, nil
}

func (h Header) String() string {
	return fmt.Sprintf("%s %s", h.Kind, DescribeMagic(h.Magic))
}
