package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHash32(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", "23daada"},
		{"a", "7c3b7333"},
		{"samples/levels/demo/hit.wav", "632f121"},
		{"fx/textures/glow.png", "d33d5af3"},
	}
	for _, tt := range tests {
		if got := Hash32(tt.path); got != tt.want {
			t.Errorf("Hash32(%q): got %s, want %s", tt.path, got, tt.want)
		}
	}

	if got := FileName("a"); got != "7c3b7333.pc" {
		t.Errorf("FileName: got %s", got)
	}
}

func TestFindReferences(t *testing.T) {
	data := []byte("\x00\x01samples/a.wav\x00samples/\xff.wav--samples/d.wav samples/c")

	refs, err := FindReferences(data, "samples/", ".wav")
	if err != nil {
		t.Fatal(err)
	}
	want := []Reference{
		{Offset: 2, Path: "samples/a.wav"},
		{Offset: 31, Path: "samples/d.wav"},
	}
	if len(refs) != len(want) {
		t.Fatalf("got %+v, want %+v", refs, want)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("refs[%d]: got %+v, want %+v", i, refs[i], want[i])
		}
	}
}

func TestFindReferencesEdgeCases(t *testing.T) {
	t.Run("NoPrefix", func(t *testing.T) {
		refs, err := FindReferences([]byte("nothing here.wav"), "samples/", ".wav")
		if err != nil || len(refs) != 0 {
			t.Errorf("got %v, %v", refs, err)
		}
	})

	t.Run("NoSuffix", func(t *testing.T) {
		refs, err := FindReferences([]byte("samples/a.ogg"), "samples/", ".wav")
		if err != nil || len(refs) != 0 {
			t.Errorf("got %v, %v", refs, err)
		}
	})

	t.Run("SuffixOverlapsPrefix", func(t *testing.T) {
		refs, err := FindReferences([]byte("xx a.wav yy a.wav"), "a.wav", ".wav")
		if err != nil {
			t.Fatal(err)
		}
		want := []Reference{{Offset: 3, Path: "a.wav"}, {Offset: 12, Path: "a.wav"}}
		if len(refs) != len(want) || refs[0] != want[0] || refs[1] != want[1] {
			t.Errorf("got %+v, want %+v", refs, want)
		}
	})

	t.Run("SuffixInsidePrefixOnly", func(t *testing.T) {
		// the only ".w" ends before the prefix does
		refs, err := FindReferences([]byte("a.wav"), "a.wav", ".w")
		if err != nil || len(refs) != 0 {
			t.Errorf("got %+v, %v", refs, err)
		}
	})

	t.Run("EmptyMarkers", func(t *testing.T) {
		if _, err := FindReferences([]byte("x"), "", ".wav"); err == nil {
			t.Error("expected error for empty prefix")
		}
		if _, err := FindReferences([]byte("x"), "samples/", ""); err == nil {
			t.Error("expected error for empty suffix")
		}
	})
}

func TestSlice(t *testing.T) {
	data := []byte("0123456789")

	out, err := Slice(data, 2, 5)
	if err != nil || string(out) != "234" {
		t.Fatalf("got %q, %v", out, err)
	}
	out[0] = 'x'
	if data[2] != '2' {
		t.Error("slice shares memory with input")
	}

	if out, err := Slice(data, 4, 4); err != nil || len(out) != 0 {
		t.Errorf("empty range: got %q, %v", out, err)
	}

	for _, r := range [][2]int{{-1, 2}, {5, 4}, {0, 11}} {
		if _, err := Slice(data, r[0], r[1]); err == nil {
			t.Errorf("[%d:%d]: expected error", r[0], r[1])
		}
	}
}

func TestScanFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, size int) {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("1a2b.pc", 3)
	write("zz.pc", 1)
	write("notes.txt", 1)
	write(filepath.Join("sub", "ff.pc"), 8)

	files, err := ScanFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %+v", len(files), files)
	}
	if files[0].Hash != 0x1a2b || files[0].Size != 3 || files[0].Name() != "1a2b.pc" {
		t.Errorf("files[0]: got %+v", files[0])
	}
	if files[1].Hash != 0xff || files[1].Size != 8 || files[1].Name() != "ff.pc" {
		t.Errorf("files[1]: got %+v", files[1])
	}

	if _, err := ScanFiles(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
