package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/EchoTools/sequinFileTools/pkg/asset"
	"github.com/EchoTools/sequinFileTools/pkg/batch"
	"github.com/EchoTools/sequinFileTools/pkg/cache"
	"github.com/EchoTools/sequinFileTools/pkg/record"
	"github.com/EchoTools/sequinFileTools/pkg/sequin"
	"github.com/EchoTools/sequinFileTools/pkg/snapshot"
)

const (
	recordExt   = ".txt"
	snapshotExt = ".sqsn"
)

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeRecord writes text to path, as a snapshot when -snapshot is set.
func writeRecord(path string, text []byte) error {
	if !writeSnapshot {
		return os.WriteFile(path, text, 0644)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := snapshot.Encode(f, text); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}

func recordPath(dir, name string) string {
	if writeSnapshot {
		return filepath.Join(dir, name+snapshotExt)
	}
	return filepath.Join(dir, name+recordExt)
}

// emit prints text, or writes it under -output as <input stem>.txt.
func emit(text []byte) error {
	if outputPath == "" {
		fmt.Println(string(text))
		return nil
	}
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := recordPath(outputPath, stem(inputPath))
	if err := writeRecord(path, text); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	fmt.Printf("%s %s\n", styled(okStyle, "Wrote"), path)
	return nil
}

func decodeLibraryText(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	lib, err := sequin.DecodeFile(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return []byte(record.Emit(sequin.LibraryRecord(lib))), nil
}

func runDecode() error {
	text, err := decodeLibraryText(inputPath)
	if err != nil {
		return err
	}
	return emit(text)
}

func runLeaf() error {
	code, err := sequin.ParseTypeCode(objectType)
	if err != nil {
		return err
	}
	if !sequin.KnownObject(code) {
		return fmt.Errorf("type code %s has no object reader", code)
	}
	name := objectName
	if name == "" {
		name = filepath.Base(inputPath)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	obj, err := sequin.DecodeObject(data, code, name)
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return emit([]byte(record.Emit(sequin.ObjectRecord(obj))))
}

func runBatch(logger *zap.Logger) error {
	if err := prepareOutputDir(outputPath); err != nil {
		return err
	}

	fmt.Println("Scanning input directory...")
	files, err := cache.ScanFiles(inputPath)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d cache files\n", len(files))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := batch.Decode(ctx, files, func(res batch.Result) error {
		switch res.Status {
		case batch.Decoded:
			if err := writeRecord(recordPath(outputPath, stem(res.File.Path)), res.Text); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
			fmt.Printf("%s %s %s\n", styled(okStyle, "ok  "), res.File.Name(),
				styled(dimStyle, fmt.Sprintf("(%d objects)", len(res.Library.Objects))))
		case batch.Failed:
			fmt.Printf("%s %s %s\n", styled(errorStyle, "fail"), res.File.Name(), styled(dimStyle, res.Err.Error()))
		}
		return nil
	}, batch.WithLookahead(workers), batch.WithLogger(logger.Named("batch")))
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	fmt.Printf("%s run %s: %d decoded, %d skipped, %s\n",
		styled(titleStyle, "Batch complete"), sum.RunID, sum.Decoded, sum.Skipped,
		styled(failStyle(sum.Failed), fmt.Sprintf("%d failed", sum.Failed)))
	return nil
}

func runVerify() error {
	fresh, err := decodeLibraryText(inputPath)
	if err != nil {
		return err
	}

	f, err := os.Open(snapshotFile)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	stored, err := snapshot.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	if err := snapshot.Compare(stored, fresh); err != nil {
		return err
	}
	fmt.Printf("%s %s matches %s\n", styled(okStyle, "OK"), filepath.Base(inputPath), filepath.Base(snapshotFile))
	return nil
}

func runHeaders() error {
	files, err := cache.ScanFiles(inputPath)
	if err != nil {
		return err
	}

	for _, file := range files {
		h, err := readHeader(file.Path)
		if err != nil {
			fmt.Printf("%s %s\n", file.Name(), styled(errorStyle, err.Error()))
			continue
		}
		fmt.Printf("%s %d %s\n", file.Name(), int32(h.Kind), styled(dimStyle, h.String()))
	}
	return nil
}

// readHeader reads only the kind and magic of a cache file.
func readHeader(path string) (sequin.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return sequin.Header{}, err
	}
	defer f.Close()

	buf := make([]byte, 8)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return sequin.Header{}, err
	}
	return sequin.ReadHeader(buf[:n])
}

func runHash() error {
	fmt.Println(cache.FileName(assetPath))
	return nil
}

func runRefs() error {
	files, err := cache.ScanFiles(inputPath)
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(files))
	for _, file := range files {
		present[file.Name()] = true
	}

	seen := make(map[string]bool)
	var missing int
	for _, file := range files {
		data, err := os.ReadFile(file.Path)
		if err != nil {
			return fmt.Errorf("read %s: %w", file.Name(), err)
		}
		refs, err := cache.FindReferences(data, refPrefix, refSuffix)
		if err != nil {
			return err
		}
		for _, ref := range refs {
			target := cache.FileName(ref.Path)
			status := styled(okStyle, target)
			if !present[target] {
				status = styled(warnStyle, target+" not found")
				if !seen[ref.Path] {
					missing++
				}
			}
			seen[ref.Path] = true
			fmt.Printf("%s %s %s %s\n", file.Name(), styled(dimStyle, fmt.Sprintf("0x%x", ref.Offset)), ref.Path, status)
		}
	}

	fmt.Printf("%d distinct references, %d missing caches\n", len(seen), missing)
	return nil
}

func runExtract() error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var buf bytes.Buffer
	e, err := asset.NewDispatcher().Extract(data, &buf)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("%s %s asset to %s\n", styled(okStyle, "Extracted"), e.Name(), outputPath)
	return nil
}

func runSlice() error {
	start, err := strconv.ParseInt(sliceStart, 0, 64)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}
	end, err := strconv.ParseInt(sliceEnd, 0, 64)
	if err != nil {
		return fmt.Errorf("parse -end: %w", err)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	out, err := cache.Slice(data, int(start), int(end))
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("%s %d bytes to %s\n", styled(okStyle, "Wrote"), len(out), outputPath)
	return nil
}
