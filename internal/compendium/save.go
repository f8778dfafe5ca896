package compendium

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"
	"github.com/klauspost/compress/zip"

	"compendia/internal/fileutil"
)

var (
	// ErrOutputExists reports an existing output file when overwriting is off.
	ErrOutputExists = errors.New("output already exists")
	// ErrOutputLocked reports another process writing the same output.
	ErrOutputLocked = errors.New("output is locked by another process")
)

// SaveOptions control how Save writes the archive.
type SaveOptions struct {
	Overwrite bool
}

// Save writes the document as a zip archive at path. Members of the source
// archive are copied through unchanged, reserved assets are stored under
// their folders and compendium.xml carries the edited records. The archive is
// written to a temp file under an exclusive lock and renamed into place.
func (d *Document) Save(ctx context.Context, path string, opts SaveOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if !opts.Overwrite {
		if _, err := os.Stat(abs); err == nil {
			return fmt.Errorf("%s: %w", abs, ErrOutputExists)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat output: %w", err)
		}
	}
	if src, err := filepath.Abs(d.source); err == nil && src == abs && !d.archived {
		return fmt.Errorf("output %s would replace the source xml", abs)
	}

	lockPath := abs + ".lock"
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%s: %w", abs, ErrOutputLocked)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}()

	return fileutil.WriteAtomic(abs, 0o644, func(w io.Writer) error {
		return d.writeArchive(ctx, w)
	})
}

func (d *Document) writeArchive(ctx context.Context, w io.Writer) error {
	zw := zip.NewWriter(w)

	xmlWriter, err := zw.CreateHeader(&zip.FileHeader{Name: XMLName, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("create %s: %w", XMLName, err)
	}
	if _, err := io.WriteString(xmlWriter, d.XML()); err != nil {
		return fmt.Errorf("write %s: %w", XMLName, err)
	}

	if d.archived && len(d.members) > 0 {
		if err := d.copyMembers(ctx, zw); err != nil {
			return err
		}
	}

	for _, asset := range d.Assets() {
		if err := ctx.Err(); err != nil {
			return err
		}
		aw, err := zw.CreateHeader(&zip.FileHeader{Name: asset.Name, Method: zip.Store})
		if err != nil {
			return fmt.Errorf("create %s: %w", asset.Name, err)
		}
		if _, err := fileutil.CopyInto(aw, asset.Source); err != nil {
			return fmt.Errorf("embed %s: %w", asset.Source, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

func (d *Document) copyMembers(ctx context.Context, zw *zip.Writer) error {
	reader, err := zip.OpenReader(d.source)
	if err != nil {
		return fmt.Errorf("reopen source archive: %w", err)
	}
	defer reader.Close()

	for _, f := range reader.File {
		if f.Name == XMLName {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := zw.Copy(f); err != nil {
			return fmt.Errorf("copy member %s: %w", f.Name, err)
		}
	}
	return nil
}

func sortAssets(assets []Asset) {
	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
}
