package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	IconFilePrefix = "icon-"
	IconFileExt    = ".png"
	TempSuffix     = ".tmp"
	DirPerm        = 0755
	FilePerm       = 0644
)

// IconFileName returns the output file name for a square icon,
// e.g. "icon-192.png".
func IconFileName(size int) string {
	return fmt.Sprintf("%s%d%s", IconFilePrefix, size, IconFileExt)
}

// AtomicWrite writes data to path via a temporary file + rename so a
// failed run never leaves a truncated file behind. The parent directory
// is created if needed. On error the previous contents of path, if any,
// are left in place.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + TempSuffix
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePerm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
