package dustfs

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// FileSystem is the filesystem surface a Registry needs: existence checks,
// whole-file reads and directory listing.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Join(elem ...string) string
}

type osFileSystem struct{}

// OS returns a FileSystem backed by the host filesystem.
func OS() FileSystem { return osFileSystem{} }

func (osFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (osFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) // #nosec G304 -- template paths come from registered dirs or the caller
}

func (osFileSystem) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }

func (osFileSystem) Join(elem ...string) string { return filepath.Join(elem...) }

type ioFileSystem struct {
	fsys fs.FS
}

// FromFS adapts an fs.FS (e.g. embed.FS or fstest.MapFS) to a FileSystem.
// Paths are slash-separated and relative to the root of fsys.
func FromFS(fsys fs.FS) FileSystem { return ioFileSystem{fsys: fsys} }

func (f ioFileSystem) Stat(name string) (fs.FileInfo, error) { return fs.Stat(f.fsys, name) }

func (f ioFileSystem) ReadFile(name string) ([]byte, error) { return fs.ReadFile(f.fsys, name) }

func (f ioFileSystem) ReadDir(name string) ([]fs.DirEntry, error) { return fs.ReadDir(f.fsys, name) }

func (ioFileSystem) Join(elem ...string) string { return path.Join(elem...) }
