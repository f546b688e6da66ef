package embedfs

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/thejhh/dustfs"
)

// New walks root in fsys and loads every file with the registry extension
// (see dustfs.WithExtension) before returning. Unlike Registry.RegisterDirs it
// stops at the first failure and returns it. root is also registered as a
// search directory, so single-segment names added later can still be resolved.
func New(fsys fs.FS, root string, opts ...dustfs.Option) (*dustfs.Registry, error) {
	r := dustfs.New(slices.Concat(opts, []dustfs.Option{dustfs.WithFileSystem(dustfs.FromFS(fsys))})...)
	ext := r.Extension()
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ext {
			return nil
		}
		name := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		if root == "." {
			name = p
		}
		if _, err := r.Load(p, name); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.AddDirs(root)
	return r, nil
}
