package dustfs

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"path"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Registry locates template files across search directories, compiles them
// once per name and renders them by name. All methods are safe for concurrent use.
//
// Compiled templates are never evicted: changes on disk are not picked up
// for a name that is already cached.
type Registry struct {
	engine Engine
	fsys   FileSystem
	ext    string
	logger *slog.Logger
	debug  atomic.Bool

	mu       sync.RWMutex
	dirs     []string
	compiled map[string]Artifact

	sf    singleflight.Group
	scans errgroup.Group
}

// New creates a Registry with no search directories.
func New(opts ...Option) *Registry {
	r := &Registry{
		engine:   NewTextEngine(),
		fsys:     OS(),
		ext:      DefaultExtension,
		compiled: make(map[string]Artifact),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// SetDebug enables or disables diagnostic logging of compile, load and render steps.
func (r *Registry) SetDebug(enabled bool) {
	r.debug.Store(enabled)
}

// Debug reports whether diagnostic logging is enabled.
func (r *Registry) Debug() bool {
	return r.debug.Load()
}

// debugf logs at info level so the debug flag alone decides whether the
// message is written, whatever the handler's minimum level.
func (r *Registry) debugf(msg string, args ...any) {
	if r.debug.Load() {
		r.logger.Info(msg, args...)
	}
}

// Extension returns the file extension RegisterDirs loads.
func (r *Registry) Extension() string { return r.ext }

// Engine returns the engine templates are compiled and rendered with.
func (r *Registry) Engine() Engine { return r.engine }

// RegisterDirs appends dirs to the search list and scans each of them in the
// background, loading every file with the registry extension under its file
// name. It does not wait for the scans; use Wait for that. Listing and load
// failures are logged and do not stop other files or directories.
func (r *Registry) RegisterDirs(dirs ...string) {
	for _, dir := range dirs {
		r.mu.Lock()
		r.dirs = append(r.dirs, dir)
		r.mu.Unlock()
		r.scans.Go(func() error {
			r.scanDir(dir)
			return nil
		})
	}
}

// AddDirs appends dirs to the search list without scanning them.
// Templates in them are found lazily by Render.
func (r *Registry) AddDirs(dirs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dirs = append(r.dirs, dirs...)
}

// Wait blocks until every directory scan started by RegisterDirs has finished.
func (r *Registry) Wait() {
	_ = r.scans.Wait()
}

func (r *Registry) scanDir(dir string) {
	entries, err := r.fsys.ReadDir(dir)
	if err != nil {
		r.logger.Error("dustfs: list template directory", "dir", dir, "err", err)
		return
	}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != r.ext {
			continue
		}
		if _, err := r.Load(r.fsys.Join(dir, e.Name()), e.Name()); err != nil {
			r.logger.Error("dustfs: load template", "dir", dir, "file", e.Name(), "err", err)
		}
	}
}

// Dirs returns a copy of the search directories in registration order.
func (r *Registry) Dirs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.dirs)
}

// SearchDir returns the first registered directory that contains a file called name.
// The boolean is false when no directory matches or name is not a single path segment.
func (r *Registry) SearchDir(name string) (string, bool) {
	if ValidateName(name) != nil {
		return "", false
	}
	for _, dir := range r.Dirs() {
		info, err := r.fsys.Stat(r.fsys.Join(dir, name))
		if err == nil && !info.IsDir() {
			return dir, true
		}
	}
	return "", false
}

// ValidateName checks that name is a single, non-empty path segment.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Lookup returns the compiled artifact cached under name.
func (r *Registry) Lookup(name string) (Artifact, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.compiled[name]
	return a, ok
}

// Names returns the cached template names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.compiled))
}

// Compile reads file and compiles it under name; an empty name defaults to file.
// If name is already cached the cached artifact is returned without touching the
// filesystem. Concurrent calls for the same uncached name share one read and compile.
// The read is synchronous on the calling goroutine.
func (r *Registry) Compile(file, name string) (Artifact, error) {
	if file == "" {
		return nil, errFileNotDefined()
	}
	if name == "" {
		name = file
	}
	if a, ok := r.Lookup(name); ok {
		return a, nil
	}
	v, err, _ := r.sf.Do(name, func() (any, error) {
		if a, ok := r.Lookup(name); ok {
			return a, nil
		}
		data, err := r.fsys.ReadFile(file)
		if err != nil {
			return nil, &TemplateError{Template: name, File: file, Err: err}
		}
		a, err := r.engine.Compile(name, string(data))
		if err != nil {
			if !errors.Is(err, ErrTemplateCompile) {
				err = fmt.Errorf("%w: %w", ErrTemplateCompile, err)
			}
			return nil, &TemplateError{Template: name, File: file, Err: err}
		}
		r.mu.Lock()
		r.compiled[name] = a
		r.mu.Unlock()
		r.debugf("template compiled", "file", file, "name", name)
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Artifact), nil
}

// Load compiles file under name (see Compile) and registers the artifact with
// the engine so it can be rendered, or included by other templates, as name.
// Registration happens on every call, including cache hits.
func (r *Registry) Load(file, name string) (Artifact, error) {
	if file == "" {
		return nil, errFileNotDefined()
	}
	if name == "" {
		name = file
	}
	a, err := r.Compile(file, name)
	if err != nil {
		return nil, err
	}
	if err := r.engine.LoadSource(a); err != nil {
		return nil, &TemplateError{Template: name, File: file, Err: err}
	}
	r.debugf("template loaded", "file", file, "name", name)
	return a, nil
}
