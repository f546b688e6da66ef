package dustfs

import (
	"log/slog"
	"strings"
)

// DefaultExtension is the file extension picked up when scanning registered directories.
const DefaultExtension = ".dust"

// Option configures a Registry (functional options pattern).
type Option func(*Registry)

// WithEngine sets the template engine. Default is NewTextEngine().
func WithEngine(e Engine) Option {
	return func(r *Registry) {
		if e != nil {
			r.engine = e
		}
	}
}

// WithFileSystem sets the filesystem templates are read from. Default is OS().
func WithFileSystem(fsys FileSystem) Option {
	return func(r *Registry) {
		if fsys != nil {
			r.fsys = fsys
		}
	}
}

// WithExtension sets the extension auto-loaded by RegisterDirs. A missing leading dot is added.
// Explicit Compile and Load calls accept any file regardless of extension.
func WithExtension(ext string) Option {
	return func(r *Registry) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.ext = ext
	}
}

// WithLogger sets the logger for diagnostics and directory scan failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithDebug sets the initial state of diagnostic logging (see Registry.SetDebug).
func WithDebug(enabled bool) Option {
	return func(r *Registry) {
		r.debug.Store(enabled)
	}
}
