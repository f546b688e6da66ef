package dustfs

import (
	"bytes"
	"context"
	"io"
)

// Result is the single outcome of an asynchronous render.
type Result struct {
	Output string
	Err    error
}

// Callback receives the outcome of RenderCallback, error first.
type Callback func(err error, output string)

// RenderTo renders the template name against data and writes the output to w.
//
// data is augmented in place by CreateContext. If name is not cached yet it is
// resolved through the search directories and loaded; when no directory holds
// it the returned error wraps ErrTemplateNotFound and nothing is rendered.
// Engine errors are returned as *TemplateError.
func (r *Registry) RenderTo(ctx context.Context, w io.Writer, name string, data Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	data = CreateContext(data)
	if _, ok := r.Lookup(name); !ok {
		dir, found := r.SearchDir(name)
		if !found {
			return errNotFound(name)
		}
		if _, err := r.Load(r.fsys.Join(dir, name), name); err != nil {
			return err
		}
	}
	r.debugf("rendering template", "name", name)
	if err := r.engine.Render(ctx, name, data, w); err != nil {
		return &TemplateError{Template: name, Err: err}
	}
	return nil
}

// Render renders the template name against data and returns the output.
func (r *Registry) Render(ctx context.Context, name string, data Context) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderTo(ctx, &buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderAsync renders in a new goroutine. The returned channel receives exactly one Result and is then closed.
func (r *Registry) RenderAsync(ctx context.Context, name string, data Context) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		out, err := r.Render(ctx, name, data)
		ch <- Result{Output: out, Err: err}
	}()
	return ch
}

// RenderCallback renders in a new goroutine and invokes cb exactly once with
// either a non-nil error or the rendered output.
func (r *Registry) RenderCallback(ctx context.Context, name string, data Context, cb Callback) {
	go func() {
		out, err := r.Render(ctx, name, data)
		cb(err, out)
	}()
}
