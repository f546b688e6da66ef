package dustfs

import (
	"context"
	"fmt"
	"io"
	"maps"
	"sync"
	"text/template"
)

// Artifact is a compiled template owned by an Engine.
type Artifact interface {
	Name() string
	Source() string
}

// Engine compiles template sources and renders them by name.
// LoadSource makes a compiled artifact resolvable by its name inside the engine;
// calling it again for the same artifact must be harmless.
type Engine interface {
	Compile(name, source string) (Artifact, error)
	LoadSource(a Artifact) error
	Render(ctx context.Context, name string, data any, w io.Writer) error
}

// Ensures TextEngine implements Engine.
var _ Engine = (*TextEngine)(nil)

// textArtifact is a standalone parse of one template file.
type textArtifact struct {
	name   string
	source string
	tpl    *template.Template
}

func (a *textArtifact) Name() string   { return a.name }
func (a *textArtifact) Source() string { return a.source }

// TextEngine is an Engine built on text/template. Loaded templates share one
// template set, so {{ template "other.dust" . }} resolves any loaded name.
type TextEngine struct {
	funcs      template.FuncMap
	leftDelim  string
	rightDelim string
	missingKey string
	mu         sync.RWMutex
	set        *template.Template
}

// TextEngineOption configures a TextEngine (functional options pattern).
type TextEngineOption func(*TextEngine)

// WithFuncs adds functions available to every template compiled by the engine.
func WithFuncs(funcs template.FuncMap) TextEngineOption {
	return func(e *TextEngine) {
		if e.funcs == nil {
			e.funcs = make(template.FuncMap, len(funcs))
		}
		maps.Copy(e.funcs, funcs)
	}
}

// WithDelims sets the action delimiters. Empty values keep "{{" and "}}".
func WithDelims(left, right string) TextEngineOption {
	return func(e *TextEngine) {
		e.leftDelim = left
		e.rightDelim = right
	}
}

// WithMissingKey sets the text/template "missingkey" option ("default", "zero" or "error").
func WithMissingKey(mode string) TextEngineOption {
	return func(e *TextEngine) {
		e.missingKey = mode
	}
}

// NewTextEngine creates a TextEngine with an empty template set.
func NewTextEngine(opts ...TextEngineOption) *TextEngine {
	e := &TextEngine{}
	for _, opt := range opts {
		opt(e)
	}
	e.set = e.newTemplate("")
	return e
}

func (e *TextEngine) newTemplate(name string) *template.Template {
	t := template.New(name).Delims(e.leftDelim, e.rightDelim)
	if e.funcs != nil {
		t = t.Funcs(e.funcs)
	}
	if e.missingKey != "" {
		t = t.Option("missingkey=" + e.missingKey)
	}
	return t
}

// Compile parses source as a template named name. The result is not visible to Render until loaded.
func (e *TextEngine) Compile(name, source string) (Artifact, error) {
	tpl, err := e.newTemplate(name).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateCompile, err)
	}
	return &textArtifact{name: name, source: source, tpl: tpl}, nil
}

// LoadSource adds the artifact and every template it defines to the shared set.
// Loading a name again replaces its previous definition.
func (e *TextEngine) LoadSource(a Artifact) error {
	ta, ok := a.(*textArtifact)
	if !ok || ta == nil {
		return fmt.Errorf("%w: artifact %T was not compiled by TextEngine", ErrInvalidArgument, a)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range ta.tpl.Templates() {
		if t.Tree == nil {
			continue
		}
		if _, err := e.set.AddParseTree(t.Name(), t.Tree); err != nil {
			return fmt.Errorf("%w: %w", ErrTemplateCompile, err)
		}
	}
	return nil
}

// Render executes the loaded template name with data and writes the output to w.
func (e *TextEngine) Render(ctx context.Context, name string, data any, w io.Writer) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	e.mu.RLock()
	tpl := e.set.Lookup(name)
	e.mu.RUnlock()
	if tpl == nil {
		return errNotFound(name)
	}
	if err := tpl.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %w", ErrTemplateRender, err)
	}
	return nil
}
