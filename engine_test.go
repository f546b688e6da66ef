package dustfs

import (
	"bytes"
	"context"
	"testing"
	"text/template"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextEngine_CompileIsNotVisibleUntilLoaded(t *testing.T) {
	t.Parallel()
	eng := NewTextEngine()
	a, err := eng.Compile("a", "A")
	require.NoError(t, err)
	assert.Equal(t, "a", a.Name())
	assert.Equal(t, "A", a.Source())

	var buf bytes.Buffer
	err = eng.Render(t.Context(), "a", nil, &buf)
	require.ErrorIs(t, err, ErrTemplateNotFound)

	require.NoError(t, eng.LoadSource(a))
	require.NoError(t, eng.Render(t.Context(), "a", nil, &buf))
	assert.Equal(t, "A", buf.String())
}

func TestTextEngine_CompileError(t *testing.T) {
	t.Parallel()
	_, err := NewTextEngine().Compile("bad", "{{ .x ")
	require.ErrorIs(t, err, ErrTemplateCompile)
}

func TestTextEngine_LoadSourceIdempotent(t *testing.T) {
	t.Parallel()
	eng := NewTextEngine()
	a, err := eng.Compile("a", "same")
	require.NoError(t, err)
	require.NoError(t, eng.LoadSource(a))
	require.NoError(t, eng.LoadSource(a))
	var buf bytes.Buffer
	require.NoError(t, eng.Render(t.Context(), "a", nil, &buf))
	assert.Equal(t, "same", buf.String())
}

func TestTextEngine_LoadSourceForeignArtifact(t *testing.T) {
	t.Parallel()
	err := NewTextEngine().LoadSource(fakeArtifact{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

type fakeArtifact struct{}

func (fakeArtifact) Name() string   { return "fake" }
func (fakeArtifact) Source() string { return "" }

func TestTextEngine_DefinedTemplates(t *testing.T) {
	t.Parallel()
	eng := NewTextEngine()
	lib, err := eng.Compile("lib.dust", `{{ define "greet" }}hi {{ . }}{{ end }}`)
	require.NoError(t, err)
	page, err := eng.Compile("page.dust", `{{ template "greet" .name }}!`)
	require.NoError(t, err)
	require.NoError(t, eng.LoadSource(lib))
	require.NoError(t, eng.LoadSource(page))

	var buf bytes.Buffer
	require.NoError(t, eng.Render(t.Context(), "page.dust", map[string]any{"name": "bo"}, &buf))
	assert.Equal(t, "hi bo!", buf.String())
}

func TestTextEngine_Options(t *testing.T) {
	t.Parallel()
	eng := NewTextEngine(
		WithDelims("[[", "]]"),
		WithFuncs(template.FuncMap{"shout": func(s string) string { return s + "!" }}),
		WithMissingKey("error"),
	)
	a, err := eng.Compile("o", "[[ shout .word ]] {{ literal }}")
	require.NoError(t, err)
	require.NoError(t, eng.LoadSource(a))

	var buf bytes.Buffer
	require.NoError(t, eng.Render(t.Context(), "o", map[string]any{"word": "hey"}, &buf))
	if diff := cmp.Diff("hey! {{ literal }}", buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	err = eng.Render(t.Context(), "o", map[string]any{}, &bytes.Buffer{})
	require.ErrorIs(t, err, ErrTemplateRender)
}

func TestTextEngine_RenderCancelled(t *testing.T) {
	t.Parallel()
	eng := NewTextEngine()
	a, err := eng.Compile("a", "A")
	require.NoError(t, err)
	require.NoError(t, eng.LoadSource(a))
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	require.ErrorIs(t, eng.Render(ctx, "a", nil, &bytes.Buffer{}), context.Canceled)
}
