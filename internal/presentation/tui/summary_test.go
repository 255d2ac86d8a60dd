package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneMarkdown(t *testing.T) {
	scene := domain.NewScene("castle",
		domain.Object{ID: "keep", Type: domain.TypeModel, Model: "models/keep.egg"},
		domain.Object{ID: "torch|1", Type: domain.TypeLight, Parent: "keep", Pos: domain.Vec3{1, 2.5, 0}},
		domain.Object{ID: "torch2", Type: domain.TypeLight, Parent: "keep"},
	)

	md := SceneMarkdown(scene)

	assert.True(t, strings.HasPrefix(md, "# castle\n"))
	assert.Contains(t, md, "3 objects")
	assert.Contains(t, md, "- **light**: 2")
	assert.Contains(t, md, "- **model**: 1")
	assert.Contains(t, md, `| torch\|1 | light | - | keep | (1, 2.5, 0) | - |`)
	assert.Less(t, strings.Index(md, "**light**"), strings.Index(md, "**model**"))
}

func TestSceneMarkdown_Empty(t *testing.T) {
	md := SceneMarkdown(domain.NewScene(""))
	assert.Contains(t, md, "# -")
	assert.Contains(t, md, "_Empty scene._")
}

func TestNewRenderer_Plain(t *testing.T) {
	render := NewRenderer(true, 0)
	out, err := render("# title")
	require.NoError(t, err)
	assert.Equal(t, "# title", out)
}

func TestNewRenderer_Styled(t *testing.T) {
	render := NewRenderer(false, 60)
	out, err := render("# castle\n\nsome *text*")
	require.NoError(t, err)
	assert.Contains(t, out, "castle")
}

func TestStatus_NoColorOnPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, "✔ saved", Status(&buf, true, "saved"))
	assert.Equal(t, "✘ failed", Status(&buf, false, "failed"))
}
