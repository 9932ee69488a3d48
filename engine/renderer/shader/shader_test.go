package shader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinShaders(t *testing.T) {
	for _, s := range []Shader{Textured(), Untextured()} {
		assert.Equal(t, "vs_main", s.EntryPoint(StageVertex), s.Key())
		assert.Equal(t, "fs_main", s.EntryPoint(StageFragment), s.Key())
		require.NotNil(t, s.Module())
		assert.Equal(t, s.Key(), s.Module().Label)
		assert.Equal(t, s.Source(), s.Module().WGSLDescriptor.Code)
	}
}

func TestNewShader_IgnoresCommentedEntryPoints(t *testing.T) {
	src := `
// @vertex fn old_vs() {}
/* @fragment
   fn old_fs() {} /* nested */ still comment */
@vertex
fn real_vs() -> @builtin(position) vec4<f32> { return vec4<f32>(); }
@fragment fn real_fs() -> @location(0) vec4<f32> { return vec4<f32>(); }
`
	s, err := NewShader("custom", src)
	require.NoError(t, err)
	assert.Equal(t, "real_vs", s.EntryPoint(StageVertex))
	assert.Equal(t, "real_fs", s.EntryPoint(StageFragment))
}

func TestNewShader_MissingEntryPoint(t *testing.T) {
	_, err := NewShader("vs_only", "@vertex fn vs() {}")
	assert.ErrorIs(t, err, ErrMissingEntryPoint)

	_, err = NewShader("fs_only", "@fragment fn fs() {}")
	assert.ErrorIs(t, err, ErrMissingEntryPoint)
}

func TestNewShaderFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(untexturedSource), 0o644))

	s, err := NewShaderFromPath("custom", path)
	require.NoError(t, err)
	assert.Equal(t, "vs_main", s.EntryPoint(StageVertex))

	_, err = NewShaderFromPath("missing", filepath.Join(t.TempDir(), "nope.wgsl"))
	assert.Error(t, err)
}
