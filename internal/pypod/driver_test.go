package pypod

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trevadelman/fantom/internal/fir"
)

func testPod() *fir.Pod {
	intRef := &fir.TypeRef{Pod: "sys", Name: "Int", Signature: "sys::Int"}
	return &fir.Pod{
		Name:    "acme",
		Version: "1.0",
		Types: []*fir.TypeDef{
			{
				Qname: "acme::Widget", Pod: "acme", Name: "Widget",
				Fields: []*fir.FieldDef{{Name: "size", Type: intRef}},
			},
			{
				Qname: "acme::Hidden", Pod: "acme", Name: "Hidden", IsSynthetic: true,
			},
		},
	}
}

func TestEmitPodLayout(t *testing.T) {
	out := t.TempDir()
	sum, err := EmitPod(testPod(), Options{OutDir: out})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.TypesEmitted)
	assert.Equal(t, 0, sum.NativesMerged)

	// One file per non-synthetic type under fan/<pod>/.
	assert.FileExists(t, filepath.Join(out, "fan", "acme", "Widget.py"))
	assert.NoFileExists(t, filepath.Join(out, "fan", "acme", "Hidden.py"))
	assert.FileExists(t, filepath.Join(out, "fan", "acme", "__init__.py"))

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Join(out, "fan", "acme"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}

func TestEmitPodIdempotent(t *testing.T) {
	out := t.TempDir()
	_, err := EmitPod(testPod(), Options{OutDir: out})
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(out, "fan", "acme", "Widget.py"))
	require.NoError(t, err)

	_, err = EmitPod(testPod(), Options{OutDir: out})
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(out, "fan", "acme", "Widget.py"))
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input must produce byte-identical output")
}

func TestPodInitLazyLoader(t *testing.T) {
	out := t.TempDir()
	_, err := EmitPod(testPod(), Options{OutDir: out})
	require.NoError(t, err)

	init, err := os.ReadFile(filepath.Join(out, "fan", "acme", "__init__.py"))
	require.NoError(t, err)
	s := string(init)

	assert.Contains(t, s, "'Widget': 'fan.acme.Widget'")
	assert.NotContains(t, s, "Hidden", "synthetic types stay out of the loader table")
	assert.Contains(t, s, "def __getattr__(name):")
	assert.Contains(t, s, "_loading = set()")
	assert.Contains(t, s, "__import__(module_path, fromlist=[name])")
}

func TestNativeMerge(t *testing.T) {
	out := t.TempDir()
	natives := t.TempDir()

	native := "class Widget:\n    pass\n"
	require.NoError(t, os.WriteFile(filepath.Join(natives, "Widget.py"), []byte(native), 0o644))

	sum, err := EmitPod(testPod(), Options{
		OutDir:  out,
		Natives: map[string]string{"acme": natives},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.NativesMerged)

	got, err := os.ReadFile(filepath.Join(out, "fan", "acme", "Widget.py"))
	require.NoError(t, err)
	s := string(got)

	// The native body is authoritative and comes through verbatim...
	assert.True(t, strings.HasPrefix(s, native), "native body must lead the file")
	// ...with only the reflection registration appended.
	assert.Contains(t, s, `Type.find("acme::Widget")`)
	assert.Contains(t, s, `_t.af_("size"`)
	assert.NotContains(t, s, "def __init__", "emitted class body must not appear")
}

func TestNativeDirWithoutFileFallsBack(t *testing.T) {
	out := t.TempDir()
	natives := t.TempDir() // empty: no Widget.py

	sum, err := EmitPod(testPod(), Options{
		OutDir:  out,
		Natives: map[string]string{"acme": natives},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, sum.NativesMerged)
	assert.Equal(t, 1, sum.TypesEmitted)
}
