// Package pypod drives per-pod output: it lays out the fan/<pod>/ directory,
// emits one Python file per type, merges hand-written native files, and
// writes the pod's lazy-loading __init__.py.
package pypod

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/trevadelman/fantom/errors"
	"github.com/trevadelman/fantom/internal/fir"
	"github.com/trevadelman/fantom/internal/pyemit"
	"github.com/trevadelman/fantom/internal/pyrt"
	"github.com/trevadelman/fantom/logger"
)

// Options configures one emission run.
type Options struct {
	// OutDir is the output root; files land under OutDir/fan/<pod>/.
	OutDir string

	// Natives maps a pod name to the directory of its hand-written .py
	// files. A native file is the authoritative class body; the driver
	// appends only the reflection-registration block.
	Natives map[string]string
}

// Summary reports what one pod emission produced.
type Summary struct {
	Pod           string
	TypesEmitted  int
	NativesMerged int
}

// EmitPod writes a pod's output subtree. Types are emitted in the order
// given, which the front-end has already arranged so bases and mixins
// precede their derivatives. Any type failure is fatal for the pod.
func EmitPod(pod *fir.Pod, opts Options) (*Summary, error) {
	dir := filepath.Join(opts.OutDir, "fan", pod.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory for pod %s", pod.Name)
	}

	sum := &Summary{Pod: pod.Name}
	log := logger.Get()

	for _, t := range pod.Types {
		if t.IsSynthetic {
			continue
		}
		native := nativePath(opts, pod.Name, t.Name)
		var buf bytes.Buffer
		var err error
		if native != "" {
			err = mergeNative(&buf, native, pod, t)
			if err == nil {
				sum.NativesMerged++
			}
		} else {
			err = pyemit.PrintType(&buf, pod, t)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "pod %s: type %s", pod.Name, t.Name)
		}

		path := filepath.Join(dir, t.Name+".py")
		if err := writeAtomic(path, buf.Bytes()); err != nil {
			return nil, errors.Wrapf(err, "pod %s: type %s", pod.Name, t.Name)
		}
		sum.TypesEmitted++
		log.Debugw("emitted type",
			logger.FieldPod, pod.Name,
			logger.FieldType, t.Name,
			logger.FieldFile, path)
	}

	if err := writePodInit(dir, pod); err != nil {
		return nil, errors.Wrapf(err, "pod %s: __init__.py", pod.Name)
	}

	log.Infow("emitted pod",
		logger.FieldPod, pod.Name,
		logger.FieldCount, sum.TypesEmitted)
	return sum, nil
}

// nativePath returns the pod's hand-written file for the type, or "".
func nativePath(opts Options, pod, typeName string) string {
	dir := opts.Natives[pod]
	if dir == "" {
		return ""
	}
	path := filepath.Join(dir, typeName+".py")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// mergeNative copies the hand-written class body verbatim and appends the
// reflection-registration block.
func mergeNative(buf *bytes.Buffer, native string, pod *fir.Pod, t *fir.TypeDef) error {
	src, err := os.ReadFile(native)
	if err != nil {
		return errors.Wrap(err, "reading native file")
	}
	buf.Write(src)
	if len(src) > 0 && src[len(src)-1] != '\n' {
		buf.WriteByte('\n')
	}
	return pyemit.PrintReflection(buf, pod, t)
}

// writeAtomic writes content through a temp file and renames into place, so
// a type's output is either fully written or absent.
func writeAtomic(path string, content []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// writePodInit emits the pod's __init__.py: a declared-name table and a
// module-level __getattr__ that imports lazily on first access, guarded
// against load cycles.
func writePodInit(dir string, pod *fir.Pod) error {
	var buf bytes.Buffer

	names := make([]string, 0, len(pod.Types))
	for _, t := range pod.Types {
		if !t.IsSynthetic {
			names = append(names, t.Name)
		}
	}
	sort.Strings(names)

	buf.WriteString("# " + pod.Name + " pod\n\n")
	buf.WriteString("_types = {\n")
	for _, n := range names {
		buf.WriteString("    '" + n + "': 'fan." + pod.Name + "." + n + "',\n")
	}
	buf.WriteString("}\n\n")
	buf.WriteString(pyrt.LoadingGuard + " = set()\n\n")
	buf.WriteString("def __getattr__(name):\n")
	buf.WriteString("    module_path = _types.get(name)\n")
	buf.WriteString("    if module_path is None:\n")
	buf.WriteString("        raise AttributeError(f\"module 'fan." + pod.Name + "' has no attribute {name!r}\")\n")
	buf.WriteString("    if name in " + pyrt.LoadingGuard + ":\n")
	buf.WriteString("        raise ImportError(f\"circular load of fan." + pod.Name + ".{name}\")\n")
	buf.WriteString("    " + pyrt.LoadingGuard + ".add(name)\n")
	buf.WriteString("    try:\n")
	buf.WriteString("        module = __import__(module_path, fromlist=[name])\n")
	buf.WriteString("        value = getattr(module, name)\n")
	buf.WriteString("        globals()[name] = value\n")
	buf.WriteString("        return value\n")
	buf.WriteString("    finally:\n")
	buf.WriteString("        " + pyrt.LoadingGuard + ".discard(name)\n")

	return writeAtomic(filepath.Join(dir, "__init__.py"), buf.Bytes())
}
