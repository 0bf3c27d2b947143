package executor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/vk/assetbake/internal/converter"
	"github.com/vk/assetbake/internal/graph"
)

// A stamp records the content hash of everything a task consumed: its argv,
// its primary input, its overlay chain, and the transitive files listed in
// the converter's depfile from the previous run. A task whose stamp still
// matches and whose outputs all exist is skipped.
//
// Stamp file format: first line the hash, one depfile entry per further line.

// upToDate reports whether the task's previous run is still valid.
func (e *Executor) upToDate(t *graph.Task) (bool, error) {
	recorded, deps, ok, err := e.readStamp(t)
	if err != nil || !ok {
		return false, err
	}

	for _, out := range t.Outputs {
		if _, err := os.Stat(e.stagingPath(out)); err != nil {
			return false, nil
		}
	}

	current, ok, err := e.hashInputs(t, deps)
	if err != nil || !ok {
		return false, err
	}
	return current == recorded, nil
}

// writeStamp records the task's inputs after a successful run, folding in
// the freshly emitted depfile entries.
func (e *Executor) writeStamp(t *graph.Task) error {
	deps, err := e.readDepFile(t)
	if err != nil {
		return err
	}
	sum, ok, err := e.hashInputs(t, deps)
	if err != nil {
		return err
	}
	if !ok {
		// A depfile entry vanished between the run and now; leave no stamp
		// so the next run redoes the task.
		return nil
	}

	stamp := e.stampPath(t)
	if err := os.MkdirAll(filepath.Dir(stamp), 0o755); err != nil {
		return err
	}
	content := sum
	if len(deps) > 0 {
		content += "\n" + strings.Join(deps, "\n")
	}
	return os.WriteFile(stamp, []byte(content+"\n"), 0o644)
}

// hashInputs digests argv, the primary input, the overlay chain, and the
// given dep entries. ok is false when any referenced file is missing, which
// callers treat as stale.
func (e *Executor) hashInputs(t *graph.Task, deps []string) (sum string, ok bool, err error) {
	d := xxhash.New()
	d.WriteString(t.Kind.String() + "\x00" + string(t.Stage) + "\x00")
	for _, arg := range converter.Command(t, e.cfg) {
		d.WriteString(arg)
		d.WriteString("\x00")
	}

	files := []string{e.assetPath(t.Input)}
	for _, ov := range t.Overlays {
		files = append(files, e.assetPath(ov))
	}
	files = append(files, deps...)

	for _, f := range files {
		file, err := os.Open(f)
		if os.IsNotExist(err) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		_, err = io.Copy(d, file)
		file.Close()
		if err != nil {
			return "", false, err
		}
		d.WriteString("\x00")
	}

	return fmt.Sprintf("%016x", d.Sum64()), true, nil
}

// readStamp loads the recorded hash and dep entries. ok is false when no
// stamp exists yet.
func (e *Executor) readStamp(t *graph.Task) (sum string, deps []string, ok bool, err error) {
	raw, err := os.ReadFile(e.stampPath(t))
	if os.IsNotExist(err) {
		return "", nil, false, nil
	}
	if err != nil {
		return "", nil, false, err
	}

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	return lines[0], lines[1:], true, nil
}

// readDepFile parses the make-style depfile the converter emitted, if any:
// backslash continuations joined, the target before ':' dropped, one
// absolute prerequisite path per field.
func (e *Executor) readDepFile(t *graph.Task) ([]string, error) {
	if t.DepFile == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(e.stagingPath(t.DepFile))
	if os.IsNotExist(err) {
		// Converters may emit no depfile when the input has no includes.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	text := strings.ReplaceAll(string(raw), "\\\n", " ")
	if i := strings.IndexByte(text, ':'); i >= 0 {
		text = text[i+1:]
	}
	return strings.Fields(text), nil
}

// stampPath mirrors the task's first output under <staging>/.stamps/.
func (e *Executor) stampPath(t *graph.Task) string {
	return filepath.Join(e.cfg.StagingDir, ".stamps", filepath.FromSlash(t.Outputs[0])+".stamp")
}
