package graph

import (
	"errors"

	"github.com/vk/assetbake/internal/classify"
)

// Stage is the shader compilation stage one task targets.
type Stage string

const (
	StageComp Stage = "comp"
	StageVert Stage = "vert"
	StageFrag Stage = "frag"
)

var (
	// ErrUnexpectedConfig is returned when an overlay is supplied to an
	// asset kind that forbids overlays.
	ErrUnexpectedConfig = errors.New("unexpected config overlay")
	// ErrOutputCollision is returned when two tasks claim the same output
	// path. Output names are derived mechanically from input names, so a
	// collision is a configuration error in the asset tree, never
	// recoverable.
	ErrOutputCollision = errors.New("output path collision")
)

// Task is one invocation of an external converter (or, for passthrough
// assets, one verbatim copy).
type Task struct {
	Kind classify.Kind
	// Input is the root-relative primary input path.
	Input string
	// Overlays are the root-relative overlay paths, lowest precedence first.
	Overlays []string
	// Outputs are the install-relative output paths this task declares.
	Outputs []string
	// Stage is set for shader kinds only.
	Stage Stage
	// DepFile is the staging-relative path of the converter-emitted
	// dependency file, for kinds whose converters emit one.
	DepFile string
}

// Graph is the complete set of conversion tasks handed to the executor.
// It exclusively owns its tasks once Build returns.
type Graph struct {
	Tasks []*Task

	// outputs maps every claimed output path to the input that claimed it.
	// It exists only during construction; execution never touches it.
	outputs map[string]string
}
