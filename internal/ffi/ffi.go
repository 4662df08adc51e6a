// Package ffi provides Go bindings to the native crfsuite engine via purego.
// Structured payloads (item sequences, label lists) cross the boundary as
// NUL-terminated JSON strings; strings returned by the engine are copied out
// and released with crfsuite_free_string.
package ffi

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/gengoai/gocrfsuite/internal/nativelib"
)

var (
	regMu      sync.Mutex
	registered bool
	libHandle  uintptr
)

// Engine function pointers (populated by ensure)
var (
	// Tagger functions
	fnTaggerNew      func() uintptr
	fnTaggerOpen     func(tagger uintptr, path uintptr) int32
	fnTaggerClose    func(tagger uintptr)
	fnTaggerSet      func(tagger uintptr, itemsJSON uintptr) int32
	fnTaggerViterbi  func(tagger uintptr) uintptr
	fnTaggerMarginal func(tagger uintptr, label uintptr, position int32) float64
	fnTaggerLabels   func(tagger uintptr) uintptr

	// Trainer functions
	fnTrainerNew     func() uintptr
	fnTrainerDestroy func(trainer uintptr)
	fnTrainerAppend  func(trainer uintptr, itemsJSON uintptr, labelsJSON uintptr, group int32) int32
	fnTrainerTrain   func(trainer uintptr, path uintptr, holdout int32) int32

	// System functions
	fnEngineVersion func() uintptr
	fnFreeString    func(ptr uintptr)
)

// ensure loads the native library and registers the engine functions once.
// A load failure is returned but never cached, so a later call can retry
// after the loader configuration has been fixed.
func ensure() error {
	regMu.Lock()
	defer regMu.Unlock()
	if registered {
		return nil
	}

	h, err := nativelib.Load()
	if err != nil {
		return err
	}
	libHandle = h

	registerTaggerFunctions()
	registerTrainerFunctions()
	registerSystemFunctions()
	registered = true
	return nil
}

func registerTaggerFunctions() {
	purego.RegisterLibFunc(&fnTaggerNew, libHandle, "crfsuite_tagger_new")
	purego.RegisterLibFunc(&fnTaggerOpen, libHandle, "crfsuite_tagger_open")
	purego.RegisterLibFunc(&fnTaggerClose, libHandle, "crfsuite_tagger_close")
	purego.RegisterLibFunc(&fnTaggerSet, libHandle, "crfsuite_tagger_set")
	purego.RegisterLibFunc(&fnTaggerViterbi, libHandle, "crfsuite_tagger_viterbi")
	purego.RegisterLibFunc(&fnTaggerMarginal, libHandle, "crfsuite_tagger_marginal")
	purego.RegisterLibFunc(&fnTaggerLabels, libHandle, "crfsuite_tagger_labels")
}

func registerTrainerFunctions() {
	purego.RegisterLibFunc(&fnTrainerNew, libHandle, "crfsuite_trainer_new")
	purego.RegisterLibFunc(&fnTrainerDestroy, libHandle, "crfsuite_trainer_destroy")
	purego.RegisterLibFunc(&fnTrainerAppend, libHandle, "crfsuite_trainer_append")
	purego.RegisterLibFunc(&fnTrainerTrain, libHandle, "crfsuite_trainer_train")
}

func registerSystemFunctions() {
	purego.RegisterLibFunc(&fnEngineVersion, libHandle, "crfsuite_engine_version")
	purego.RegisterLibFunc(&fnFreeString, libHandle, "crfsuite_free_string")
}

// EngineError is a nonzero status returned by the native engine.
type EngineError struct {
	Op   string
	Code int32
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("crfsuite: %s failed with status %d", e.Op, e.Code)
}

// goString copies a NUL-terminated C string into a Go string.
func goString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	var length int
	for {
		b := *(*byte)(unsafe.Pointer(ptr + uintptr(length)))
		if b == 0 {
			break
		}
		length++
		if length > 1<<26 { // Safety limit: 64MB
			break
		}
	}
	if length == 0 {
		return ""
	}
	out := make([]byte, length)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(ptr)), length))
	return string(out)
}

// takeString copies an engine-owned string and releases the native buffer.
func takeString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	s := goString(ptr)
	fnFreeString(ptr)
	return s
}

// cstr returns s with a trailing NUL, suitable for passing by pointer.
func cstr(s string) []byte {
	return append([]byte(s), 0)
}

// ============================================================================
// Tagger
// ============================================================================

// TaggerNew allocates a native tagger and returns its handle.
func TaggerNew() (uintptr, error) {
	if err := ensure(); err != nil {
		return 0, err
	}
	h := fnTaggerNew()
	if h == 0 {
		return 0, &EngineError{Op: "tagger_new", Code: -1}
	}
	return h, nil
}

// TaggerOpen loads a model file into the tagger.
func TaggerOpen(tagger uintptr, modelPath string) error {
	p := cstr(modelPath)
	status := fnTaggerOpen(tagger, uintptr(unsafe.Pointer(&p[0])))
	runtime.KeepAlive(p)
	if status != 0 {
		return &EngineError{Op: "tagger_open", Code: status}
	}
	return nil
}

// TaggerSet hands the tagger an observation sequence encoded as JSON.
func TaggerSet(tagger uintptr, itemsJSON []byte) error {
	p := append(itemsJSON, 0)
	status := fnTaggerSet(tagger, uintptr(unsafe.Pointer(&p[0])))
	runtime.KeepAlive(p)
	if status != 0 {
		return &EngineError{Op: "tagger_set", Code: status}
	}
	return nil
}

// TaggerViterbi runs Viterbi decoding over the current sequence and returns
// the label sequence as a JSON array.
func TaggerViterbi(tagger uintptr) (string, error) {
	ptr := fnTaggerViterbi(tagger)
	if ptr == 0 {
		return "", &EngineError{Op: "tagger_viterbi", Code: -1}
	}
	return takeString(ptr), nil
}

// TaggerMarginal returns the marginal probability of label at position in
// the current sequence.
func TaggerMarginal(tagger uintptr, label string, position int) float64 {
	p := cstr(label)
	prob := fnTaggerMarginal(tagger, uintptr(unsafe.Pointer(&p[0])), int32(position))
	runtime.KeepAlive(p)
	return prob
}

// TaggerLabels returns the model's label inventory as a JSON array.
func TaggerLabels(tagger uintptr) (string, error) {
	ptr := fnTaggerLabels(tagger)
	if ptr == 0 {
		return "", &EngineError{Op: "tagger_labels", Code: -1}
	}
	return takeString(ptr), nil
}

// TaggerClose releases a native tagger.
func TaggerClose(tagger uintptr) {
	fnTaggerClose(tagger)
}

// ============================================================================
// Trainer
// ============================================================================

// TrainerNew allocates a native trainer and returns its handle.
func TrainerNew() (uintptr, error) {
	if err := ensure(); err != nil {
		return 0, err
	}
	h := fnTrainerNew()
	if h == 0 {
		return 0, &EngineError{Op: "trainer_new", Code: -1}
	}
	return h, nil
}

// TrainerAppend adds one encoded training instance to the trainer under the
// given group number.
func TrainerAppend(trainer uintptr, itemsJSON, labelsJSON []byte, group int) error {
	items := append(itemsJSON, 0)
	labels := append(labelsJSON, 0)
	status := fnTrainerAppend(trainer,
		uintptr(unsafe.Pointer(&items[0])),
		uintptr(unsafe.Pointer(&labels[0])),
		int32(group))
	runtime.KeepAlive(items)
	runtime.KeepAlive(labels)
	if status != 0 {
		return &EngineError{Op: "trainer_append", Code: status}
	}
	return nil
}

// TrainerTrain runs training over the appended instances and writes the
// model to modelPath. holdout selects the evaluation group, -1 for none.
func TrainerTrain(trainer uintptr, modelPath string, holdout int) error {
	p := cstr(modelPath)
	status := fnTrainerTrain(trainer, uintptr(unsafe.Pointer(&p[0])), int32(holdout))
	runtime.KeepAlive(p)
	if status != 0 {
		return &EngineError{Op: "trainer_train", Code: status}
	}
	return nil
}

// TrainerDestroy releases a native trainer.
func TrainerDestroy(trainer uintptr) {
	fnTrainerDestroy(trainer)
}

// ============================================================================
// System
// ============================================================================

// EngineVersion asks the loaded engine for its own version string.
func EngineVersion() (string, error) {
	if err := ensure(); err != nil {
		return "", err
	}
	return goString(fnEngineVersion()), nil
}
