package crfsuite

import (
	"encoding/json"
	"fmt"

	"github.com/gengoai/gocrfsuite/internal/ffi"
)

// Trainer accumulates training instances and fits a CRF model.
type Trainer struct {
	handle uintptr
	closed bool
}

// NewTrainer returns an empty trainer, loading the native engine first if
// necessary.
func NewTrainer() (*Trainer, error) {
	h, err := ffi.TrainerNew()
	if err != nil {
		return nil, err
	}
	return &Trainer{handle: h}, nil
}

// Append adds one training instance. labels must carry exactly one gold
// label per sequence position.
func (tr *Trainer) Append(xseq ItemSequence, labels []string) error {
	if tr.closed {
		return fmt.Errorf("trainer is closed")
	}
	if len(xseq) != len(labels) {
		return fmt.Errorf("sequence has %d positions but %d labels", len(xseq), len(labels))
	}

	items, err := json.Marshal(xseq)
	if err != nil {
		return fmt.Errorf("encode sequence: %w", err)
	}
	ys, err := json.Marshal(labels)
	if err != nil {
		return fmt.Errorf("encode labels: %w", err)
	}
	return ffi.TrainerAppend(tr.handle, items, ys, 0)
}

// Train fits a model over the appended instances and writes it to
// modelFile.
func (tr *Trainer) Train(modelFile string) error {
	if tr.closed {
		return fmt.Errorf("trainer is closed")
	}
	return ffi.TrainerTrain(tr.handle, modelFile, -1)
}

// Close releases the native trainer. The trainer must not be used
// afterwards.
func (tr *Trainer) Close() error {
	if tr.closed {
		return nil
	}
	ffi.TrainerDestroy(tr.handle)
	tr.closed = true
	return nil
}

// Train reads training data from trainFile and writes a fitted model to
// modelFile. See ReadInstances for the data format.
func Train(trainFile, modelFile string) error {
	instances, err := LoadInstances(trainFile)
	if err != nil {
		return err
	}
	if len(instances) == 0 {
		return fmt.Errorf("no training instances in %s", trainFile)
	}

	tr, err := NewTrainer()
	if err != nil {
		return err
	}
	defer tr.Close()

	for _, inst := range instances {
		if err := tr.Append(inst.Items, inst.Labels); err != nil {
			return err
		}
	}
	return tr.Train(modelFile)
}
