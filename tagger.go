package crfsuite

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gengoai/gocrfsuite/internal/ffi"
)

// Tagger labels observation sequences with a trained CRF model.
type Tagger struct {
	mu     sync.Mutex
	handle uintptr
	closed bool
}

// NewTagger opens a model file and returns a tagger for it, loading the
// native engine first if necessary.
func NewTagger(modelFile string) (*Tagger, error) {
	h, err := ffi.TaggerNew()
	if err != nil {
		return nil, err
	}
	if err := ffi.TaggerOpen(h, modelFile); err != nil {
		ffi.TaggerClose(h)
		return nil, fmt.Errorf("open model %s: %w", modelFile, err)
	}
	return &Tagger{handle: h}, nil
}

// Tag runs Viterbi decoding over a sequence and returns, per position, the
// predicted tag with its marginal probability. Calls are serialized: the
// native tagger keeps per-call state and is not reentrant.
func (t *Tagger) Tag(xseq ItemSequence) ([]Label, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, fmt.Errorf("tagger is closed")
	}

	payload, err := json.Marshal(xseq)
	if err != nil {
		return nil, fmt.Errorf("encode sequence: %w", err)
	}
	if err := ffi.TaggerSet(t.handle, payload); err != nil {
		return nil, err
	}

	out, err := ffi.TaggerViterbi(t.handle)
	if err != nil {
		return nil, err
	}
	var tags []string
	if err := json.Unmarshal([]byte(out), &tags); err != nil {
		return nil, fmt.Errorf("decode label sequence: %w", err)
	}

	labels := make([]Label, len(tags))
	for i, tag := range tags {
		labels[i] = Label{
			Tag:         tag,
			Probability: ffi.TaggerMarginal(t.handle, tag, i),
		}
	}
	return labels, nil
}

// TagFile tags every sequence in a file of training-format data, ignoring
// the gold labels. See ReadInstances for the format.
func (t *Tagger) TagFile(path string) ([][]Label, error) {
	instances, err := LoadInstances(path)
	if err != nil {
		return nil, err
	}
	tagged := make([][]Label, 0, len(instances))
	for _, inst := range instances {
		labels, err := t.Tag(inst.Items)
		if err != nil {
			return nil, err
		}
		tagged = append(tagged, labels)
	}
	return tagged, nil
}

// Labels returns the model's label inventory.
func (t *Tagger) Labels() ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, fmt.Errorf("tagger is closed")
	}

	out, err := ffi.TaggerLabels(t.handle)
	if err != nil {
		return nil, err
	}
	var labels []string
	if err := json.Unmarshal([]byte(out), &labels); err != nil {
		return nil, fmt.Errorf("decode label inventory: %w", err)
	}
	return labels, nil
}

// Close releases the native tagger. The tagger must not be used afterwards.
func (t *Tagger) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	ffi.TaggerClose(t.handle)
	t.closed = true
	return nil
}
