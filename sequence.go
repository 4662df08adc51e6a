package crfsuite

// Attribute is a single observed feature with a weight.
type Attribute struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Attr returns an attribute with the default weight of 1.
func Attr(name string) Attribute {
	return Attribute{Name: name, Value: 1}
}

// Item is the set of attributes observed at one position of a sequence.
type Item []Attribute

// ItemSequence is one observation sequence.
type ItemSequence []Item

// Instance pairs an observation sequence with its gold labels, one per
// position.
type Instance struct {
	Items  ItemSequence
	Labels []string
}

// Label is a predicted tag together with its marginal probability at the
// position it was assigned.
type Label struct {
	Tag         string
	Probability float64
}
