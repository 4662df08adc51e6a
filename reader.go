package crfsuite

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineSize bounds a single training line; feature-rich instances can get
// long but 1MB is far beyond anything crfsuite models use.
const maxLineSize = 1 << 20

// ReadInstances parses training data in the tab-separated crfsuite text
// format. Each non-blank line holds a gold label followed by the attributes
// observed at that position; a blank line terminates the sequence:
//
//	B-NP	w[0]=The	pos[0]=DT
//	I-NP	w[0]=cat	pos[0]=NN:0.5
//
// An attribute may carry a weight after the last colon; without one the
// weight is 1. A colon whose suffix does not parse as a number is treated as
// part of the attribute name.
func ReadInstances(r io.Reader) ([]Instance, error) {
	var (
		instances []Instance
		current   Instance
		lineNo    int
	)

	flush := func() {
		if len(current.Items) > 0 {
			instances = append(instances, current)
			current = Instance{}
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		fields := strings.Split(line, "\t")
		if fields[0] == "" {
			return nil, fmt.Errorf("line %d: missing label", lineNo)
		}
		item := make(Item, 0, len(fields)-1)
		for _, field := range fields[1:] {
			if field == "" {
				continue
			}
			item = append(item, parseAttribute(field))
		}
		current.Items = append(current.Items, item)
		current.Labels = append(current.Labels, fields[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read training data: %w", err)
	}
	flush()
	return instances, nil
}

// LoadInstances reads training data from a file. See ReadInstances for the
// format.
func LoadInstances(path string) ([]Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open training data: %w", err)
	}
	defer f.Close()
	return ReadInstances(f)
}

func parseAttribute(field string) Attribute {
	if i := strings.LastIndexByte(field, ':'); i >= 0 {
		if w, err := strconv.ParseFloat(field[i+1:], 64); err == nil {
			return Attribute{Name: field[:i], Value: w}
		}
	}
	return Attribute{Name: field, Value: 1}
}
