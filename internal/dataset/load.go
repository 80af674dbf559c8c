package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/trknhr/neuron/internal/logger"
	"github.com/trknhr/neuron/internal/perceptron"
)

// Load reads labeled examples from a .csv or .jsonl file.
func Load(filePath string) ([]perceptron.Example, error) {
	var read func(io.Reader) ([]perceptron.Example, error)
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".csv":
		read = ReadCSV
	case ".jsonl":
		read = ReadJSONL
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .jsonl)", ext)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	examples, err := read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("%s: %w", filePath, ErrEmptyDataset)
	}
	return examples, nil
}

// ReadCSV expects a header row. The "expected" (or "label") column holds the
// 0/1 label and every other column is a numeric feature, in header order.
func ReadCSV(r io.Reader) ([]perceptron.Example, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file")
	}

	header := records[0]
	labelIdx := -1
	var featureIdx []int
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "expected", "label":
			labelIdx = i
		default:
			featureIdx = append(featureIdx, i)
		}
	}
	if labelIdx == -1 {
		return nil, fmt.Errorf("CSV must contain an 'expected' or 'label' column")
	}
	if len(featureIdx) == 0 {
		return nil, fmt.Errorf("CSV must contain at least one feature column")
	}

	var examples []perceptron.Example
	for i, record := range records[1:] {
		row := i + 2
		if len(record) != len(header) {
			logger.Warn("skipping malformed row %d: %d fields, want %d", row, len(record), len(header))
			continue
		}
		label, err := parseLabel(record[labelIdx])
		if err != nil {
			logger.Warn("skipping row %d: %v", row, err)
			continue
		}
		inputs, err := parseFeatures(record, featureIdx)
		if err != nil {
			logger.Warn("skipping row %d: %v", row, err)
			continue
		}
		examples = append(examples, perceptron.Example{Inputs: inputs, Expected: label})
	}
	return examples, nil
}

// ReadJSONL reads one {"inputs": [...], "expected": n} object per line.
func ReadJSONL(r io.Reader) ([]perceptron.Example, error) {
	var examples []perceptron.Example
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var ex perceptron.Example
		if err := json.Unmarshal([]byte(text), &ex); err != nil {
			logger.Warn("JSON decode error on line %d: %v", line, err)
			continue
		}
		if ex.Expected != 0 && ex.Expected != 1 {
			logger.Warn("skipping line %d: %v", line, perceptron.ErrInvalidLabel)
			continue
		}
		if len(ex.Inputs) == 0 {
			logger.Warn("skipping line %d: no inputs", line)
			continue
		}
		examples = append(examples, ex)
	}

	return examples, scanner.Err()
}

func parseLabel(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid label %q: %w", s, err)
	}
	if v != 0 && v != 1 {
		return 0, fmt.Errorf("%w: got %d", perceptron.ErrInvalidLabel, v)
	}
	return v, nil
}

func parseFeatures(record []string, idx []int) ([]float64, error) {
	out := make([]float64, len(idx))
	for k, i := range idx {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid feature %q: %w", record[i], err)
		}
		out[k] = v
	}
	return out, nil
}
