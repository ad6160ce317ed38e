// Package fasta reads sequences from FASTA formatted text.
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const maxLine = 64 << 20

// Read concatenates every line of r that is not a '>' header, each trimmed of
// surrounding whitespace. Multiple records are joined into one sequence.
func Read(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	seq := &strings.Builder{}
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			continue
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("fasta: scan: %w", err)
	}

	return seq.String(), nil
}

func ReadFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("fasta: open %q: %w", path, err)
	}
	defer file.Close()

	seq, err := Read(file)
	if err != nil {
		return "", fmt.Errorf("%q: %w", path, err)
	}
	return seq, nil
}
