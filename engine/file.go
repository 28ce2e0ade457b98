package engine

import (
	"fmt"
	"os"
)

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // reading user-specified files is the purpose
	if err != nil {
		return nil, fmt.Errorf("engine: failed to read file %s: %w", path, err)
	}
	return data, nil
}
