package io

import (
	"fmt"
	"os"
)

func ReadFile(filepath string) ([]byte, error) {
	bytes, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return bytes, nil
}

func WriteBytesToFile(filepath string, bytes []byte) error {
	if err := os.WriteFile(filepath, bytes, 0644); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}
	return nil
}
