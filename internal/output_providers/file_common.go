package outputproviders

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultOutputFile is written when no output path is given.
const DefaultOutputFile = "./network_topology.json"

// ErrOutputWrite marks local filesystem failures creating or writing output.
var ErrOutputWrite = errors.New("output write failed")

// Probe checks that path can be created by creating and removing it. It runs
// before any API call so that a bad path fails fast.
func Probe(path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("%w: %w", ErrOutputWrite, err)
		}
	}
	return nil
}
