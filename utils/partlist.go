package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultPartNumbers is used when no part-numbers file is configured
var DefaultPartNumbers = []string{"BR32CCP07", "UNCBR32CCP07"}

// LoadPartNumbers reads one part number per line from path, skipping blank
// lines. An empty path returns the built-in default list.
func LoadPartNumbers(path string, logger *Logger) ([]string, error) {
	if path == "" {
		logger.Info("No part numbers file given, using %d default part numbers", len(DefaultPartNumbers))
		return append([]string(nil), DefaultPartNumbers...), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open part numbers file: %w", err)
	}
	defer file.Close()

	var parts []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts = append(parts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read part numbers file: %w", err)
	}

	logger.Info("Loaded %d part numbers from %s", len(parts), path)
	return parts, nil
}
