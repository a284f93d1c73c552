package datasets

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

func parseRating(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty rating")
	}
	return strconv.Atoi(s)
}

// FindTSVInAssets finds TSV files in a specified directory
func FindTSVInAssets(dir string) (string, error) {
	pattern := filepath.Join(dir, "*.tsv")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no TSV files found in %s", dir)
	}
	return matches[0], nil
}
