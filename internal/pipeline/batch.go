package pipeline

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadURLFile reads one URL per line from path. Blank lines and leading or
// trailing whitespace are ignored; line order is preserved. A file of only
// blank lines yields an empty, non-nil slice.
func ReadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()

	urls := []string{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read batch file %s: %w", path, err)
	}
	return urls, nil
}
