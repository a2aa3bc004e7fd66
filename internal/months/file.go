package months

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseOverrides reads key/value override lines from r.
// Format:
//
//	# comment     → skip
//	Jun = 06 June → override
//
// Lines that do not contain exactly one '=' are ignored, as are keys that
// are not month abbreviations. Keys are stored as Jan..Dec, so the last
// line naming a month wins whatever its case.
func ParseOverrides(r io.Reader) (map[string]string, error) {
	overrides := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			continue
		}

		i := index(parts[0])
		if i < 0 {
			continue
		}
		overrides[Keys[i]] = strings.TrimSpace(parts[1])
	}

	return overrides, scanner.Err()
}

// LoadFile applies the overrides in the file at path to t.
func (t Table) LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return t, fmt.Errorf("open month file: %w", err)
	}
	defer f.Close()

	overrides, err := ParseOverrides(f)
	if err != nil {
		return t, fmt.Errorf("month file %s: %w", path, err)
	}
	return t.Apply(overrides), nil
}
