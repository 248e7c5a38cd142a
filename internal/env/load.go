// Package env loads KEY=VALUE files (".env") into the process environment so the
// PLAYGROUND_* overrides can live next to the binary.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Load reads path and sets an environment variable for each KEY=VALUE line. Values follow
// shell quoting rules. Blank lines, comments and an optional leading "export" are allowed.
// Variables already present in the environment win over the file. A missing file is not
// an error.
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	vars, err := Parse(bufio.NewScanner(f))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for k, v := range vars {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return err
		}
	}
	return nil
}

// Parse returns the variables defined by the scanned lines.
func Parse(scanner *bufio.Scanner) (map[string]string, error) {
	vars := make(map[string]string)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, raw, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("line %d: want KEY=VALUE", n)
		}
		words, err := shellwords.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		vars[key] = strings.Join(words, " ")
	}
	return vars, scanner.Err()
}
