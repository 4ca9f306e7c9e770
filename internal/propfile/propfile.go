// Package propfile parses line-oriented property-definitions files:
// one key=value pair per line, '#' comments and blank lines skipped.
// Lines split on the first '=' with the key kept verbatim; value
// decoding, including quoting rules, is delegated to godotenv.
// Parsing one line at a time preserves file order and isolates
// per-line errors, which godotenv's whole-file API (an unordered map)
// cannot do.
package propfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Visit receives each parsed pair in file order. line is 1-based.
// err is non-nil for lines that fail to parse, with name and value
// empty. Returning false stops the parse early.
type Visit func(line int, name, value string, err error) bool

// Parse reads key=value pairs from r and hands them to visit in
// order. Only read failures are returned; malformed lines go to the
// visitor as per-line errors.
func Parse(r io.Reader, visit Visit) error {
	scanner := bufio.NewScanner(r)
	// Property values can be long; the default 64K token limit with
	// a larger ceiling keeps pathological lines from aborting reads.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		name, value, err := parseLine(text)
		if !visit(line, name, value, err) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read prop file: %w", err)
	}
	return nil
}

// ParseFile is Parse over the file at path.
func ParseFile(path string, visit Visit) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Parse(f, visit)
}

// valueKey stands in for the property name when decoding the value
// through godotenv.
const valueKey = "v"

// parseLine splits a single non-comment line into a pair. The split
// is on the first '=' only: property names may contain ':', which
// godotenv's own key grammar treats as a separator, and '-' or '@',
// which it rejects outright. Only the value half goes through
// godotenv, under a placeholder key.
func parseLine(text string) (string, string, error) {
	name, raw, ok := strings.Cut(text, "=")
	if !ok {
		return "", "", fmt.Errorf("malformed line %q: missing '='", text)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("malformed line %q: empty name", text)
	}
	pairs, err := godotenv.Unmarshal(valueKey + "=" + raw)
	if err != nil {
		return "", "", fmt.Errorf("malformed line %q: %w", text, err)
	}
	return name, pairs[valueKey], nil
}
