// Package words loads and serves the dictionary used to validate
// submitted words.
//
// Initialization behavior (Load):
//  1. If a path is given, load one word per line from that file.
//  2. Otherwise fall back to the small embedded default list so the
//     server and the offline client run without any configuration.
//
// Words are normalized to uppercase ASCII; entries shorter than two
// letters or containing non-letters are dropped.
package words

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
)

//go:embed default_words.txt
var embeddedWords string

// minWordLength is the shortest entry the dictionary accepts. A single
// tile never forms a word.
const minWordLength = 2

// Dictionary is an immutable uppercase word set.
type Dictionary struct {
	words map[string]struct{}
}

// Load builds a dictionary from the file at path, or from the embedded
// default list when path is empty. An empty resulting set is an error.
func Load(path string) (*Dictionary, error) {
	var list []string
	if path != "" {
		var err error
		list, err = readWordFile(path)
		if err != nil {
			return nil, fmt.Errorf("words: load %s: %w", path, err)
		}
	} else {
		list = normalizeLines(embeddedWords)
	}
	if len(list) == 0 {
		return nil, errors.New("words: dictionary is empty")
	}
	return New(list...), nil
}

// New builds a dictionary from the given words. Invalid entries are
// silently dropped.
func New(list ...string) *Dictionary {
	d := &Dictionary{words: make(map[string]struct{}, len(list))}
	for _, w := range list {
		w = normalize(w)
		if w != "" {
			d.words[w] = struct{}{}
		}
	}
	return d
}

// Contains reports whether word is in the dictionary. The lookup is
// case-insensitive.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[normalize(word)]
	return ok
}

// Len returns the number of distinct words loaded.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// readWordFile loads one word per line from a file. Blank lines and
// lines starting with '#' are skipped.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// normalizeLines processes an embedded multiline string into a word
// list.
func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			out = append(out, line)
		}
	}
	return out
}

// normalize uppercases w and rejects entries that are too short or not
// purely alphabetic. Returns "" for invalid input.
func normalize(w string) string {
	w = strings.ToUpper(strings.TrimSpace(w))
	if len(w) < minWordLength {
		return ""
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return ""
		}
	}
	return w
}
