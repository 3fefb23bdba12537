package genedist

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/mmap"
)

// Catalogue is the parsed form of a rewrite-rule file (spec.md §4.2): the
// three rewrite tries plus whichever base costs the file chose to
// override.
type Catalogue struct {
	Insert  *PrimitiveTrie
	Delete  *PrimitiveTrie
	Replace *ReplaceTrie

	AddCost, RepCost, RemCost float64
}

// LoadCatalogue parses the rewrite-rule file at path, following
// FileToTrie.c's trieFromFile. Lines starting with ">add:", ">rep:" or
// ">rem:" override the matching base cost; every other non-blank line is
// "left:right:cost", routed to the Insert trie when left is empty, the
// Delete trie when right is empty, and the Replace trie otherwise.
//
// The file is read through a read-only memory map whose contents are
// copied into memory and the mapping closed before parsing begins, so
// nothing keeps the mapping alive while the tries are built.
//
// If fold is non-nil, every rule string is folded through it before
// insertion, so a case-insensitive Engine can look rules up without
// folding at query time.
func LoadCatalogue(path string, fold *CaseMap) (*Catalogue, error) {
	buf, err := mapFile(path)
	if err != nil {
		return nil, err
	}

	cat := &Catalogue{
		Insert:  newPrimitiveTrie(),
		Delete:  newPrimitiveTrie(),
		Replace: newReplaceTrie(),
		AddCost: 1, RepCost: 1, RemCost: 1,
	}

	scanner := bufio.NewScanner(bytes.NewReader(buf))
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if err := applyOverride(cat, line); err != nil {
				return nil, fmt.Errorf("%w: catalogue %q line %d: %v", ErrMalformedCatalogue, path, lineNo, err)
			}
			continue
		}
		if err := applyRule(cat, line, fold); err != nil {
			return nil, fmt.Errorf("%w: catalogue %q line %d: %v", ErrMalformedCatalogue, path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading catalogue %q: %v", ErrIO, path, err)
	}
	return cat, nil
}

// LoadCaseMap parses a case-folding override file: one "FROM:TO" pair of
// single runes per line. It is the portable counterpart of
// FileToTrie.c's ignoreCaseListFromFile, which built the same mapping from
// locale-dependent character tables. An empty path yields a CaseMap with no
// overrides, so every rune passes through unchanged.
func LoadCaseMap(path string) (*CaseMap, error) {
	if path == "" {
		return NewCaseMap(nil), nil
	}
	buf, err := mapFile(path)
	if err != nil {
		return nil, err
	}

	overrides := make(map[rune]rune)
	scanner := bufio.NewScanner(bytes.NewReader(buf))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: case map %q line %d: expected FROM:TO", ErrMalformedCatalogue, path, lineNo)
		}
		from, to := []rune(parts[0]), []rune(parts[1])
		if len(from) != 1 || len(to) != 1 {
			return nil, fmt.Errorf("%w: case map %q line %d: sides must be single runes", ErrMalformedCatalogue, path, lineNo)
		}
		if _, exists := overrides[from[0]]; !exists {
			overrides[from[0]] = to[0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading case map %q: %v", ErrIO, path, err)
	}
	return NewCaseMap(overrides), nil
}

func mapFile(path string) ([]byte, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %v", ErrIO, path, err)
	}
	defer r.Close()
	buf := make([]byte, r.Len())
	if _, err := r.ReadAt(buf, 0); err != nil {
		return nil, fmt.Errorf("%w: reading %q: %v", ErrIO, path, err)
	}
	return buf, nil
}

func applyOverride(cat *Catalogue, line string) error {
	rest := strings.TrimPrefix(line, ">")
	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("malformed override %q", line)
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return fmt.Errorf("bad override value in %q: %v", line, err)
	}
	switch parts[0] {
	case "add":
		cat.AddCost = val
	case "rep":
		cat.RepCost = val
	case "rem":
		cat.RemCost = val
	default:
		return fmt.Errorf("unknown override kind %q", parts[0])
	}
	return nil
}

func applyRule(cat *Catalogue, line string, fold *CaseMap) error {
	parts := strings.SplitN(line, ":", 3)
	if len(parts) != 3 {
		return fmt.Errorf("expected left:right:cost, got %q", line)
	}
	cost, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return fmt.Errorf("bad cost in %q: %v", line, err)
	}
	left, right := []rune(parts[0]), []rune(parts[1])
	if fold != nil {
		left, right = fold.FoldString(left), fold.FoldString(right)
	}
	switch {
	case len(left) == 0 && len(right) == 0:
		return fmt.Errorf("rule %q has neither a left nor a right side", line)
	case len(left) == 0:
		cat.Insert.Insert(right, cost)
	case len(right) == 0:
		cat.Delete.Insert(left, cost)
	default:
		cat.Replace.Insert(left, right, cost)
	}
	return nil
}
