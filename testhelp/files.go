package testhelp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/jonwraymond/utilkit/osutils"
	"github.com/jonwraymond/utilkit/ziputil"
)

// AssertCRCEqual asserts the two files have the same CRC-32.
func AssertCRCEqual(t assert.TestingT, calcPath, idealPath string) bool {
	helper(t)
	calc, err := osutils.CRCFromFilename(calcPath)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	ideal, err := osutils.CRCFromFilename(idealPath)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	if calc == ideal {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("ideal: %s (%d) != calc: %s (%d)", idealPath, ideal, calcPath, calc))
}

// LineComparer checks one pair of lines from AssertTextFilesEqual.
type LineComparer func(t assert.TestingT, calc, ideal string) bool

// AssertTextFilesEqual asserts two text files match. Identical files pass
// outright. Otherwise the files are compared line by line, the shorter
// one padded with empty lines, by compareLines. A nil compareLines ignores
// trailing whitespace, so line ending differences do not count.
func AssertTextFilesEqual(t assert.TestingT, calcPath, idealPath string, compareLines LineComparer) bool {
	helper(t)
	calcData, err := os.ReadFile(calcPath)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	idealData, err := os.ReadFile(idealPath)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	if bytes.Equal(calcData, idealData) {
		return true
	}
	if compareLines == nil {
		compareLines = func(t assert.TestingT, calc, ideal string) bool {
			return assert.Equal(t, trimRight(ideal), trimRight(calc))
		}
	}

	calcLines := strings.Split(string(calcData), "\n")
	idealLines := strings.Split(string(idealData), "\n")
	for i := range max(len(calcLines), len(idealLines)) {
		if !compareLines(t, lineAt(calcLines, i), lineAt(idealLines, i)) {
			return false
		}
	}
	return true
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// AssertZipEqual asserts two archives hold the same names with the same CRCs.
func AssertZipEqual(t assert.TestingT, calcPath, idealPath string) bool {
	helper(t)
	if err := ziputil.CompareZipFiles(calcPath, idealPath); err != nil {
		return assert.Fail(t, fmt.Sprintf("%s != %s: %v", calcPath, idealPath, err))
	}
	return true
}

// AssertFoldersEqual asserts two directory trees hold the same files,
// compared case-insensitively by relative path, with identical contents.
func AssertFoldersEqual(t assert.TestingT, calcDir, idealDir string) bool {
	helper(t)
	calc, err := foldedTree(calcDir)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	ideal, err := foldedTree(idealDir)
	if err != nil {
		return assert.Fail(t, err.Error())
	}

	calcNames := slices.Sorted(maps.Keys(calc))
	idealNames := slices.Sorted(maps.Keys(ideal))
	if !slices.Equal(calcNames, idealNames) {
		return assert.Fail(t, fmt.Sprintf("folders %s and %s differ:\nideal: %v\ncalc:  %v",
			idealDir, calcDir, idealNames, calcNames))
	}
	for _, name := range calcNames {
		if calc[name] != ideal[name] {
			return assert.Fail(t, fmt.Sprintf("%s differs between %s and %s", name, idealDir, calcDir))
		}
	}
	return true
}

func foldedTree(root string) (map[string]uint64, error) {
	tree, err := osutils.FingerprintTree(root)
	if err != nil {
		return nil, err
	}
	out := make(map[string]uint64, len(tree))
	for name, sum := range tree {
		out[strings.ToLower(name)] = sum
	}
	return out, nil
}

// AssertJSONEqual asserts calc and ideal encode to the same JSON document.
// On failure the message carries a line diff of the two documents.
func AssertJSONEqual(t assert.TestingT, calc, ideal any) bool {
	helper(t)
	left, err := jsonObject(ideal)
	if err != nil {
		return assert.Fail(t, fmt.Sprintf("encode ideal: %v", err))
	}
	right, err := jsonObject(calc)
	if err != nil {
		return assert.Fail(t, fmt.Sprintf("encode calc: %v", err))
	}

	diff := gojsondiff.New().CompareObjects(left, right)
	if !diff.Modified() {
		return true
	}
	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{ShowArrayIndex: true})
	text, err := f.Format(diff)
	if err != nil {
		text = err.Error()
	}
	return assert.Fail(t, "objects differ (- ideal, + calc):\n"+text)
}

// jsonObject round-trips v through JSON. Non-object documents are wrapped
// under a single key since the differ compares objects.
func jsonObject(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, err
	}
	if m, ok := decoded.(map[string]any); ok {
		return m, nil
	}
	return map[string]any{"$": decoded}, nil
}
