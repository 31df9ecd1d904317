package retrieval

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"ai-lessonplan-be/internal/pkg/apperrors"
)

var (
	thaiLatinBoundary = regexp.MustCompile(`([ก-๙])([A-Za-z])`)
	latinThaiBoundary = regexp.MustCompile(`([A-Za-z])([ก-๙])`)
	digitThaiBoundary = regexp.MustCompile(`([0-9])([ก-๙])`)
	thaiDigitBoundary = regexp.MustCompile(`([ก-๙])([0-9])`)
	delimiters        = regexp.MustCompile(`[,;|]`)
	whitespaceRun     = regexp.MustCompile(`\s+`)
)

// NormalizeText cleans raw corpus text for chunking and embedding. It
// inserts spaces at Thai/Latin/digit boundaries, flattens structural
// delimiters to spaces and collapses whitespace runs.
func NormalizeText(text string) string {
	s := thaiLatinBoundary.ReplaceAllString(text, "$1 $2")
	s = latinThaiBoundary.ReplaceAllString(s, "$1 $2")
	s = digitThaiBoundary.ReplaceAllString(s, "$1 $2")
	s = thaiDigitBoundary.ReplaceAllString(s, "$1 $2")
	s = delimiters.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// LoadCorpus reads a curriculum CSV and returns each row flattened into
// one normalized text line. A missing file is a curriculum-not-found
// condition, not an internal failure.
func LoadCorpus(dataDir, corpusFile string) ([]string, error) {
	path := filepath.Join(dataDir, corpusFile)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("corpus %s: %w", corpusFile, apperrors.ErrCurriculumNotFound)
		}
		return nil, fmt.Errorf("opening corpus %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing corpus %s: %w", path, err)
	}

	var lines []string
	for _, record := range records {
		joined := NormalizeText(strings.Join(record, " "))
		if joined == "" {
			continue
		}
		lines = append(lines, joined)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("corpus %s is empty: %w", corpusFile, apperrors.ErrCurriculumNotFound)
	}

	return lines, nil
}
