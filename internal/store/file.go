// Package store reads and writes question sets as JSON files.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/abhisek/mcqgen/internal/mcq"
)

// FormatVersion is written to every saved file. Load rejects files from a
// newer major version.
const FormatVersion = "1.0.0"

// timestampLayout is used in generated file names.
const timestampLayout = "20060102_150405"

// document is the on-disk layout written by Save.
type document struct {
	Specialization string         `json:"specialization"`
	Subfield       string         `json:"subfield,omitempty"`
	QuestionType   string         `json:"question_type"`
	Language       string         `json:"language,omitempty"`
	FormatVersion  string         `json:"format_version"`
	GeneratedAt    string         `json:"generated_at"`
	QuestionCount  int            `json:"question_count"`
	Questions      []mcq.Question `json:"questions"`
}

// inputDocument is the superset of layouts Load understands.
type inputDocument struct {
	FormatVersion  string          `json:"format_version"`
	Specialization string          `json:"specialization"`
	Field          string          `json:"field"`
	Subfield       string          `json:"subfield"`
	QuestionType   string          `json:"question_type"`
	Language       string          `json:"language"`
	GeneratedAt    string          `json:"generated_at"`
	QuestionCount  *int            `json:"question_count"`
	Metadata       *inputMetadata  `json:"metadata"`
	Questions      []inputQuestion `json:"questions"`
}

type inputMetadata struct {
	Field        string `json:"field"`
	QuestionType string `json:"question_type"`
	Count        *int   `json:"count"`
	GeneratedAt  string `json:"generated_at"`
}

type inputQuestion struct {
	Question    string          `json:"question"`
	Options     mcq.Options     `json:"options"`
	Correct     json.RawMessage `json:"correct_answer"`
	Explanation string          `json:"explanation"`
}

// Save writes set to path as indented JSON and returns the path written.
// An empty path gets a generated name in the current directory; see
// Filename. Every question is validated first.
func Save(set *mcq.QuestionSet, path string) (string, error) {
	for i, q := range set.Questions {
		if err := q.Validate(); err != nil {
			return "", fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	if path == "" {
		path = Filename(set, time.Now())
	}

	kind := set.Type
	if kind == "" {
		kind = mcq.TypeMultipleChoice
	}
	doc := document{
		Specialization: set.Specialization,
		Subfield:       set.Subfield,
		QuestionType:   string(kind),
		Language:       set.Language,
		FormatVersion:  FormatVersion,
		GeneratedAt:    formatTime(set.GeneratedAt),
		QuestionCount:  len(set.Questions),
		Questions:      set.Questions,
	}
	if doc.Questions == nil {
		doc.Questions = []mcq.Question{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode question set: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Load reads a question set written by Save. It also reads older files
// that name the topic "field" or nest it under "metadata". A missing file
// yields *FileNotFoundError; anything that is not a valid question set
// yields *mcq.ParseError.
func Load(path string) (*mcq.QuestionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	parseErr := func(reason string, err error) error {
		return &mcq.ParseError{Source: path, Reason: reason, Err: err}
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, parseErr("invalid JSON", err)
	}
	schema, err := documentSchema()
	if err != nil {
		return nil, fmt.Errorf("question set schema: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, parseErr("unexpected document shape", err)
	}

	var doc inputDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, parseErr("invalid question set", err)
	}
	if err := checkVersion(doc.FormatVersion); err != nil {
		return nil, parseErr("unsupported file", err)
	}

	set, count, err := doc.toSet()
	if err != nil {
		return nil, parseErr("invalid question set", err)
	}
	if count != nil && *count != len(set.Questions) {
		return nil, parseErr("invalid question set",
			fmt.Errorf("question_count is %d but file holds %d questions", *count, len(set.Questions)))
	}
	return set, nil
}

func (d *inputDocument) toSet() (*mcq.QuestionSet, *int, error) {
	set := &mcq.QuestionSet{
		Specialization: d.Specialization,
		Subfield:       d.Subfield,
		Language:       d.Language,
	}
	if set.Specialization == "" {
		set.Specialization = d.Field
	}
	kindName, stamp, count := d.QuestionType, d.GeneratedAt, d.QuestionCount
	if m := d.Metadata; m != nil {
		if set.Specialization == "" {
			set.Specialization = m.Field
		}
		if kindName == "" {
			kindName = m.QuestionType
		}
		if stamp == "" {
			stamp = m.GeneratedAt
		}
		if count == nil {
			count = m.Count
		}
	}

	kind, err := mcq.ParseQuestionType(kindName)
	if err != nil {
		return nil, nil, err
	}
	set.Type = kind

	if set.GeneratedAt, err = parseTime(stamp); err != nil {
		return nil, nil, err
	}

	set.Questions = make([]mcq.Question, 0, len(d.Questions))
	for i, in := range d.Questions {
		q, err := in.toQuestion(kind)
		if err != nil {
			return nil, nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		set.Questions = append(set.Questions, q)
	}
	return set, count, nil
}

func (in inputQuestion) toQuestion(kind mcq.QuestionType) (mcq.Question, error) {
	q := mcq.Question{
		Text:        in.Question,
		Options:     in.Options,
		Explanation: in.Explanation,
	}

	// Older binary files store no options and a bare "True"/"No" answer.
	if kind.Binary() && len(q.Options) == 0 {
		q.Options = mcq.BinaryOptions(kind)
		var word string
		if json.Unmarshal(in.Correct, &word) == nil {
			if a, ok := mcq.BinaryAnswer(word); ok {
				q.Correct = a
			}
		}
	}
	if q.Correct.IsZero() {
		if err := json.Unmarshal(in.Correct, &q.Correct); err != nil {
			return q, fmt.Errorf("correct_answer: %w", err)
		}
	}
	if err := q.Validate(); err != nil {
		return q, err
	}
	return q, nil
}

// checkVersion accepts files without a version and any 1.x version.
func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	sv := "v" + strings.TrimPrefix(v, "v")
	if !semver.IsValid(sv) {
		return fmt.Errorf("invalid format_version %q", v)
	}
	if semver.Compare(semver.Major(sv), semver.Major("v"+FormatVersion)) > 0 {
		return fmt.Errorf("format_version %s is newer than supported %s", v, FormatVersion)
	}
	return nil
}

// Accepted generated_at layouts. Zone-less timestamps are read as local
// time.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("generated_at %q is not an ISO 8601 timestamp", s)
}

var unsafeName = regexp.MustCompile(`[^a-z0-9_-]+`)

// sanitize lowercases s and keeps only characters safe in file names.
func sanitize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), "_")
	s = strings.Trim(unsafeName.ReplaceAllString(s, ""), "_-")
	if s == "" {
		return "questions"
	}
	return s
}

// Filename returns the default file name for set:
// mcq_<specialization>_<YYYYmmdd_HHMMSS>.json, or
// binary_questions_<field>_<type>_<YYYYmmdd_HHMMSS>.json for binary sets.
func Filename(set *mcq.QuestionSet, at time.Time) string {
	ts := at.Format(timestampLayout)
	if set.Type.Binary() {
		return fmt.Sprintf("binary_questions_%s_%s_%s.json", sanitize(set.Specialization), set.Type, ts)
	}
	return fmt.Sprintf("mcq_%s_%s.json", sanitize(set.Specialization), ts)
}

// TranslatedPath returns src with the language appended to its stem:
// physics.json -> physics_hindi.json.
func TranslatedPath(src, language string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + "_" + sanitize(language) + ".json"
}
