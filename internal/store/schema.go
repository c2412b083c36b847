package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://question-set.json"

// questionSetSchema describes every shape Load accepts: current files,
// files with a "field" key instead of "specialization", and binary files
// that keep their metadata in a nested object.
const questionSetSchema = `{
  "type": "object",
  "required": ["questions"],
  "anyOf": [
    {"required": ["specialization"]},
    {"required": ["field"]},
    {"required": ["metadata"]}
  ],
  "properties": {
    "format_version": {"type": "string"},
    "specialization": {"type": "string", "minLength": 1},
    "field": {"type": "string", "minLength": 1},
    "subfield": {"type": "string"},
    "question_type": {"enum": ["multiple_choice", "true_false", "yes_no"]},
    "language": {"type": "string"},
    "generated_at": {"type": "string"},
    "question_count": {"type": "integer", "minimum": 0},
    "metadata": {
      "type": "object",
      "required": ["field"],
      "properties": {
        "field": {"type": "string", "minLength": 1},
        "question_type": {"enum": ["multiple_choice", "true_false", "yes_no"]},
        "count": {"type": "integer", "minimum": 0},
        "generated_at": {"type": "string"}
      }
    },
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question", "correct_answer"],
        "properties": {
          "question": {"type": "string"},
          "options": {"type": ["object", "array"]},
          "correct_answer": {"type": ["array", "string"]},
          "explanation": {"type": "string"}
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// documentSchema compiles the question-set schema on first use.
func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(strings.NewReader(questionSetSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
