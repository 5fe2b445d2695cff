// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package subtests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/danielhkuo/dyscover/risk"
)

const ratioSchema = `{
	"type": "object",
	"required": ["score", "total"],
	"properties": {
		"score": {"type": "number", "minimum": 0},
		"total": {"type": "number", "exclusiveMinimum": 0}
	}
}`

var payloadSchemas = map[risk.TestID]string{
	risk.TestQuestionnaire: `{
		"type": "object",
		"required": ["score"],
		"properties": {
			"score": {"type": "number", "minimum": 0},
			"level": {"type": "string"},
			"group": {"enum": ["3-5", "6-8", "9-12"]},
			"maxPoints": {"type": "number", "exclusiveMinimum": 0},
			"answers": {
				"type": "array",
				"items": {"enum": ["Yes", "Sometimes", "No"]}
			}
		}
	}`,
	risk.TestPretest:  ratioSchema,
	risk.TestPhoneme:  ratioSchema,
	risk.TestPattern:  ratioSchema,
	risk.TestNonsense: ratioSchema,
	risk.TestReading: `{
		"type": "object",
		"required": ["wpm"],
		"properties": {
			"wpm": {"type": "number", "minimum": 0},
			"errorCount": {"type": "number", "minimum": 0},
			"correctWords": {"type": "number", "minimum": 0}
		}
	}`,
}

// schemaCache holds compiled schemas keyed by test id.
var schemaCache sync.Map // map[risk.TestID]*jsonschema.Schema

// ValidatePayload checks a raw result payload against the schema for its
// test type.
func ValidatePayload(test risk.TestID, payload json.RawMessage) error {
	compiled, err := compiledSchema(test)
	if err != nil {
		return err
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("invalid %s payload: %w", test, err)
	}
	return nil
}

func compiledSchema(test risk.TestID) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(test); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := payloadSchemas[test]
	if !ok {
		return nil, fmt.Errorf("no schema for test type %q", test)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(def)))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", test, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", test)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(test, compiled)
	return compiled, nil
}
