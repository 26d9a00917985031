package genemodel

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/genemodel.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // instance location (e.g., "/0/transcripts/1/exons")
	Message string // human-readable error message
	Keyword string // schema keyword that failed
}

// Err flattens the issues into a single error, nil when validation passed.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		msgs[i] = issue.Path + ": " + issue.Message
	}
	return fmt.Errorf("gene model schema: %s", strings.Join(msgs, "; "))
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("genemodel.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("genemodel.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate validates raw YAML bytes against the gene model JSON schema.
// The error return is for schema compilation or parse failures; validation
// findings are returned in the ValidationResult.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	// Convert YAML maps to JSON-compatible types and round-trip through
	// JSON so the schema validator sees the types it expects.
	raw = normalizeYAML(raw)
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}
	return &ValidationResult{Valid: false, Issues: extractIssues(validationErr)}, nil
}

// extractIssues walks the ValidationError tree and returns leaf-level
// issues. The document-level oneOf (list vs. collection) produces errors in
// both branches; leaves are collected from all of them and deduplicated.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)
	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return deduplicateIssues(issues)
}

func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}

		msg := ""
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Skip generic container errors that aren't informative.
		if keyword == "oneOf" || keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{Path: path, Message: msg, Keyword: keyword})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

// normalizeYAML recursively converts YAML-decoded values to JSON-compatible
// types. yaml.v3 decodes mappings to map[string]interface{} but may produce
// ints the schema validator does not handle consistently.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[k] = normalizeYAML(item)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, item := range val {
			a[i] = normalizeYAML(item)
		}
		return a
	default:
		return val
	}
}
