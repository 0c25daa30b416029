package api

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Compiled request-body schemas. Each handler validates the raw body against
// its schema before decoding, so validation failures carry per-field messages.
var (
	registerSchema = mustSchema("schemas/register.json")
	loginSchema    = mustSchema("schemas/login.json")
	jobSchema      = mustSchema("schemas/job.json")
)

func mustSchema(name string) *jsonschema.Schema {
	b, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("read schema %s: %v", name, err))
	}

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(b, rs); err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}

	return rs
}

// validateBody checks body against schema and returns a field->message map,
// or nil when the body is valid.
func validateBody(ctx context.Context, schema *jsonschema.Schema, body []byte) map[string]string {
	keyErrs, err := schema.ValidateBytes(ctx, body)
	if err != nil {
		return map[string]string{"body": "must be valid JSON"}
	}
	if len(keyErrs) == 0 {
		return nil
	}

	fields := make(map[string]string, len(keyErrs))
	for _, ke := range keyErrs {
		field := strings.Trim(ke.PropertyPath, "/")
		if field == "" {
			// required-property failures report at the object root; the
			// offending name is quoted inside the message
			if parts := strings.SplitN(ke.Message, `"`, 3); len(parts) == 3 {
				field = parts[1]
			} else {
				field = "body"
			}
		}

		fields[field] = ke.Message
	}

	return fields
}
