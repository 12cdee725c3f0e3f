package requirement

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"sigs.k8s.io/yaml"
)

//go:embed schema/manifest.schema.json
var manifestSchemaJSON []byte

const manifestSchemaID = "https://requisite.dev/schemas/manifest.json"

var manifestSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(manifestSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(manifestSchemaID, doc); err != nil {
		return nil, fmt.Errorf("failed to add resource: %w", err)
	}
	return compiler.Compile(manifestSchemaID)
})

// ManifestSchema returns the JSON schema manifests are validated against.
func ManifestSchema() []byte {
	return bytes.Clone(manifestSchemaJSON)
}

// validateSchema converts YAML to JSON and validates it against the manifest schema.
func validateSchema(data []byte) error {
	schema, err := manifestSchema()
	if err != nil {
		return fmt.Errorf("compile manifest schema: %w", err)
	}

	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}
