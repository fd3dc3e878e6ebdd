//go:build ignore

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
)

// SchemaConfig represents the root configuration for schema generation
type SchemaConfig struct {
	LogLevel       string                       `json:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=warning,enum=error,default=warn,description=Log level for diagnostics written to stderr"`
	MaxSuggestions int                          `json:"max_suggestions,omitempty" jsonschema:"minimum=0,default=8,description=Maximum number of suggestions shown (0 means unlimited)"`
	Source         string                       `json:"source,omitempty" jsonschema:"enum=prefix,enum=trie,default=prefix,description=How suggestion lists are searched: in order by prefix or through a prefix trie"`
	Triggers       []TriggerConfig              `json:"triggers,omitempty" jsonschema:"description=Characters that open the suggestion popup"`
	Suggestions    map[string][]SuggestionValue `json:"suggestions,omitempty" jsonschema:"description=Suggestion lists keyed by trigger character"`
	Surface        *SurfaceConfig               `json:"surface,omitempty" jsonschema:"description=Layout of the text box"`
}

// TriggerConfig is one trigger entry
type TriggerConfig struct {
	Char      string `json:"char" jsonschema:"required,minLength=1,maxLength=1,description=Trigger character"`
	MultiWord bool   `json:"multi_word,omitempty" jsonschema:"default=false,description=If true the query may contain spaces and ends at a period or newline"`
}

// SuggestionValue represents either a plain string or a value with a key
type SuggestionValue struct {
	Plain   string            `json:"-"`
	Complex *SuggestionConfig `json:"-"`
}

// SuggestionConfig is a suggestion with an explicit identity
type SuggestionConfig struct {
	Value string `json:"value" jsonschema:"required,minLength=1,description=Text inserted on acceptance"`
	Key   string `json:"key,omitempty" jsonschema:"description=Stable identity (defaults to value)"`
}

// SurfaceConfig describes the text box
type SurfaceConfig struct {
	Width     int  `json:"width,omitempty" jsonschema:"minimum=0,default=60,description=Width in cells (0 disables wrapping)"`
	Multiline bool `json:"multiline,omitempty" jsonschema:"default=true,description=Accept newlines and wrap at width"`
	WordBreak bool `json:"word_break,omitempty" jsonschema:"default=false,description=Break long words at width"`
	Autosize  bool `json:"autosize,omitempty" jsonschema:"default=false,description=Grow the box with its content"`
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

// JSONSchema implements custom schema generation for SuggestionValue
func (SuggestionValue) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{
				Type:        "string",
				MinLength:   uint64Ptr(1),
				Description: "Plain suggestion: inserted text and identity",
			},
			{
				Ref: "#/$defs/SuggestionConfig",
			},
		},
	}
}

func main() {
	r := &jsonschema.Reflector{
		DoNotReference:             false,
		ExpandedStruct:             false,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}

	schema := r.Reflect(&SchemaConfig{})

	// SuggestionConfig is only reachable through the custom oneOf above
	suggestionSchema := r.ReflectFromType(reflect.TypeOf(SuggestionConfig{}))
	if def, ok := suggestionSchema.Definitions["SuggestionConfig"]; ok {
		schema.Definitions["SuggestionConfig"] = def
	}

	// Suggestion lists are keyed by a single character
	if schemaConfig, ok := schema.Definitions["SchemaConfig"]; ok {
		if suggestions, ok := schemaConfig.Properties.Get("suggestions"); ok {
			suggestions.PatternProperties = map[string]*jsonschema.Schema{
				"^.$": suggestions.AdditionalProperties,
			}
			suggestions.AdditionalProperties = jsonschema.FalseSchema
		}
	}

	// Use draft-07 for IDE compatibility
	schema.Version = "http://json-schema.org/draft-07/schema#"
	schema.ID = "https://raw.githubusercontent.com/NikitaCOEUR/inlinecomplete/main/schema/inlinecomplete.schema.json"
	schema.Title = "inlinecomplete Configuration"
	schema.Description = "Configuration file for inlinecomplete - inline autocomplete for terminal text inputs"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling schema: %v\n", err)
		os.Exit(1)
	}

	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Schema generated: %s\n", outputPath)
}
