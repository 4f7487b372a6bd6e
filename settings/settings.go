// Package settings loads project settings for docfix from a YAML file.
//
// A settings file, named [DefaultFile] by default, extends the word lists
// used by [javadoc.Fixer] and sets defaults for file selection:
//
//	properNouns: [Kubernetes, GraalVM]
//	abbreviations: [approx.]
//	exclude: [.git, build, generated]
//	maxDepth: 20
//
// [Find] locates the file by walking up from a directory, [Load] decodes
// it, and [Schema] describes its format as JSON Schema.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/docfix/charset"
	"go.jacobcolvin.com/docfix/javadoc"
)

// DefaultFile is the settings file name searched for by [Find].
const DefaultFile = ".docfix.yaml"

// Sentinel errors returned when loading settings.
var (
	ErrReadSettings    = errors.New("read settings")
	ErrInvalidSettings = errors.New("invalid settings")
)

// Settings are the project settings read from a settings file. Zero values
// leave the built-in defaults in place.
type Settings struct {
	// Encoding is the IANA name of the encoding of all sources.
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty" jsonschema:"IANA name of the encoding of all sources; detected per file when unset"`

	ProperNouns   []string `json:"properNouns,omitempty"   yaml:"properNouns,omitempty"   jsonschema:"words that keep their capital letter at the start of tag text"`
	Names         []string `json:"names,omitempty"         yaml:"names,omitempty"         jsonschema:"first names added to the built-in name list"`
	Abbreviations []string `json:"abbreviations,omitempty" yaml:"abbreviations,omitempty" jsonschema:"abbreviations that keep their trailing period, such as approx."`
	Extensions    []string `json:"extensions,omitempty"    yaml:"extensions,omitempty"    jsonschema:"file extensions selected when walking directories"`
	Exclude       []string `json:"exclude,omitempty"       yaml:"exclude,omitempty"       jsonschema:"glob patterns of file and directory names to skip"`

	MaxDepth int `json:"maxDepth,omitempty" yaml:"maxDepth,omitempty" jsonschema:"maximum directory depth to walk"`
	Jobs     int `json:"jobs,omitempty"     yaml:"jobs,omitempty"     jsonschema:"number of files processed in parallel"`
}

// Load reads and validates the settings file at path. Unknown fields are
// rejected.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSettings, err)
	}

	return Parse(data)
}

// Parse decodes and validates settings from YAML.
func Parse(data []byte) (*Settings, error) {
	s := &Settings{}

	err := yaml.UnmarshalWithOptions(data, s, yaml.DisallowUnknownField())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	err = s.Validate()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Validate reports the first invalid value in s.
func (s *Settings) Validate() error {
	if s.MaxDepth < 0 {
		return fmt.Errorf("%w: maxDepth must not be negative, got %d", ErrInvalidSettings, s.MaxDepth)
	}

	if s.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalidSettings, s.Jobs)
	}

	for _, ext := range s.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: extension %q must start with a dot", ErrInvalidSettings, ext)
		}
	}

	for _, pattern := range s.Exclude {
		_, err := filepath.Match(pattern, "")
		if err != nil {
			return fmt.Errorf("%w: exclude pattern %q: %w", ErrInvalidSettings, pattern, err)
		}
	}

	if s.Encoding != "" {
		_, err := charset.Lookup(s.Encoding)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
		}
	}

	return nil
}

// Options returns the [javadoc.Option] values that apply the word lists in s.
func (s *Settings) Options() []javadoc.Option {
	var opts []javadoc.Option

	if len(s.ProperNouns) > 0 {
		opts = append(opts, javadoc.WithProperNouns(s.ProperNouns...))
	}

	if len(s.Names) > 0 {
		opts = append(opts, javadoc.WithNames(s.Names...))
	}

	if len(s.Abbreviations) > 0 {
		opts = append(opts, javadoc.WithAbbreviations(s.Abbreviations...))
	}

	return opts
}

// Find returns the path of the nearest [DefaultFile] in dir or one of its
// parents. It returns false when there is none.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		path := filepath.Join(dir, DefaultFile)

		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}

		dir = parent
	}
}

// Schema returns the JSON Schema of the settings file.
func Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[Settings](nil)
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}

	schema.Schema = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = "docfix settings"
	schema.Description = "Project settings for docfix, read from " + DefaultFile + "."

	return schema, nil
}
