package exam

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidFile is returned when a parameters file is not valid JSON or
// does not conform to the parameters schema.
var ErrInvalidFile = errors.New("invalid parameters file")

//go:embed params.schema.json
var schemaJSON []byte

const schemaURL = "schema://chute/params.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// fileParams mirrors Params with optional fields so a file can override
// only some of the base values.
type fileParams struct {
	NumQuestions     *int     `json:"num_questions"`
	MarkedQuestions  *int     `json:"marked_questions"`
	Cutoff           *float64 `json:"cutoff"`
	Accuracy         *float64 `json:"accuracy"`
	CorrectionFactor *float64 `json:"correction_factor"`
	NumSimulations   *int     `json:"num_simulations"`
}

// LoadFile reads a JSON parameters file and overlays it onto base.
func LoadFile(path string, base Params) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, fmt.Errorf("open parameters file: %w", err)
	}
	defer f.Close()

	p, err := Decode(f, base)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Decode validates a JSON parameters document against the embedded schema
// and overlays the fields it sets onto base. Cross-field rules such as
// marked <= questions are left to Params.Validate.
func Decode(r io.Reader, base Params) (Params, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return base, fmt.Errorf("read parameters: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return base, fmt.Errorf("%w: invalid JSON: %v", ErrInvalidFile, err)
	}

	schema, err := paramsSchema()
	if err != nil {
		return base, err
	}
	if err := schema.Validate(parsed); err != nil {
		return base, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	var fp fileParams
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&fp); err != nil {
		return base, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	p := base
	if fp.NumQuestions != nil {
		p.NumQuestions = *fp.NumQuestions
	}
	if fp.MarkedQuestions != nil {
		p.MarkedQuestions = *fp.MarkedQuestions
	}
	if fp.Cutoff != nil {
		p.Cutoff = *fp.Cutoff
	}
	if fp.Accuracy != nil {
		p.Accuracy = *fp.Accuracy
	}
	if fp.CorrectionFactor != nil {
		p.CorrectionFactor = *fp.CorrectionFactor
	}
	if fp.NumSimulations != nil {
		p.NumSimulations = *fp.NumSimulations
	}
	return p, nil
}

// paramsSchema compiles the embedded schema once.
func paramsSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(schemaJSON, &doc); err != nil {
			schemaErr = fmt.Errorf("parse parameters schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile parameters schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}
