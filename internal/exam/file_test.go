package exam

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Overlay(t *testing.T) {
	doc := `{"num_questions": 100, "marked_questions": 100, "cutoff": 50, "accuracy": 0.6}`

	p, err := Decode(strings.NewReader(doc), Defaults())
	require.NoError(t, err)

	assert.Equal(t, 100, p.NumQuestions)
	assert.Equal(t, 100, p.MarkedQuestions)
	assert.Equal(t, 50.0, p.Cutoff)
	assert.Equal(t, 0.6, p.Accuracy)
	assert.Equal(t, Defaults().CorrectionFactor, p.CorrectionFactor)
	assert.Equal(t, DefaultSimulations, p.NumSimulations)
}

func TestDecode_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `{not json}`},
		{"not an object", `[1, 2, 3]`},
		{"unknown field", `{"questions": 10}`},
		{"wrong type", `{"num_questions": "ten"}`},
		{"fractional count", `{"num_simulations": 10.5}`},
		{"accuracy out of range", `{"accuracy": 1.5}`},
		{"negative correction", `{"correction_factor": -1}`},
		{"zero questions", `{"num_questions": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := Defaults()
			p, err := Decode(strings.NewReader(tt.doc), base)
			require.ErrorIs(t, err, ErrInvalidFile)
			assert.Equal(t, base, p)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exam.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cutoff": 0, "num_simulations": 500}`), 0o644))

	p, err := LoadFile(path, Defaults())
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Cutoff)
	assert.Equal(t, 500, p.NumSimulations)
	require.NoError(t, p.Validate())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"), Defaults())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
