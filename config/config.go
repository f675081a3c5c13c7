// Package config loads the hyperparameter file (spec §6): a YAML keyed
// text document with the keys name, dim, ffn_dim, layer, head, kv_head,
// vocab_size, seq_len. Following the teacher's envconfig texture (one
// small function per concern, errors wrapped with context), loading and
// validation are kept in separate, easily testable steps.
package config

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"llamago/apperror"
	"llamago/model"
)

// fileFormat mirrors the YAML document's keys exactly as spec §6 names
// them (snake_case), decoded separately from model.HyperParams so the
// wire format and the in-memory type can evolve independently.
type fileFormat struct {
	Name      string `yaml:"name"`
	Dim       int    `yaml:"dim"`
	FFNDim    int    `yaml:"ffn_dim"`
	Layer     int    `yaml:"layer"`
	Head      int    `yaml:"head"`
	KVHead    int    `yaml:"kv_head"`
	VocabSize int    `yaml:"vocab_size"`
	SeqLen    int    `yaml:"seq_len"`
}

// Load reads and validates a hyperparameter file at path.
func Load(path string) (model.HyperParams, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.HyperParams{}, apperror.Configurationf(err, "opening hyperparameter file %q", path)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads and validates a hyperparameter document from r.
func Parse(r io.Reader) (model.HyperParams, error) {
	var ff fileFormat
	if err := yaml.NewDecoder(r).Decode(&ff); err != nil {
		return model.HyperParams{}, apperror.Configurationf(err, "parsing hyperparameter file")
	}

	hp := model.HyperParams{
		Name:      ff.Name,
		Dim:       ff.Dim,
		FFNDim:    ff.FFNDim,
		Layer:     ff.Layer,
		Head:      ff.Head,
		KVHead:    ff.KVHead,
		VocabSize: ff.VocabSize,
		SeqLen:    ff.SeqLen,
	}

	if err := hp.Validate(); err != nil {
		return model.HyperParams{}, err
	}
	return hp, nil
}
