package recommend

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/comps-cli/internal/model"
)

// ErrInput marks failures to read or decode the input document. These abort
// the run before any feature processing.
var ErrInput = eris.New("recommend: invalid input")

// LoadDataset reads the input JSON document at path.
func LoadDataset(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(ErrInput, "open %s: %v", path, err)
	}
	defer f.Close()

	ds, err := DecodeDataset(f)
	if err != nil {
		return nil, eris.Wrapf(err, "load %s", path)
	}
	return ds, nil
}

// DecodeDataset decodes a {subject, properties, comps} document. The subject
// must be a JSON object; properties and comps may be absent.
func DecodeDataset(r io.Reader) (*model.Dataset, error) {
	var ds model.Dataset
	dec := json.NewDecoder(r)
	if err := dec.Decode(&ds); err != nil {
		return nil, eris.Wrapf(ErrInput, "decode json: %v", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, eris.Wrap(ErrInput, "decode json: unexpected data after document")
		}
		return nil, eris.Wrapf(ErrInput, "decode json: trailing data: %v", err)
	}
	if !ds.Subject.IsObject() {
		return nil, eris.Wrap(ErrInput, "subject must be a JSON object")
	}
	return &ds, nil
}
