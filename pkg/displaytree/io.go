package displaytree

import (
	"encoding/json"
	"io"
	"os"

	apperrors "github.com/matzehuels/treedisplay/pkg/errors"
)

// ReadJSON decodes a display tree from r.
//
// Structural problems in the children of a node are not reported here; they
// surface from Convert as a *MalformedTreeError. ReadJSON only fails on
// invalid JSON or on fields of the wrong scalar type. It does not close r.
func ReadJSON(r io.Reader) (DisplayTree, error) {
	var t DisplayTree
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return DisplayTree{}, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode tree")
	}
	return t, nil
}

// ReadFile reads a display tree from the JSON file at path.
func ReadFile(path string) (DisplayTree, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return DisplayTree{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return DisplayTree{}, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes a converted node graph to w with indentation.
func WriteJSON(w io.Writer, d Datum) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
