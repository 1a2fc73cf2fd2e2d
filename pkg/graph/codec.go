package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "github.com/matzehuels/dagmatch/pkg/errors"
)

// Graphs are encoded as two-space indented JSON with "nodes" and "edges"
// always present, empty or not. Decoding keeps numbers in node metadata as
// json.Number so integers round-trip exactly.

// WriteGraph encodes g to w.
func WriteGraph(g Graph, w io.Writer) error {
	if g.Nodes == nil {
		g.Nodes = []Node{}
	}
	if g.Edges == nil {
		g.Edges = []Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode graph")
	}
	return nil
}

// MarshalGraph returns the encoding of g. Equal graphs produce equal bytes,
// which the cache relies on for hashing.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadGraph decodes one graph from r. Malformed JSON, and anything but
// whitespace after the graph, is reported with
// [apperrors.ErrCodeInvalidFormat].
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := DecodeJSON(r, &g); err != nil {
		return Graph{}, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode graph")
	}
	return g, nil
}

// DecodeJSON decodes exactly one JSON value from r into v, keeping numbers
// as json.Number. It fails if r holds anything but whitespace after the
// value.
func DecodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	switch _, err := dec.Token(); {
	case err == io.EOF:
		return nil
	case err != nil:
		return fmt.Errorf("unexpected data after JSON value: %w", err)
	default:
		return errors.New("unexpected data after JSON value")
	}
}

// UnmarshalGraph decodes a graph from data.
func UnmarshalGraph(data []byte) (Graph, error) {
	return ReadGraph(bytes.NewReader(data))
}

// ReadGraphFile decodes the graph stored at path. A missing file is
// reported with [apperrors.ErrCodeFileNotFound].
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		code := apperrors.ErrCodeInvalidInput
		if errors.Is(err, fs.ErrNotExist) {
			code = apperrors.ErrCodeFileNotFound
		}
		return Graph{}, apperrors.Wrap(code, err, "open %s", path)
	}
	defer f.Close()
	return ReadGraph(f)
}

// WriteGraphFile writes g to path with mode 0644. The graph is written to
// a temporary file in the same directory and renamed into place, so a
// failed write never leaves a truncated file behind.
func WriteGraphFile(g Graph, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer os.Remove(tmp.Name())

	if err := WriteGraph(g, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "write %s", path)
	}
	return nil
}
