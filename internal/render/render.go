// Package render encodes collected scenario results for the command line.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/2tvenom/cbor"
	"github.com/boookk/bithumb-practice/internal/config"
	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"
)

var pool bytebufferpool.Pool

// Result is the outcome of one scenario run.
type Result struct {
	Scenario string        `json:"scenario"`
	Values   []interface{} `json:"values"`
	Err      error         `json:"-"`
}

// Encoder writes a Result.
type Encoder interface {
	Encode(w io.Writer, r Result) error
}

// New returns the Encoder of the given format.
func New(format string) (Encoder, error) {
	switch format {
	case config.FormatText, "":
		return textEncoder{}, nil
	case config.FormatJSON:
		return jsonEncoder{}, nil
	case config.FormatCBOR:
		return cborEncoder{}, nil
	default:
		return nil, errors.Errorf("render: unsupported format %q", format)
	}
}

func flush(w io.Writer, bb *bytebufferpool.ByteBuffer) error {
	_, err := bb.WriteTo(w)
	return err
}

type textEncoder struct{}

func (textEncoder) Encode(w io.Writer, r Result) error {
	bb := pool.Get()
	defer pool.Put(bb)
	if r.Err != nil {
		_, _ = fmt.Fprintf(bb, "== %s FAILED: %v\n", r.Scenario, r.Err)
		return flush(w, bb)
	}
	_, _ = fmt.Fprintf(bb, "== %s (%d)\n", r.Scenario, len(r.Values))
	for _, v := range r.Values {
		_, _ = fmt.Fprintf(bb, "%v\n", v)
	}
	return flush(w, bb)
}

type document struct {
	Scenario string        `json:"scenario"`
	Values   []interface{} `json:"values"`
	Error    string        `json:"error,omitempty"`
}

func newDocument(r Result) document {
	d := document{
		Scenario: r.Scenario,
		Values:   r.Values,
	}
	if d.Values == nil {
		d.Values = []interface{}{}
	}
	if r.Err != nil {
		d.Error = r.Err.Error()
	}
	return d
}

type jsonEncoder struct{}

func (jsonEncoder) Encode(w io.Writer, r Result) error {
	bb := pool.Get()
	defer pool.Put(bb)
	if err := json.NewEncoder(bb).Encode(newDocument(r)); err != nil {
		return errors.Wrap(err, "render: encode json")
	}
	return flush(w, bb)
}

type cborEncoder struct{}

// Encode writes one CBOR map per result. Values are normalized through JSON first,
// so records become plain maps of strings and numbers.
func (cborEncoder) Encode(w io.Writer, r Result) error {
	raw, err := json.Marshal(newDocument(r))
	if err != nil {
		return errors.Wrap(err, "render: normalize")
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(err, "render: normalize")
	}
	var buf bytes.Buffer
	encoder := cbor.NewEncoder(&buf)
	if _, err := encoder.Marshal(doc); err != nil {
		return errors.Wrap(err, "render: encode cbor")
	}
	bb := pool.Get()
	defer pool.Put(bb)
	_, _ = bb.Write(buf.Bytes())
	return flush(w, bb)
}
