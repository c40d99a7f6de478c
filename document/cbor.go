package document

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// Maps decode as Mapping so CBOR documents share the tree shape of the text
// formats; encoding is Core Deterministic (sorted keys, shortest integers).
var (
	cborDecMode cbor.DecMode
	cborEncMode cbor.EncMode
)

func init() {
	var err error
	cborDecMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(Mapping(nil)),
	}.DecMode()
	if err != nil {
		panic("document: CBOR decoder initialization failed: " + err.Error())
	}
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("document: CBOR encoder initialization failed: " + err.Error())
	}
}

// CBORParser parses a single CBOR data item whose top level is a map.
func CBORParser() Parser {
	return ParserFunc(parseCBOR)
}

func parseCBOR(r io.Reader) (*Document, error) {
	decoder := cborDecMode.NewDecoder(r)

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{Root: Mapping{}}, nil
		}
		return nil, fmt.Errorf("document: decode cbor: %w", err)
	}
	var extra any
	if err := decoder.Decode(&extra); err == nil {
		return nil, ErrMultipleDocuments
	}

	root, err := rootMapping(raw)
	if err != nil {
		return nil, err
	}
	return &Document{Root: root}, nil
}
