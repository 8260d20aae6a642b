// Package decoder turns an XML response body into flat records, one per
// matched element. It scans the token stream, so peak memory is bounded by
// a single element regardless of document size.
package decoder

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	apperrors "unity-handler-report/errors"
	"unity-handler-report/models"
)

// Decoder pulls records out of an XML stream. Elements are matched by
// namespace-stripped local name; the upstream API emits namespaced and
// plain documents interchangeably.
type Decoder struct {
	d       *xml.Decoder
	element string
}

// New returns a Decoder that yields one record per element whose local
// name equals element.
func New(r io.Reader, element string) *Decoder {
	return &Decoder{d: xml.NewDecoder(r), element: element}
}

// Next returns the next matching record. It returns io.EOF once the stream
// is exhausted and a DecodeError if the input stops being well-formed XML;
// after either, the decoder is done.
func (d *Decoder) Next() (models.Record, error) {
	for {
		tok, err := d.d.Token()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, &apperrors.DecodeError{Element: d.element, Err: err}
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != d.element {
			continue
		}
		return d.readRecord()
	}
}

// readRecord consumes tokens until the matched element closes, mapping each
// immediate child's local name to its direct text content. Text nested
// deeper than one level is ignored, and a child with no text yields an
// empty-string field.
func (d *Decoder) readRecord() (models.Record, error) {
	rec := models.Record{}
	depth := 0
	nested := false
	var field string
	var text strings.Builder

	for {
		tok, err := d.d.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, &apperrors.DecodeError{Element: d.element, Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				field = t.Name.Local
				text.Reset()
				nested = false
			} else {
				nested = true
			}
		case xml.CharData:
			if depth == 1 && !nested {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 0 {
				return rec, nil
			}
			if depth == 1 {
				rec[field] = text.String()
			}
			depth--
		}
	}
}

// DecodeAll collects every matching record from data. On malformed input it
// returns the records decoded before the failure together with the
// DecodeError; callers log the error and keep the partial result.
func DecodeAll(data []byte, element string) ([]models.Record, error) {
	d := New(bytes.NewReader(data), element)
	var records []models.Record
	for {
		rec, err := d.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
