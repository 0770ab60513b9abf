package moduleconfig

import (
	"io"

	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/beevik/etree"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// toUTF8 converts data to UTF-8. A byte order mark picks the encoding;
// without one, a leading '<' paired with a zero byte is taken as UTF-16.
func toUTF8(data []byte) ([]byte, error) {
	var fallback encoding.Encoding = unicode.UTF8
	if len(data) >= 2 {
		switch {
		case data[0] == '<' && data[1] == 0:
			fallback = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
		case data[0] == 0 && data[1] == '<':
			fallback = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
		}
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(fallback.NewDecoder()), data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode text encoding")
	}
	return out, nil
}

// readDocument parses data into an etree document. The input is already
// UTF-8 by the time the XML parser sees it, so any declared encoding is
// accepted as is.
func readDocument(data []byte) (*etree.Document, error) {
	text, err := toUTF8(data)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if err := doc.ReadFromBytes(text); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "malformed XML")
	}
	if doc.Root() == nil {
		return nil, errors.New(errors.ErrConfigParse, "XML document has no root element")
	}
	return doc, nil
}
