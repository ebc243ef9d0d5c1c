package render

import (
	"bytes"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// ExtractPages returns the plain text of each page of a PDF.
func ExtractPages(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, errors.New("empty pdf data")
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, "open pdf")
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, errors.Wrapf(err, "read page %d", i)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
