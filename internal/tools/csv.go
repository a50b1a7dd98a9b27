package tools

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// parseCSVRecipients extracts addresses from the first column of a CSV
// document. Blank rows and blank cells are skipped; further columns are
// ignored.
func parseCSVRecipients(content []byte) ([]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var addresses []string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Join(ErrRecipientsFileUnreadable, err)
		}
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" {
			continue
		}
		addresses = append(addresses, cell)
	}
	return addresses, nil
}
