package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alwitt/credvault/models"
)

const (
	columnName     = "name"
	columnURL      = "url"
	columnUsername = "username"
	columnPassword = "password"
	// columnEmail legacy {name, email, password} schema column
	columnEmail = "email"
)

const utf8BOM = "\ufeff"

// parsedRow one CSV data row keyed by the header names
type parsedRow struct {
	// Line line number of the row in the file
	Line int
	// Values field values by header name. Absent columns are missing.
	Values map[string]string
}

// parseCSV parse CSV text, using the first row as the header
//
// Blank lines are skipped. Rows with fewer or more fields than the header are
// kept; fields beyond the header are dropped.
func parseCSV(content io.Reader) ([]parsedRow, error) {
	reader := csv.NewReader(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read CSV header [%w]", err)
	}
	for idx, column := range header {
		if idx == 0 {
			column = strings.TrimPrefix(column, utf8BOM)
		}
		header[idx] = strings.TrimSpace(column)
	}

	rows := []parsedRow{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV content [%w]", err)
		}
		line, _ := reader.FieldPos(0)

		values := make(map[string]string, len(header))
		for idx, value := range record {
			if idx >= len(header) {
				break
			}
			values[header[idx]] = value
		}
		rows = append(rows, parsedRow{Line: line, Values: values})
	}

	return rows, nil
}

// toCredentialFields map a parsed row onto the canonical credential schema
func (r parsedRow) toCredentialFields() models.CredentialFields {
	username, ok := r.Values[columnUsername]
	if !ok {
		username = r.Values[columnEmail]
	}
	return models.CredentialFields{
		Name:     r.Values[columnName],
		URL:      r.Values[columnURL],
		Username: username,
		Password: r.Values[columnPassword],
	}
}
