package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"flextime/timesheet"
)

type Result struct {
	RowsRead    int
	RowsMapped  int
	RowsSkipped int
	RowsDropped int
	Records     []timesheet.Record
}

// Load reads one exported spreadsheet and maps its rows to records. Rows that
// fail to parse are counted as dropped rather than aborting the load; the
// caller decides how loudly to report them.
func Load(path, format string) (*Result, error) {
	sourceFormat, err := inferFormat(path, format)
	if err != nil {
		return nil, err
	}
	reader, err := ReaderForFormat(sourceFormat)
	if err != nil {
		return nil, err
	}

	rows, err := reader.Read(path)
	if err != nil {
		return nil, err
	}

	result := &Result{Records: make([]timesheet.Record, 0, len(rows))}
	result.RowsRead = len(rows)
	for _, row := range rows {
		record, ok, mapErr := MapRow(row)
		if mapErr != nil {
			result.RowsDropped++
			continue
		}
		if !ok {
			result.RowsSkipped++
			continue
		}
		result.RowsMapped++
		result.Records = append(result.Records, record)
	}

	return result, nil
}

func inferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xlsx", "xlsm", "xls":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}
