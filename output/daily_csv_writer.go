package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"flextime/overtime"
)

func writeDailyCSV(path string, buckets []overtime.DayBucket) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(dailyHeaders()); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, bucket := range buckets {
		if err := writer.Write(dailyRow(bucket)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
