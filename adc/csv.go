// SPDX-License-Identifier: EPL-2.0

package adc

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// CSVWriter writes one row per record: the time in seconds with millisecond
// precision followed by every channel value. Rows are flushed as they are
// written so the file can be followed while logging runs.
type CSVWriter struct {
	w   *csv.Writer
	row []string
}

// NewCSVWriter writes records to w with no header row.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteRecord writes and flushes one row.
func (c *CSVWriter) WriteRecord(r Record) error {
	c.row = append(c.row[:0], strconv.FormatFloat(r.Time.Seconds(), 'f', 3, 64))
	for _, v := range r.Values {
		c.row = append(c.row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := c.w.Write(c.row); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}

// FileName is the log file name for a run started at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("log_adcs_%s.csv", t.Format("2006-01-02_15-04-05"))
}
