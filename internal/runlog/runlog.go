// Package runlog records every report run in logs/report-log.csv.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one report run.
type Entry struct {
	RunID    uuid.UUID
	Started  time.Time
	Report   string
	Params   string
	Rows     int
	Duration time.Duration
	Err      string
}

// NewEntry starts an entry with a fresh run ID.
func NewEntry(report, params string, started time.Time) Entry {
	return Entry{RunID: uuid.New(), Started: started, Report: report, Params: params}
}

// Header is the CSV header for report-log.csv.
const Header = "run_id,started,report,params,rows,duration_ms,error"

const (
	numFields   = 7
	logDir      = "logs"
	logFile     = "logs/report-log.csv"
	colRunID    = 0
	colStarted  = 1
	colReport   = 2
	colParams   = 3
	colRows     = 4
	colDuration = 5
	colErr      = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colRunID] = e.RunID.String()
	row[colStarted] = e.Started.Format(time.RFC3339)
	row[colReport] = e.Report
	row[colParams] = e.Params
	row[colRows] = strconv.Itoa(e.Rows)
	row[colDuration] = strconv.FormatInt(e.Duration.Milliseconds(), 10)
	row[colErr] = e.Err
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	runID, err := uuid.Parse(record[colRunID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing run_id %q: %w", record[colRunID], err)
	}
	started, err := time.Parse(time.RFC3339, record[colStarted])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing started %q: %w", record[colStarted], err)
	}
	rows, err := strconv.Atoi(record[colRows])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing rows %q: %w", record[colRows], err)
	}
	ms, err := strconv.ParseInt(record[colDuration], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing duration_ms %q: %w", record[colDuration], err)
	}

	return Entry{
		RunID:    runID,
		Started:  started,
		Report:   record[colReport],
		Params:   record[colParams],
		Rows:     rows,
		Duration: time.Duration(ms) * time.Millisecond,
		Err:      record[colErr],
	}, nil
}

// Append writes entries to <repoRoot>/logs/report-log.csv, creating the
// file and header if needed.
func Append(repoRoot string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Join(repoRoot, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(repoRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening report log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	return cw.Error()
}

// Read returns all entries from <repoRoot>/logs/report-log.csv, or nil if
// the file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(repoRoot, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening report log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading report log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
