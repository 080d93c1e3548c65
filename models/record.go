package models

import "math"

// Status is the terminal classification of a single URL attempt.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Record is the outcome of one URL attempt. One record per URL is
// appended to the ledger; records are never mutated once persisted.
type Record struct {
	URL            string  `json:"url"`
	Status         Status  `json:"status"`
	Error          string  `json:"error"`
	HasChart       bool    `json:"has_chart"`
	HasLabel       bool    `json:"has_label"`
	LabelText      string  `json:"label_text"`
	ImagePath      string  `json:"image_path"`
	HTMLPath       string  `json:"html_path"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// NewRecord returns a fresh success record for the given URL. Fields are
// filled in as the capture progresses.
func NewRecord(url string) *Record {
	return &Record{URL: url, Status: StatusOK}
}

// NewErrorRecord returns a synthetic failure record. Used by the batch
// driver when the capture engine fails in a way it did not anticipate.
func NewErrorRecord(url, msg string) *Record {
	return &Record{URL: url, Status: StatusError, Error: msg}
}

// Fail marks the record as a terminal failure with the given detail.
func (r *Record) Fail(msg string) {
	r.Status = StatusError
	r.AppendError(msg)
}

// AppendError accumulates a non-fatal failure detail without touching the
// status. Multiple details are joined with " | ".
func (r *Record) AppendError(msg string) {
	if r.Error == "" {
		r.Error = msg
		return
	}
	r.Error += " | " + msg
}

// SetElapsed records the wall-clock duration of the attempt, rounded to
// two decimal places.
func (r *Record) SetElapsed(seconds float64) {
	r.ElapsedSeconds = math.Round(seconds*100) / 100
}
