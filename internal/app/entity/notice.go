package entity

import "time"

type ToastSeverity string

const (
	ToastSuccess ToastSeverity = `success`
	ToastError   ToastSeverity = `error`
	ToastWarning ToastSeverity = `warning`
	ToastInfo    ToastSeverity = `info`
)

// Toast is the single active notification slot. A zero Duration keeps the
// toast visible until it is dismissed manually.
type Toast struct {
	Visible  bool
	Severity ToastSeverity
	Title    string
	Message  string
	Duration time.Duration
}
