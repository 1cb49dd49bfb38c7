package runlog

import (
	"time"
)

type Run struct {
	ID         string
	Profile    string
	StartedAt  time.Time
	FinishedAt *time.Time
	Status     string // RUNNING, COMPLETED, FAILED
	StepsOK    int
	StepsTotal int
	Error      string
}

type Step struct {
	RunID      string
	Position   int
	Phase      string
	Name       string
	Status     string
	DurationMS int64
	Error      string
}
