package domain

import (
	"fmt"
	"strings"

	apperrors "logbook/internal/platform/errors"
)

type Status string

const (
	StatusWorking Status = "working"
	StatusWFH     Status = "wfh"
	StatusLeave   Status = "leave"
)

var Statuses = []Status{StatusWorking, StatusWFH, StatusLeave}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusWorking, StatusWFH, StatusLeave:
		return s, nil
	default:
		return "", apperrors.Invalid("status", fmt.Sprintf("unsupported status %q", raw))
	}
}

func (s Status) Label() string {
	switch s {
	case StatusWorking:
		return "Working"
	case StatusWFH:
		return "Work From Home"
	case StatusLeave:
		return "On Leave"
	default:
		return string(s)
	}
}

// Stacks is the fixed set of task stacks an entry may belong to.
var Stacks = []string{
	"Frontend Development",
	"Backend Development",
	"Mobile Development",
	"DevOps & Infrastructure",
	"UI/UX Design",
	"Quality Assurance",
	"Data Science",
	"Machine Learning",
	"Product Management",
	"Business Analysis",
}

func IsStack(name string) bool {
	for _, s := range Stacks {
		if s == name {
			return true
		}
	}
	return false
}

const (
	LeaveText       = "On Leave"
	DefaultProgress = "No challenges faced"
	DefaultBlockers = "No specific plans"
)

type ActivityEntry struct {
	Stack    string
	Task     string
	Progress string
	Blockers string
	Status   Status
}

// Validate checks the fields required for the entry's status. It never
// touches the network.
func (e ActivityEntry) Validate() error {
	if _, err := ParseStatus(string(e.Status)); err != nil {
		return err
	}
	stack := strings.TrimSpace(e.Stack)
	if stack == "" {
		return apperrors.Invalid("stack", "Please select your task stack")
	}
	if !IsStack(stack) {
		return apperrors.Invalid("stack", fmt.Sprintf("unknown task stack %q", stack))
	}
	if e.Status != StatusLeave && strings.TrimSpace(e.Task) == "" {
		return apperrors.Invalid("task", "Please describe what tasks you completed today")
	}
	return nil
}

// Normalize trims every field and fills the texts the backend expects:
// leave entries carry "On Leave" sentinels, other entries get defaults for
// blank progress and blockers.
func (e ActivityEntry) Normalize() ActivityEntry {
	out := ActivityEntry{
		Stack:    strings.TrimSpace(e.Stack),
		Task:     strings.TrimSpace(e.Task),
		Progress: strings.TrimSpace(e.Progress),
		Blockers: strings.TrimSpace(e.Blockers),
		Status:   e.Status,
	}
	if out.Status == StatusLeave {
		if out.Task == "" {
			out.Task = LeaveText
		}
		out.Progress = LeaveText
		out.Blockers = LeaveText
		return out
	}
	if out.Progress == "" {
		out.Progress = DefaultProgress
	}
	if out.Blockers == "" {
		out.Blockers = DefaultBlockers
	}
	return out
}
