package domain_test

import (
	"errors"
	"testing"

	"logbook/internal/modules/worklog/domain"
	apperrors "logbook/internal/platform/errors"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()
	cases := map[string]domain.Status{
		"working": domain.StatusWorking,
		" WFH ":   domain.StatusWFH,
		"Leave":   domain.StatusLeave,
	}
	for raw, want := range cases {
		got, err := domain.ParseStatus(raw)
		if err != nil || got != want {
			t.Fatalf("ParseStatus(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := domain.ParseStatus("holiday"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown status, got %v", err)
	}
}

func TestStacksAreFixed(t *testing.T) {
	t.Parallel()
	if len(domain.Stacks) != 10 {
		t.Fatalf("expected 10 stacks, got %d", len(domain.Stacks))
	}
	if !domain.IsStack("DevOps & Infrastructure") || domain.IsStack("devops & infrastructure") {
		t.Fatalf("stack match must be exact")
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   domain.ActivityEntry
		want domain.ActivityEntry
	}{
		{
			name: "working defaults",
			in:   domain.ActivityEntry{Stack: " Data Science ", Task: " trained model ", Status: domain.StatusWorking},
			want: domain.ActivityEntry{Stack: "Data Science", Task: "trained model", Progress: "No challenges faced", Blockers: "No specific plans", Status: domain.StatusWorking},
		},
		{
			name: "wfh keeps given text",
			in:   domain.ActivityEntry{Stack: "Data Science", Task: "t", Progress: "slow vpn", Blockers: "ship it", Status: domain.StatusWFH},
			want: domain.ActivityEntry{Stack: "Data Science", Task: "t", Progress: "slow vpn", Blockers: "ship it", Status: domain.StatusWFH},
		},
		{
			name: "leave without task",
			in:   domain.ActivityEntry{Stack: "Data Science", Progress: "x", Blockers: "y", Status: domain.StatusLeave},
			want: domain.ActivityEntry{Stack: "Data Science", Task: "On Leave", Progress: "On Leave", Blockers: "On Leave", Status: domain.StatusLeave},
		},
		{
			name: "leave keeps task text",
			in:   domain.ActivityEntry{Stack: "Data Science", Task: "sick day", Status: domain.StatusLeave},
			want: domain.ActivityEntry{Stack: "Data Science", Task: "sick day", Progress: "On Leave", Blockers: "On Leave", Status: domain.StatusLeave},
		},
	}
	for _, tc := range cases {
		if got := tc.in.Normalize(); got != tc.want {
			t.Fatalf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestValidateLeaveIgnoresFreeText(t *testing.T) {
	t.Parallel()
	for _, task := range []string{"", "   ", "anything"} {
		e := domain.ActivityEntry{Stack: "Machine Learning", Task: task, Status: domain.StatusLeave}
		if err := e.Validate(); err != nil {
			t.Fatalf("leave with task %q should validate: %v", task, err)
		}
	}
}
