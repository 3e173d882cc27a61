package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		dateRange string
		team      string
		want      Fragment
		wantOK    bool
	}{
		{
			name:      "closed range with inactive annotation",
			dateRange: "2020-04-13 — 2020-07-02",
			team:      "Team X (Inactive)",
			want: Fragment{
				DateStart: "2020-04-13",
				DateEnd:   "2020-07-02",
				DateRange: "2020-04-13 — 2020-07-02",
				Team:      "Team X",
				Status:    StatusInactive,
			},
			wantOK: true,
		},
		{
			name:      "open range",
			dateRange: "2021-01-10 — Present",
			team:      "Sentinels",
			want: Fragment{
				DateStart: "2021-01-10",
				DateEnd:   Present,
				DateRange: "2021-01-10 — Present",
				Team:      "Sentinels",
				Status:    StatusActive,
			},
			wantOK: true,
		},
		{
			name:      "lowercase present with en dash",
			dateRange: "2022-03-01 – present",
			team:      "Fnatic (Loan)",
			want: Fragment{
				DateStart: "2022-03-01",
				DateEnd:   Present,
				DateRange: "2022-03-01 – present",
				Team:      "Fnatic",
				Status:    StatusLoan,
			},
			wantOK: true,
		},
		{
			name:      "single date is start only",
			dateRange: "2019-05-05",
			team:      "NRG (Stand-in)",
			want: Fragment{
				DateStart: "2019-05-05",
				DateEnd:   "",
				DateRange: "2019-05-05",
				Team:      "NRG",
				Status:    StatusStandIn,
			},
			wantOK: true,
		},
		{
			name:      "no year at all",
			dateRange: "History",
			team:      "Teams",
			want: Fragment{
				DateRange: "History",
				Team:      "Teams",
				Status:    StatusActive,
			},
			wantOK: false,
		},
		{
			name:      "year without iso date",
			dateRange: "2018 — ?",
			team:      "Team Y",
			want: Fragment{
				DateRange: "2018 — ?",
				Team:      "Team Y",
				Status:    StatusActive,
			},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.dateRange, tt.team)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEndDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2020-01-01 - 2020-02-01", "2020-02-01"},
		{"2020-01-01 — 2020-02-01 — 2020-03-01", "2020-03-01"},
		{"2020-01-01", ""},
		{"", ""},
		{"2020-01-01 — PRESENT", Present},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EndDate(tt.in))
		})
	}
}

func TestExtractStatus(t *testing.T) {
	tests := []struct {
		team string
		want Status
	}{
		{"Team", StatusActive},
		{"Team (Inactive)", StatusInactive},
		{"Team (inactive roster)", StatusInactive},
		{"Team (on loan)", StatusLoan},
		{"Team (standin)", StatusStandIn},
		{"Team (Stand-In)", StatusStandIn},
		{"Team (Trial)", StatusTrial},
		{"Team (head coach)", Status("Head Coach")},
		{"Team ( )", StatusActive},
		{"Team (Academy) X", StatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.team, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractStatus(tt.team))
		})
	}
}

func TestCleanTeam(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Team X (Inactive)  ", "Team X"},
		{"Team (A) (Loan)", "Team (A)"},
		{"(Inactive)", ""},
		{"Plain", "Plain"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTeam(tt.in))
		})
	}
}
