package flow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "month picker", input: "2023-04", want: "Apr 2023"},
		{name: "full date", input: "2019-12-31", want: "Dec 2019"},
		{name: "year only", input: "2010", want: "Jan 2010"},
		{name: "rfc3339", input: "2021-07-01T00:00:00Z", want: "Jul 2021"},
		{name: "already formatted", input: "Feb 2022", want: "Feb 2022"},
		{name: "surrounding space", input: "  2023-04 ", want: "Apr 2023"},
		{name: "blank", input: "   ", want: ""},
		{name: "garbage", input: "last spring", wantErr: true},
		{name: "month out of range", input: "2023-13", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateRange(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		current  bool
		want     string
		warnings int
	}{
		{name: "closed range", start: "2018-01", end: "2020-06", want: "Jan 2018 - Jun 2020"},
		{name: "current", start: "2020-03", current: true, want: "Mar 2020 - Present"},
		{name: "current ignores end", start: "2020-03", end: "2021-01", current: true, want: "Mar 2020 - Present"},
		{name: "no start", current: true, want: "- Present"},
		{name: "no end", start: "2018-01", want: "Jan 2018 -"},
		{name: "nothing", want: ""},
		{name: "bad start", start: "soon", end: "2020-06", want: "- Jun 2020", warnings: 1},
		{name: "both bad", start: "x", end: "y", want: "", warnings: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := DateRange("id-1", tt.start, tt.end, tt.current)
			assert.Equal(t, tt.want, got)
			assert.Len(t, warnings, tt.warnings)
			for _, w := range warnings {
				var dateErr *DateError
				require.True(t, errors.As(w, &dateErr))
				assert.Equal(t, "id-1", dateErr.EntryID)
				assert.Contains(t, w.Error(), "unparseable date")
			}
		})
	}
}
