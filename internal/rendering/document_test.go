package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		want     string
	}{
		{name: "simple", fullName: "Jane Doe", want: "Jane_Doe_Resume.pdf"},
		{name: "whitespace runs", fullName: "Jane \t  Q.\nDoe", want: "Jane_Q._Doe_Resume.pdf"},
		{name: "surrounding space", fullName: "  Jane  ", want: "Jane_Resume.pdf"},
		{name: "blank", fullName: "", want: "Resume_Resume.pdf"},
		{name: "only spaces", fullName: "   ", want: "Resume_Resume.pdf"},
		{name: "path separators", fullName: "../etc/passwd", want: "..etcpasswd_Resume.pdf"},
		{name: "unicode", fullName: "Zoë Müller", want: "Zoë_Müller_Resume.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.fullName))
		})
	}
}
