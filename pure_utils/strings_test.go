package pure_utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBrandName(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{
			name: "plain name",
			args: "Acme",
			want: "acme",
		},
		{
			name: "article and legal suffix",
			args: "The Acme Pvt Ltd",
			want: "acme",
		},
		{
			name: "private limited spelled out",
			args: "Glow Beauty Private Limited",
			want: "glow beauty",
		},
		{
			name: "lifecycle suffix",
			args: "Acme - Current",
			want: "acme",
		},
		{
			name: "punctuation dropped without doubling spaces",
			args: "Glow & Co",
			want: "glow co",
		},
		{
			name: "surrounding whitespace",
			args: "  Acme   Retail  ",
			want: "acme retail",
		},
		{
			name: "digits kept",
			args: "Studio 54 LLP",
			want: "studio 54",
		},
		{
			name: "empty",
			args: "",
			want: "",
		},
		{
			name: "only noise",
			args: "Pvt Ltd",
			want: "",
		},
		{
			name: "removal splices a noise term back together",
			args: "lltdtd",
			want: "",
		},
		{
			name: "punctuation removal splices a noise term together",
			args: "l-td",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBrandName(tt.args))
		})
	}
}

func TestNormalizeBrandNameIsIdempotent(t *testing.T) {
	inputs := []string{
		"The Acme Pvt Ltd",
		"Glow & Co. LLP - Current",
		"Studio 54 Export",
		"acme retail",
		"lltdtd",
		"l-td",
		"inincnc",
		"Pvt Pvt Ltd Ltd",
	}
	for _, input := range inputs {
		once := NormalizeBrandName(input)
		assert.Equal(t, once, NormalizeBrandName(once), "input %q", input)
	}
}
