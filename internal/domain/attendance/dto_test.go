package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCoord(t *testing.T) {
	cases := []struct {
		name  string
		raw   any
		want  CoordStatus
		value string
	}{
		{"nil", nil, CoordAbsent, ""},
		{"number", -0.1806532, CoordPresent, "-0.1806532"},
		{"numeric string", "-78.4678382", CoordPresent, "-78.4678382"},
		{"padded numeric string", "  -78.46  ", CoordPresent, "-78.46"},
		{"empty string", "", CoordAbsent, ""},
		{"null sentinel", "null", CoordAbsent, ""},
		{"none sentinel", "None", CoordAbsent, ""},
		{"nan sentinel", "NaN", CoordAbsent, ""},
		{"garbage string", "here", CoordInvalid, ""},
		{"bool", true, CoordInvalid, ""},
		{"object", map[string]any{}, CoordInvalid, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ParseCoord(c.raw)
			assert.Equal(t, c.want, got.Status)
			if c.want == CoordPresent {
				assert.Equal(t, c.value, got.Value.String())
			}
		})
	}
}
