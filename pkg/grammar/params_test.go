package grammar

import (
	"reflect"
	"testing"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ParamList
		rest string
	}{
		{
			name: "empty",
			in:   "",
			want: nil,
			rest: "",
		},
		{
			name: "single_token_value",
			in:   `; charset=utf-8`,
			want: ParamList{{Name: "charset", Value: "utf-8"}},
		},
		{
			name: "quoted_value_with_escapes",
			in:   `; filename="a \"b\" c.txt"`,
			want: ParamList{{Name: "filename", Value: `a "b" c.txt`}},
		},
		{
			name: "multiple_params",
			in:   `; name="field"; filename="f.txt"`,
			want: ParamList{{Name: "name", Value: "field"}, {Name: "filename", Value: "f.txt"}},
		},
		{
			name: "flag_param_no_value",
			in:   "; boundary",
			want: ParamList{{Name: "boundary"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest := ParseParams(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseParams(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
			if rest != tt.rest {
				t.Errorf("ParseParams(%q) rest = %q, want %q", tt.in, rest, tt.rest)
			}
		})
	}
}

func TestFormatParamsRoundTrip(t *testing.T) {
	want := `; name=field; filename="a b.txt"`
	params, _ := ParseParams(want)
	got := FormatParams(params)
	if got != want {
		t.Errorf("FormatParams(ParseParams(%q)) = %q, want %q", want, got, want)
	}
}
