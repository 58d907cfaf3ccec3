package grammar

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "simple", in: "a, b,c", want: []string{"a", "b", "c"}},
		{name: "empty_elements", in: "a,,b,", want: []string{"a", "b"}},
		{name: "quoted_comma", in: `a; p="x,y", b`, want: []string{`a; p="x,y"`, "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitList(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseWeightedList(t *testing.T) {
	items := ParseWeightedList("text/html;q=0.9, application/json, text/plain;q=0.1")
	want := []WeightedItem{
		{Value: "text/html", Q: 0.9},
		{Value: "application/json", Q: 1.0},
		{Value: "text/plain", Q: 0.1},
	}
	for i := range want {
		want[i].Params = nil
	}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("ParseWeightedList() = %#v, want %#v", items, want)
	}

	SortByWeight(items)
	if items[0].Value != "application/json" || items[1].Value != "text/html" || items[2].Value != "text/plain" {
		t.Errorf("SortByWeight() order = %v", items)
	}
}
