package langtext

import (
	"reflect"
	"testing"
)

func TestSegment(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		descr string
		want  []string
	}{
		{
			name:  "plain comma list",
			descr: "French, English, Creole",
			want:  []string{"French", "English", "Creole"},
		},
		{
			name:  "comma inside parentheses does not split",
			descr: "a (b, c), d",
			want:  []string{"a (b, c)", "d"},
		},
		{
			name:  "qualifiers stay attached",
			descr: "Spanish (official) 72%, Quechua (official) 13%",
			want:  []string{"Spanish (official) 72%", "Quechua (official) 13%"},
		},
		{
			name:  "single entry without separators",
			descr: "Portuguese",
			want:  []string{"Portuguese"},
		},
		{
			name:  "unterminated parenthesis keeps remainder",
			descr: "a (b, c",
			want:  []string{"a (b, c"},
		},
		{
			name:  "nested material after close paren",
			descr: "Greek (official) 99% (one est.), other 1%",
			want:  []string{"Greek (official) 99% (one est.)", "other 1%"},
		},
		{
			name:  "description ends at close parenthesis",
			descr: "Burmese (official)",
			want:  []string{"Burmese (official)"},
		},
		{
			name:  "final entry ends at close parenthesis",
			descr: "French (official) 20%, Creole (official)",
			want:  []string{"French (official) 20%", "Creole (official)"},
		},
		{
			name:  "entries are trimmed",
			descr: " French ,  English ",
			want:  []string{"French", "English"},
		},
		{
			name:  "empty description",
			descr: "",
			want:  nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Segment(tc.descr)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Segment(%q) = %#v, want %#v", tc.descr, got, tc.want)
			}
		})
	}
}
