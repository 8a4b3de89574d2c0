package sitrans

import "testing"

func TestStripComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty input", "", ""},
		{"no comments", "<p>Hello</p>", "<p>Hello</p>"},
		{"single comment", "<p>Hi</p><!-- note --><p>Bye</p>", "<p>Hi</p><p>Bye</p>"},
		{"multiline comment", "<div><!-- line one\nline two\nline three --></div>", "<div></div>"},
		{
			"two comments stay minimal",
			"<!-- a --><p>kept</p><!-- b -->",
			"<p>kept</p>",
		},
		{
			"non-greedy between comments",
			"<!-- a -->between<!-- b -->",
			"between",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripComments(tt.input)
			if got != tt.want {
				t.Errorf("StripComments(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
