package mood

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "happy", want: Happy, ok: true},
		{in: "  Calm ", want: Calm, ok: true},
		{in: "triste", want: Sad, ok: true},
		{in: "ANSIOSO", want: Anxious, ok: true},
		{in: "furious", ok: false},
		{in: "", ok: false},
	}
	for _, tc := range cases {
		got, ok := Normalize(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Normalize(%q)=(%q,%v), want (%q,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
