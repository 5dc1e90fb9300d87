package contract

import "testing"

func FuzzParseThresholdsString(f *testing.F) {
	f.Add("high:6,low:2.5")
	f.Add("")
	f.Add(":::")
	f.Fuzz(func(t *testing.T, s string) {
		got, err := parseThresholdsString(s)
		if err == nil && got == nil {
			t.Fatalf("nil map without error for %q", s)
		}
	})
}
