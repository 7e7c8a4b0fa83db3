package cmd

import "testing"

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "empty token", token: "", want: "<unset>"},
		{name: "short token fully masked", token: "abc", want: "***"},
		{name: "four characters fully masked", token: "abcd", want: "****"},
		{name: "long token keeps last four", token: "1971800d4d82861d8f2c1651fea4d212", want: "****************************d212"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskToken(tt.token); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDisplayValue(t *testing.T) {
	if got := displayValue(""); got != "<unset>" {
		t.Fatalf("expected placeholder for empty value, got %q", got)
	}
	if got := displayValue("424242"); got != "424242" {
		t.Fatalf("expected value to pass through, got %q", got)
	}
}
