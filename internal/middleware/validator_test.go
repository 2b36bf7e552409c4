package middleware

import (
	"strings"
	"testing"
)

func TestValidateCompoundName(t *testing.T) {
	t.Parallel()

	valid := []string{
		"aspirin",
		"JQ1",
		"beta blocker",
		"(+)-JQ1",
		"2-[4-(2-methylpropyl)phenyl]propanoic acid",
	}
	for _, name := range valid {
		if err := ValidateCompoundName(name); err != nil {
			t.Errorf("ValidateCompoundName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{
		"",
		"   ",
		"\t\n",
		strings.Repeat("x", 129),
		"aspirin\x00",
		"aspirin\nDROP TABLE",
	}
	for _, name := range invalid {
		if err := ValidateCompoundName(name); err == nil {
			t.Errorf("ValidateCompoundName(%q) = nil, want error", name)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"  padded  ", "padded"},
		{"nul\x00byte", "nulbyte"},
		{"keep\ttabs\nand newlines", "keep\ttabs\nand newlines"},
		{"bell\x07gone", "bellgone"},
	}
	for _, c := range cases {
		if got := SanitizeString(c.in); got != c.want {
			t.Errorf("SanitizeString(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidatePage(t *testing.T) {
	t.Parallel()

	if got := ValidatePage(-1); got != 1 {
		t.Errorf("ValidatePage(-1) = %d", got)
	}
	if got := ValidatePage(0); got != 1 {
		t.Errorf("ValidatePage(0) = %d", got)
	}
	if got := ValidatePage(7); got != 7 {
		t.Errorf("ValidatePage(7) = %d", got)
	}
}

func TestValidatePageSize(t *testing.T) {
	t.Parallel()

	if got := ValidatePageSize(0); got != 20 {
		t.Errorf("ValidatePageSize(0) = %d, want default", got)
	}
	if got := ValidatePageSize(250); got != 100 {
		t.Errorf("ValidatePageSize(250) = %d, want max", got)
	}
	if got := ValidatePageSize(35); got != 35 {
		t.Errorf("ValidatePageSize(35) = %d", got)
	}
}
