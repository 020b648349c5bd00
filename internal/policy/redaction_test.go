package policy

import (
	"strings"
	"testing"
)

func TestRedactPII(t *testing.T) {
	input := "Email me at sam@example.com or +1 (555) 123-9876 and use 4242 4242 4242 4242."
	out, changed := RedactPII(input)
	if !changed {
		t.Fatalf("changed = false, want true")
	}
	for _, marker := range []string{"[REDACTED_EMAIL]", "[REDACTED_PHONE]", "[REDACTED_CARD]"} {
		if !strings.Contains(out, marker) {
			t.Fatalf("output missing marker %q: %q", marker, out)
		}
	}
}

func TestRedactPIISSNAndIBAN(t *testing.T) {
	out, changed := RedactPII("My SSN is 123-45-6789, pay to DE89 3704 0044 0532 0130 00")
	if !changed {
		t.Fatalf("changed = false, want true")
	}
	if !strings.Contains(out, "[REDACTED_SSN]") {
		t.Fatalf("output missing SSN marker: %q", out)
	}
	if !strings.Contains(out, "[REDACTED_IBAN]") {
		t.Fatalf("output missing IBAN marker: %q", out)
	}
	if strings.Contains(out, "6789") || strings.Contains(out, "0130") {
		t.Fatalf("output still contains raw digits: %q", out)
	}
}

func TestRedactPIILeavesLegalTextAlone(t *testing.T) {
	in := "Can you review this contract for me? Clause 12 says 30 days notice."
	out, changed := RedactPII(in)
	if changed || out != in {
		t.Fatalf("RedactPII() = (%q, %v), want unchanged", out, changed)
	}
}
