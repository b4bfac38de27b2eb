package schema_test

import (
	"testing"

	"github.com/goliatone/go-formstate/pkg/schema"
)

func TestIssue_Field(t *testing.T) {
	if got := schema.At("email", "bad").Field(); got != "email" {
		t.Fatalf("Field mismatch: got %q", got)
	}
	if got := (schema.Issue{Path: []string{"owner", "email"}, Message: "bad"}).Field(); got != "owner" {
		t.Fatalf("nested Field mismatch: got %q", got)
	}
	if got := schema.FormLevel("bad").Field(); got != "" {
		t.Fatalf("form-level Field should be empty, got %q", got)
	}
}

func TestIssues_Error(t *testing.T) {
	if got := (schema.Issues{}).Error(); got != "" {
		t.Fatalf("empty issues should produce an empty message, got %q", got)
	}

	iss := schema.Issues{
		schema.At("email", "must be provided"),
		schema.FormLevel("something is off"),
	}
	want := "email: must be provided; something is off"
	if got := iss.Error(); got != want {
		t.Fatalf("summary mismatch: want %q, got %q", want, got)
	}

	long := schema.Issues{
		schema.At("a", "one"),
		schema.At("b", "two"),
		schema.At("c", "three"),
		schema.At("d", "four"),
		schema.At("e", "five"),
	}
	want = "a: one; b: two; c: three; ... (total 5)"
	if got := long.Error(); got != want {
		t.Fatalf("truncated summary mismatch: want %q, got %q", want, got)
	}
}
