package form_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/rules"
	"github.com/goliatone/go-formstate/pkg/schema"
)

type stubSchema struct {
	fields   []string
	validate func(values map[string]string) schema.Issues
}

func (s stubSchema) Fields() []string { return s.fields }

func (s stubSchema) Validate(values map[string]string) schema.Issues {
	if s.validate == nil {
		return nil
	}
	return s.validate(values)
}

type recordingLogger struct {
	debug []string
	warn  []string
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.debug = append(l.debug, msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.warn = append(l.warn, msg) }

func newController(t *testing.T, s schema.Schema, options ...form.Option) *form.Controller {
	t.Helper()
	options = append([]form.Option{form.WithLogger(form.NopLogger{})}, options...)
	ctrl, err := form.New(s, options...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return ctrl
}

func TestNew_InitialState(t *testing.T) {
	ctrl := newController(t, stubSchema{fields: []string{"username", "email", "password"}})

	wantValues := map[string]string{"username": "", "email": "", "password": ""}
	if diff := cmp.Diff(wantValues, ctrl.Values()); diff != "" {
		t.Fatalf("initial values mismatch (-want +got):\n%s", diff)
	}
	if got := ctrl.Errors(); len(got) != 0 {
		t.Fatalf("initial errors should be empty, got %v", got)
	}
	if diff := cmp.Diff([]string{"username", "email", "password"}, ctrl.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_RejectsBadSchemas(t *testing.T) {
	if _, err := form.New(nil); err == nil {
		t.Fatal("expected error for nil schema")
	}
	if _, err := form.New(stubSchema{fields: []string{"a", "a"}}); err == nil {
		t.Fatal("expected error for duplicate field names")
	}
	if _, err := form.New(stubSchema{fields: []string{""}}); err == nil {
		t.Fatal("expected error for empty field name")
	}
}

func TestHandleChange_KnownField(t *testing.T) {
	ctrl := newController(t, stubSchema{fields: []string{"email", "name"}})

	ctrl.HandleChange(form.ChangeEvent{Name: "email", Value: "kim@example.com"})

	want := map[string]string{"email": "kim@example.com", "name": ""}
	if diff := cmp.Diff(want, ctrl.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleChange_UnknownFieldIgnored(t *testing.T) {
	logger := &recordingLogger{}
	ctrl, err := form.New(stubSchema{fields: []string{"email"}}, form.WithLogger(logger))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctrl.HandleChange(form.ChangeEvent{Name: "nickname", Value: "kim"})

	want := map[string]string{"email": ""}
	if diff := cmp.Diff(want, ctrl.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(logger.debug) != 1 {
		t.Fatalf("expected one diagnostic, got %v", logger.debug)
	}
}

func TestHandleChange_AppliesSanitizer(t *testing.T) {
	ctrl := newController(t, stubSchema{fields: []string{"bio"}},
		form.WithSanitizer(strings.TrimSpace),
		form.WithSanitizer(strings.ToLower),
	)

	ctrl.HandleChange(form.ChangeEvent{Name: "bio", Value: "  Hello World  "})

	if got := ctrl.Value("bio"); got != "hello world" {
		t.Fatalf("sanitized value mismatch: got %q", got)
	}
}

func TestHandleForm(t *testing.T) {
	ctrl := newController(t, stubSchema{fields: []string{"email", "name"}})

	ctrl.HandleForm(url.Values{
		"email":   {"kim@example.com", "second-ignored"},
		"name":    {"Kim"},
		"unknown": {"dropped"},
	})

	want := map[string]string{"email": "kim@example.com", "name": "Kim"}
	if diff := cmp.Diff(want, ctrl.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Success(t *testing.T) {
	ctrl := newController(t, stubSchema{fields: []string{"email"}})

	if !ctrl.Validate() {
		t.Fatal("expected Validate to return true")
	}
	if got := ctrl.Errors(); len(got) != 0 {
		t.Fatalf("errors should stay empty after a valid pass, got %v", got)
	}
}

func TestValidate_SingleFailure(t *testing.T) {
	s := stubSchema{
		fields: []string{"email", "name"},
		validate: func(values map[string]string) schema.Issues {
			if !strings.Contains(values["email"], "@") {
				return schema.Issues{schema.At("email", "must be a valid email address")}
			}
			return nil
		},
	}
	ctrl := newController(t, s)
	ctrl.HandleChange(form.ChangeEvent{Name: "email", Value: "not-an-email"})

	if ctrl.Validate() {
		t.Fatal("expected Validate to return false")
	}
	want := map[string]string{"email": "must be a valid email address"}
	if diff := cmp.Diff(want, ctrl.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_ClearsStaleErrors(t *testing.T) {
	s := stubSchema{
		fields: []string{"email"},
		validate: func(values map[string]string) schema.Issues {
			if values["email"] == "" {
				return schema.Issues{schema.At("email", "must be provided")}
			}
			return nil
		},
	}
	ctrl := newController(t, s)

	if ctrl.Validate() {
		t.Fatal("first pass should fail")
	}
	if ctrl.FieldError("email") == "" {
		t.Fatal("first pass should record an email error")
	}

	ctrl.HandleChange(form.ChangeEvent{Name: "email", Value: "kim@example.com"})
	if !ctrl.Validate() {
		t.Fatal("second pass should succeed")
	}
	if got := ctrl.Errors(); len(got) != 0 {
		t.Fatalf("stale errors survived the second pass: %v", got)
	}
}

func TestValidate_LastIssueWinsPerField(t *testing.T) {
	s := stubSchema{
		fields: []string{"email"},
		validate: func(map[string]string) schema.Issues {
			return schema.Issues{
				schema.At("email", "first message"),
				schema.At("email", "second message"),
			}
		},
	}
	ctrl := newController(t, s)

	ctrl.Validate()

	want := map[string]string{"email": "second message"}
	if diff := cmp.Diff(want, ctrl.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_DropsPathlessAndUnknownIssues(t *testing.T) {
	logger := &recordingLogger{}
	s := stubSchema{
		fields: []string{"email"},
		validate: func(map[string]string) schema.Issues {
			return schema.Issues{
				schema.FormLevel("passwords do not line up"),
				schema.At("ghost", "no such field"),
			}
		},
	}
	ctrl, err := form.New(s, form.WithLogger(logger))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if ctrl.Validate() {
		t.Fatal("expected Validate to return false")
	}
	if got := ctrl.Errors(); len(got) != 0 {
		t.Fatalf("dropped issues must not populate errors, got %v", got)
	}
	if len(logger.warn) != 2 {
		t.Fatalf("expected two diagnostics, got %v", logger.warn)
	}
}

func TestValidate_CrossFieldRule(t *testing.T) {
	fieldSet, err := rules.NewFieldSet(
		rules.Field{Name: "password", Rules: []rules.Rule{rules.Required()}},
		rules.Field{Name: "confirmPassword", Rules: []rules.Rule{rules.Required()}},
	)
	if err != nil {
		t.Fatalf("NewFieldSet returned error: %v", err)
	}
	fieldSet.WithFormRules(rules.FieldsMatch("password", "confirmPassword", "must match Password"))

	ctrl := newController(t, fieldSet)
	ctrl.HandleChange(form.ChangeEvent{Name: "password", Value: "hunter22"})
	ctrl.HandleChange(form.ChangeEvent{Name: "confirmPassword", Value: "hunter2"})

	if ctrl.Validate() {
		t.Fatal("expected Validate to return false")
	}
	want := map[string]string{"confirmPassword": "must match Password"}
	if diff := cmp.Diff(want, ctrl.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSetters_BypassValidation(t *testing.T) {
	ctrl := newController(t, stubSchema{
		fields: []string{"email"},
		validate: func(map[string]string) schema.Issues {
			return schema.Issues{schema.At("email", "always invalid")}
		},
	})

	ctrl.SetValue("email", "seeded@example.com")
	ctrl.SetValues(map[string]string{"draft": "kept"})
	ctrl.SetError("email", "server said no")
	ctrl.SetErrors(map[string]string{"draft": "server-side message"})

	if got := ctrl.Value("draft"); got != "kept" {
		t.Fatalf("raw setter should accept arbitrary keys, got %q", got)
	}
	wantErrors := map[string]string{"email": "server said no", "draft": "server-side message"}
	if diff := cmp.Diff(wantErrors, ctrl.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	ctrl.SetError("email", "")
	if got := ctrl.FieldError("email"); got != "" {
		t.Fatalf("empty message should clear the error, got %q", got)
	}

	ctrl.ClearErrors()
	if got := ctrl.Errors(); len(got) != 0 {
		t.Fatalf("ClearErrors left %v", got)
	}
}

func TestObservers(t *testing.T) {
	var valueSnapshots []map[string]string
	var errorSnapshots []map[string]string

	ctrl := newController(t, stubSchema{
		fields: []string{"email"},
		validate: func(map[string]string) schema.Issues {
			return schema.Issues{schema.At("email", "must be provided")}
		},
	},
		form.WithValueObserver(func(values map[string]string) {
			valueSnapshots = append(valueSnapshots, values)
		}),
		form.WithErrorObserver(func(errors map[string]string) {
			errorSnapshots = append(errorSnapshots, errors)
		}),
	)

	ctrl.HandleChange(form.ChangeEvent{Name: "email", Value: "a"})
	ctrl.Validate()

	if len(valueSnapshots) != 1 {
		t.Fatalf("expected one value notification, got %d", len(valueSnapshots))
	}
	if len(errorSnapshots) != 1 {
		t.Fatalf("expected one error notification, got %d", len(errorSnapshots))
	}

	// Snapshots must not alias controller state.
	valueSnapshots[0]["email"] = "mutated"
	if got := ctrl.Value("email"); got != "a" {
		t.Fatalf("observer snapshot aliased controller state, got %q", got)
	}
}
