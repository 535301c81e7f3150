package review

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func validForm() FormData {
	return FormData{
		ProductID:   "product-1",
		Rating:      5,
		Comment:     "Very satisfied with this product overall",
		AuthorName:  "Jane Doe",
		AuthorEmail: "jane@example.com",
		Type:        TypeText,
	}
}

func TestFieldValidatorRejectsOutOfRangeRating(t *testing.T) {
	form := validForm()
	form.Rating = 6
	res, err := FieldValidator{}.Validate(context.Background(), form)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if res.IsValid {
		t.Fatalf("rating 6 should be invalid")
	}
	if _, ok := res.Errors.Get("rating"); !ok || len(res.Errors) != 1 {
		t.Fatalf("expected only rating error, got %+v", res.Errors)
	}
}

func TestFieldValidatorRejectsShortComment(t *testing.T) {
	form := validForm()
	form.Comment = "short"
	res, _ := FieldValidator{}.Validate(context.Background(), form)
	if _, ok := res.Errors.Get("comment"); !ok {
		t.Fatalf("expected comment error, got %+v", res.Errors)
	}

	form.Comment = "   padded    "
	res, _ = FieldValidator{}.Validate(context.Background(), form)
	if _, ok := res.Errors.Get("comment"); !ok {
		t.Fatalf("comment length must be measured after trimming")
	}

	form.Comment = strings.Repeat("я", 500)
	res, _ = FieldValidator{}.Validate(context.Background(), form)
	if !res.IsValid {
		t.Fatalf("500 multibyte characters should be accepted: %+v", res.Errors)
	}
}

func TestFieldValidatorNameAndEmail(t *testing.T) {
	form := validForm()
	form.AuthorName = " J "
	form.AuthorEmail = "jane@example"
	res, _ := FieldValidator{}.Validate(context.Background(), form)
	if _, ok := res.Errors.Get("authorName"); !ok {
		t.Fatalf("expected authorName error")
	}
	if _, ok := res.Errors.Get("authorEmail"); !ok {
		t.Fatalf("expected authorEmail error")
	}
}

func TestValidFormPassesBothValidators(t *testing.T) {
	for _, v := range DefaultValidators(nil, nil) {
		res, err := v.Validate(context.Background(), validForm())
		if err != nil || !res.IsValid {
			t.Fatalf("%T rejected valid form: %+v %v", v, res.Errors, err)
		}
	}
}

func TestBusinessRulesDenylistIsCaseInsensitive(t *testing.T) {
	v := NewBusinessRulesValidator([]string{"Casino"}, nil)
	form := validForm()
	form.Comment = "Visit my CASINO website today"
	res, _ := v.Validate(context.Background(), form)
	if _, ok := res.Errors.Get("comment"); !ok {
		t.Fatalf("expected denylist error")
	}
}

func TestBusinessRulesDuplicateHook(t *testing.T) {
	v := NewBusinessRulesValidator(nil, DuplicateCheckerFunc(func(context.Context, FormData) (bool, error) {
		return true, nil
	}))
	res, _ := v.Validate(context.Background(), validForm())
	if msg, ok := res.Errors.Get("general"); !ok || msg == "" {
		t.Fatalf("expected general duplicate error, got %+v", res.Errors)
	}

	failing := NewBusinessRulesValidator(nil, DuplicateCheckerFunc(func(context.Context, FormData) (bool, error) {
		return false, errors.New("db down")
	}))
	if _, err := failing.Validate(context.Background(), validForm()); err == nil {
		t.Fatalf("expected checker error to propagate")
	}
}

type slowValidator struct {
	delay time.Duration
	field string
	msg   string
}

func (v slowValidator) Validate(ctx context.Context, _ FormData) (ValidationResult, error) {
	select {
	case <-time.After(v.delay):
	case <-ctx.Done():
		return ValidationResult{}, ctx.Err()
	}
	var errs FieldErrors
	errs.Set(v.field, v.msg)
	return ValidationResult{IsValid: false, Errors: errs}, nil
}

func TestRunValidatorsMergesInListOrder(t *testing.T) {
	validators := []Validator{
		slowValidator{delay: 30 * time.Millisecond, field: "comment", msg: "first"},
		slowValidator{delay: time.Millisecond, field: "comment", msg: "second"},
		slowValidator{delay: time.Millisecond, field: "rating", msg: "rating"},
	}
	res, err := RunValidators(context.Background(), validators, validForm())
	if err != nil {
		t.Fatalf("run validators failed: %v", err)
	}
	if len(res.Errors) != 2 || res.Errors[0].Field != "comment" || res.Errors[1].Field != "rating" {
		t.Fatalf("unexpected order: %+v", res.Errors)
	}
	if res.Errors.First() != "second" {
		t.Fatalf("later validator should win for the same field, got %q", res.Errors.First())
	}
}

func TestFieldErrorsJSONKeepsOrder(t *testing.T) {
	var errs FieldErrors
	errs.Set("rating", "r")
	errs.Set("comment", "c")
	b, err := errs.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `{"rating":"r","comment":"c"}` {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestFieldValidatorPatchChecksOnlyPresentFields(t *testing.T) {
	short := "too short"
	result := FieldValidator{}.ValidatePatch(Patch{Comment: &short})
	if result.IsValid {
		t.Fatalf("short comment patch should fail")
	}
	if _, ok := result.Errors.Get("rating"); ok {
		t.Fatalf("absent rating must not be checked")
	}

	rating := 4
	if res := (FieldValidator{}).ValidatePatch(Patch{Rating: &rating}); !res.IsValid {
		t.Fatalf("valid rating patch rejected: %+v", res.Errors)
	}
	if res := (FieldValidator{}).ValidatePatch(Patch{}); !res.IsValid {
		t.Fatalf("empty patch should be valid")
	}
}
