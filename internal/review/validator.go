package review

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

const (
	commentMinLen = 10
	commentMaxLen = 500
	nameMinLen    = 2
	nameMaxLen    = 50
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DefaultDenylist 默认违禁词
var DefaultDenylist = []string{"spam", "advertisement", "discount"}

// Validator 评价校验器，只报告字段错误，不修改输入
type Validator interface {
	Validate(ctx context.Context, form FormData) (ValidationResult, error)
}

// FieldValidator 字段格式校验
type FieldValidator struct{}

// 字段错误消息
const (
	msgRating     = "Rating must be between 1 and 5"
	msgComment    = "Comment must be between 10 and 500 characters"
	msgAuthorName = "Name must be between 2 and 50 characters"
	msgEmail      = "Invalid email address"
)

// Validate 校验评分、内容、作者与邮箱
func (FieldValidator) Validate(_ context.Context, form FormData) (ValidationResult, error) {
	var errs FieldErrors
	if !validRating(form.Rating) {
		errs.Set("rating", msgRating)
	}
	if !lengthBetween(form.Comment, commentMinLen, commentMaxLen) {
		errs.Set("comment", msgComment)
	}
	if !lengthBetween(form.AuthorName, nameMinLen, nameMaxLen) {
		errs.Set("authorName", msgAuthorName)
	}
	if !emailPattern.MatchString(form.AuthorEmail) {
		errs.Set("authorEmail", msgEmail)
	}
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}, nil
}

// ValidatePatch 只校验局部更新中出现的字段
func (FieldValidator) ValidatePatch(patch Patch) ValidationResult {
	var errs FieldErrors
	if patch.Rating != nil && !validRating(*patch.Rating) {
		errs.Set("rating", msgRating)
	}
	if patch.Comment != nil && !lengthBetween(*patch.Comment, commentMinLen, commentMaxLen) {
		errs.Set("comment", msgComment)
	}
	if patch.AuthorName != nil && !lengthBetween(*patch.AuthorName, nameMinLen, nameMaxLen) {
		errs.Set("authorName", msgAuthorName)
	}
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}

func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= min && n <= max
}

// DuplicateChecker 重复提交检测
type DuplicateChecker interface {
	IsDuplicate(ctx context.Context, form FormData) (bool, error)
}

// DuplicateCheckerFunc 函数适配
type DuplicateCheckerFunc func(ctx context.Context, form FormData) (bool, error)

// IsDuplicate 实现 DuplicateChecker
func (f DuplicateCheckerFunc) IsDuplicate(ctx context.Context, form FormData) (bool, error) {
	return f(ctx, form)
}

// NeverDuplicate 从不判定为重复
var NeverDuplicate DuplicateChecker = DuplicateCheckerFunc(func(context.Context, FormData) (bool, error) {
	return false, nil
})

// BusinessRulesValidator 业务规则校验：违禁词与重复提交
type BusinessRulesValidator struct {
	denylist   []string
	duplicates DuplicateChecker
}

// NewBusinessRulesValidator 创建业务规则校验器，denylist 为空时使用默认词表
func NewBusinessRulesValidator(denylist []string, duplicates DuplicateChecker) *BusinessRulesValidator {
	words := make([]string, 0, len(denylist))
	for _, w := range denylist {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		words = append(words, DefaultDenylist...)
	}
	if duplicates == nil {
		duplicates = NeverDuplicate
	}
	return &BusinessRulesValidator{denylist: words, duplicates: duplicates}
}

// Validate 校验业务规则
func (v *BusinessRulesValidator) Validate(ctx context.Context, form FormData) (ValidationResult, error) {
	var errs FieldErrors
	comment := strings.ToLower(form.Comment)
	for _, word := range v.denylist {
		if strings.Contains(comment, word) {
			errs.Set("comment", "Comment contains forbidden content")
			break
		}
	}
	dup, err := v.duplicates.IsDuplicate(ctx, form)
	if err != nil {
		return ValidationResult{}, err
	}
	if dup {
		errs.Set("general", "You have already reviewed this product")
	}
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}, nil
}

// DefaultValidators 默认校验管线
func DefaultValidators(denylist []string, duplicates DuplicateChecker) []Validator {
	return []Validator{FieldValidator{}, NewBusinessRulesValidator(denylist, duplicates)}
}

// RunValidators 并发执行全部校验器，按校验器顺序合并错误
func RunValidators(ctx context.Context, validators []Validator, form FormData) (ValidationResult, error) {
	results := make([]ValidationResult, len(validators))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range validators {
		g.Go(func() error {
			res, err := v.Validate(gctx, form)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ValidationResult{}, err
	}

	var merged FieldErrors
	for _, res := range results {
		if !res.IsValid {
			merged.Merge(res.Errors)
		}
	}
	return ValidationResult{IsValid: len(merged) == 0, Errors: merged}, nil
}
