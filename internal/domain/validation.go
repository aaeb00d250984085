package domain

// ValidationKind is the outcome of a field check.
type ValidationKind int

const (
	ValidationOK ValidationKind = iota
	ValidationError
)

// String returns the string representation of ValidationKind.
func (k ValidationKind) String() string {
	switch k {
	case ValidationOK:
		return "ok"
	case ValidationError:
		return "error"
	default:
		return "unknown"
	}
}

// ValidationResult is the result of checking one configuration field.
// An error result is advisory: it is shown to the editor and never blocks a save.
type ValidationResult struct {
	Kind    ValidationKind
	Message string
}

// OK reports whether the field passed validation.
func (r ValidationResult) OK() bool {
	return r.Kind == ValidationOK
}

// ValidationOKResult returns a passing result.
func ValidationOKResult() ValidationResult {
	return ValidationResult{Kind: ValidationOK}
}

// ValidationErrorResult returns a failing result carrying message.
func ValidationErrorResult(message string) ValidationResult {
	return ValidationResult{Kind: ValidationError, Message: message}
}

// ValidateRequiredPath checks a path field that must not be left empty.
func ValidateRequiredPath(value string) ValidationResult {
	if len(value) == 0 {
		return ValidationErrorResult("Please set git directory")
	}
	return ValidationOKResult()
}

// FieldWarning is a failed field check reported for a saved configuration.
type FieldWarning struct {
	Field   string
	Message string
}

// ValidateConfiguration runs every field check against cfg.
// Only the git directory is checked; other fields surface their problems
// when the generator is invoked.
func ValidateConfiguration(cfg BuildStepConfiguration) []FieldWarning {
	checks := []struct {
		field string
		check func(string) ValidationResult
		value string
	}{
		{field: "gitDirectory", check: ValidateRequiredPath, value: cfg.GitDirectory},
	}

	var warnings []FieldWarning
	for _, c := range checks {
		if result := c.check(c.value); !result.OK() {
			warnings = append(warnings, FieldWarning{Field: c.field, Message: result.Message})
		}
	}
	return warnings
}
