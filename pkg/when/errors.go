package when

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	MetaChainID   = "chain_id"
	MetaOperation = "operation"
	MetaMode      = "mode"
	MetaTestIndex = "test_index"
	MetaValueType = "value_type"
	MetaWantType  = "want_type"
	MetaPanic     = "panic"
)

const (
	TextCodeMissingSubject   = "MISSING_SUBJECT"
	TextCodeMissingFallback  = "MISSING_FALLBACK"
	TextCodeInvalidTerminal  = "INVALID_TERMINAL_USAGE"
	TextCodeInvalidValue     = "INVALID_VALUE"
	TextCodeCallbackPanicked = "CALLBACK_PANICKED"
	TextCodeNoValue          = "NO_VALUE"
)

var (
	ErrMissingSubject   = newSentinel(goerrors.CategoryBadInput, goerrors.CodeBadRequest, TextCodeMissingSubject, "chain has no subject")
	ErrMissingFallback  = newSentinel(goerrors.CategoryBadInput, goerrors.CodeBadRequest, TextCodeMissingFallback, "chain has no fallback")
	ErrInvalidTerminal  = newSentinel(goerrors.CategoryBadInput, goerrors.CodeBadRequest, TextCodeInvalidTerminal, "else requires a chain built with a subject")
	ErrInvalidValue     = newSentinel(goerrors.CategoryBadInput, goerrors.CodeBadRequest, TextCodeInvalidValue, "value cannot be resolved to the requested type")
	ErrCallbackPanicked = newSentinel(goerrors.CategoryInternal, goerrors.CodeInternal, TextCodeCallbackPanicked, "callback panicked")
	ErrNoValue          = newSentinel(goerrors.CategoryOperation, goerrors.CodeInternal, TextCodeNoValue, "channel closed without a value")
)

func newSentinel(category goerrors.Category, code int, textCode, message string) *goerrors.Error {
	err := goerrors.New(message, category).WithTextCode(textCode)
	if code != 0 {
		err.WithCode(code)
	}
	return err
}

func IsSentinel(err error) bool {
	return err == ErrMissingSubject ||
		err == ErrMissingFallback ||
		err == ErrInvalidTerminal ||
		err == ErrInvalidValue ||
		err == ErrCallbackPanicked ||
		err == ErrNoValue
}

// IsUsage reports whether err is one of the caller-usage errors a chain
// raises when it is resolved in an incomplete or invalid state.
func IsUsage(err error) bool {
	rich, ok := As(err)
	if !ok {
		return false
	}
	switch rich.TextCode {
	case TextCodeMissingSubject, TextCodeMissingFallback, TextCodeInvalidTerminal, TextCodeInvalidValue:
		return true
	}
	return false
}

// WrapSentinel copies the sentinel identity into a new error carrying meta.
// The result still matches the sentinel under errors.Is.
func WrapSentinel(sentinel *goerrors.Error, message string, meta map[string]any) *goerrors.Error {
	if sentinel == nil {
		return nil
	}
	if message == "" {
		message = sentinel.Message
	}
	err := goerrors.New(message, sentinel.Category).
		WithTextCode(sentinel.TextCode).
		WithCode(sentinel.Code).
		WithSeverity(sentinel.Severity)
	err.Source = sentinel
	if meta != nil {
		err.WithMetadata(meta)
	}
	return err
}

// InvalidTerminal returns the error raised by Else on a chain without a
// subject. It matches both ErrInvalidTerminal and ErrMissingSubject.
func InvalidTerminal(meta map[string]any) error {
	return fmt.Errorf("%w: %w",
		WrapSentinel(ErrInvalidTerminal, "", meta),
		WrapSentinel(ErrMissingSubject, "", meta))
}

// InvalidValue reports a value that cannot produce want.
func InvalidValue(value any, want string, meta map[string]any) *goerrors.Error {
	fields := map[string]any{
		MetaValueType: TypeName(value),
		MetaWantType:  want,
	}
	for k, v := range meta {
		fields[k] = v
	}
	return WrapSentinel(ErrInvalidValue,
		fmt.Sprintf("%s cannot be resolved to %s", TypeName(value), want), fields)
}

// Panicked converts a recovered panic value into an error.
func Panicked(recovered any) *goerrors.Error {
	if err, ok := recovered.(error); ok {
		return WrapSentinel(ErrCallbackPanicked, "callback panicked: "+err.Error(),
			map[string]any{MetaPanic: err.Error()})
	}
	return WrapSentinel(ErrCallbackPanicked, fmt.Sprintf("callback panicked: %v", recovered),
		map[string]any{MetaPanic: fmt.Sprint(recovered)})
}

func As(err error) (*goerrors.Error, bool) {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich, true
	}
	return nil, false
}
