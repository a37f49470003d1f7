package testhelpers

import (
	"fmt"
	"reflect"

	"github.com/onsi/gomega/types"
	errorspkg "github.com/pkg/errors"
)

// BeErrorType matches when the cause of the actual error is of the expected
// error type, unwrapping any wrapping applied along the way.
func BeErrorType(expected interface{}) types.GomegaMatcher {
	return &beErrorTypeMatcher{
		expected: expected,
	}
}

type beErrorTypeMatcher struct {
	expected interface{}
}

func (matcher *beErrorTypeMatcher) Match(actual interface{}) (bool, error) {
	if actual == nil {
		return false, nil
	}

	if _, ok := matcher.expected.(error); !ok {
		return false, fmt.Errorf("BeErrorType matcher expects an error")
	}

	actualErr, ok := actual.(error)
	if !ok {
		return false, fmt.Errorf("BeErrorType matcher expects an error")
	}

	cause := errorspkg.Cause(actualErr)

	expectedType := reflect.PtrTo(reflect.TypeOf(matcher.expected))
	return reflect.TypeOf(cause) == expectedType, nil
}

func (matcher *beErrorTypeMatcher) FailureMessage(actual interface{}) string {
	if actual == nil {
		return "Expected error, got nil"
	}

	actualErr, _ := actual.(error)
	return fmt.Sprintf("Expected error\n\t%s\nto be of type\n\t%s", actualErr.Error(), reflect.TypeOf(matcher.expected))
}

func (matcher *beErrorTypeMatcher) NegatedFailureMessage(actual interface{}) string {
	actualErr, _ := actual.(error)
	return fmt.Sprintf("Expected error\n\t%s\nnot to be of type\n\t%s", actualErr.Error(), reflect.TypeOf(matcher.expected))
}
