package gate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_ClassMapping(t *testing.T) {
	notFound := []Code{CodeCaseNotFound, CodeObjectNotFound}
	badRequest := []Code{
		CodeIllegalTransition,
		CodeNamingNonCompliant,
		CodeMissingJustification,
		CodeIsolationViolation,
		CodeValidationFailed,
	}

	for _, code := range notFound {
		assert.Equal(t, ClassNotFound, (&Error{Code: code}).Class(), "%s", code)
	}
	for _, code := range badRequest {
		assert.Equal(t, ClassBadRequest, (&Error{Code: code}).Class(), "%s", code)
	}
}

func TestAsError_Unwraps(t *testing.T) {
	inner := newIllegalTransition("FILED", "ARCHIVED")
	wrapped := fmt.Errorf("dispatch: %w", inner)

	ge, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeIllegalTransition, ge.Code)
	assert.True(t, IsNotFound(newObjectNotFound("doc-1")))
	assert.False(t, IsNotFound(wrapped))
}

func TestError_Message(t *testing.T) {
	err := newIllegalTransition("FILED", "ARCHIVED")
	assert.Equal(t, "ILLEGAL_STATUS_TRANSITION: transition FILED -> ARCHIVED is not allowed", err.Error())
}
