package statserrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorNameAndCode(t *testing.T) {
	wrapped := fmt.Errorf("open /nope: %w", ErrWInvalidDirectory)

	assert.Equal(t, "InvalidDirectory", GetErrorName(ErrWInvalidDirectory))
	assert.Equal(t, "W1", GetErrorCode(ErrWInvalidDirectory))
	assert.Equal(t, "W1_InvalidDirectory", GetErrorCodeWithName(ErrWInvalidDirectory))
	assert.Equal(t, ErrWInvalidDirectory, Root(wrapped))
	assert.Equal(t, "No Error", GetErrorName(nil))
	assert.Equal(t, "", GetErrorCode(fmt.Errorf("plain")))
}
