package apdemod

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error_messageIncludesKindAndMsg(t *testing.T) {
	e := newError(KindBadEt, "got NaN")
	assert.Contains(t, e.Error(), KindBadEt.String())
	assert.Contains(t, e.Error(), "got NaN")
}

func Test_handleTerminal_returnsByDefault(t *testing.T) {
	SetErrExit(false, nil)
	e := newError(KindBadNi, "")
	got := handleTerminal(e)
	assert.Equal(t, e, got)
}

func Test_handleTerminal_nilIsNil(t *testing.T) {
	SetErrExit(false, nil)
	assert.Nil(t, handleTerminal(nil))
}

func Test_Kind_String_unknown(t *testing.T) {
	assert.Equal(t, "unknown error", Kind(-7).String())
}
