package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestErrorMessage(t *testing.T) {
	e := New("loading config").Wrap(New("unexpected end of JSON input"))
	assert.Equal(t, "loading config: unexpected end of JSON input", e.Error())

	assert.Equal(t, "bare", New("bare").Error())
	assert.Equal(t, "outer: inner", New("outer").Wrap(New("inner")).Error())
}

type codeError struct{ code int }

func (c *codeError) Error() string { return "code" }

func TestAs(t *testing.T) {
	e := New("wrapper").Wrap(&codeError{code: 3})
	var target *codeError
	assert.True(t, As(e, &target))
	assert.Equal(t, 3, target.code)
}
