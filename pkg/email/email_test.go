package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	for _, ok := range []string{"ivanov@gov27.ru", "a@b.c", "first.last+tag@mail.gov27.ru"} {
		assert.True(t, Valid(ok), ok)
	}
	for _, bad := range []string{"", "ivanov", "ivanov@gov27", "@gov27.ru", "iva nov@gov27.ru", "a@@b.c", " ivanov@gov27.ru"} {
		assert.False(t, Valid(bad), bad)
	}
}
