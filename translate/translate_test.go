package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("ip empty", From("ip empty"))
	assert.Equal("line 3 'add' opcode missing", From("line %d '%v' %v", 3, "add", "opcode missing"))
	assert.Equal("'q' is not a value", From("'%v' is not a value", "q"))
}
