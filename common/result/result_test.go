package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	assert := assert.New(t)

	assert.True(OK.IsOK())
	assert.False(OK.IsError())

	res := Error("amount %v exceeds principal %v", 10, 5)
	assert.True(res.IsError())
	assert.Equal(CodeGenericError, res.Code)
	assert.Equal("amount 10 exceeds principal 5", res.Message)

	res = res.WithErrorCode(CodeInsufficientPrincipal)
	assert.Equal(CodeInsufficientPrincipal, res.Code)

	withInfo := OK.WithInfo("proxy", "0x01")
	assert.Equal("0x01", withInfo.Info["proxy"])
	assert.Nil(OK.Info)
}
