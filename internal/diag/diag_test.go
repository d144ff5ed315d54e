package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequirePassesWhenTrue(t *testing.T) {
	assert.NotPanics(t, func() { Require(true, "unreachable") })
}

func TestRequirePanicsWhenFalse(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() { Require(false, "boom") })
}
