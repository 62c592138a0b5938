package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinAndSplitTicketNos(t *testing.T) {
	nos := []string{"TKT-20260831-7-01", "TKT-20260831-7-02"}
	joined := JoinTicketNos(nos)
	assert.Equal(t, "TKT-20260831-7-01,TKT-20260831-7-02", joined)
	assert.Equal(t, nos, SplitTicketNos(joined))
}

func TestSplitTicketNosSkipsBlanks(t *testing.T) {
	assert.Empty(t, SplitTicketNos(""))
	assert.Equal(t, []string{"A", "B"}, SplitTicketNos(" A ,, B ,"))
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "Somchai Vong", NormalizeSpace("  Somchai   Vong  "))
}
