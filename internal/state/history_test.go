package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryRoundTrip(t *testing.T) {
	hm := NewHistoryManager(t.TempDir())

	// Empty history is not an error.
	history, err := hm.LoadHistory()
	assert.NoError(t, err)
	assert.Empty(t, history)

	tx := NewTransaction("localhost", false)
	tx.Records = []PurgeRecord{
		{Kind: "user", Name: "stray", ID: 1500, Status: "removed"},
		{Kind: "group", Name: "ghosts", Status: "failed", Detail: "group is primary for user x"},
	}
	assert.NoError(t, hm.AddTransaction(tx))

	tx2 := NewTransaction("web01", true)
	tx2.Records = []PurgeRecord{{Kind: "user", Name: "tmp", Status: "simulated"}}
	assert.NoError(t, hm.AddTransaction(tx2))

	history, err = hm.LoadHistory()
	assert.NoError(t, err)
	assert.Len(t, history, 2)

	assert.Equal(t, "localhost", history[0].Host)
	assert.Len(t, history[0].Records, 2)
	assert.Equal(t, 1500, history[0].Records[0].ID)

	assert.True(t, history[1].DryRun)
	assert.Equal(t, "web01", history[1].Host)
}
