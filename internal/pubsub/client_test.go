package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestNewWithoutProject(t *testing.T) {
	// An empty project must not require GCP credentials or kill the process.
	c := New("")
	require.NotNil(t, c)
	defer c.Close()

	t.Run("publishes are a no-op", func(t *testing.T) {
		err := c.SendMessage(EventNotifyAssignment, map[string]string{"hello": "world"})
		assert.NoError(t, err)
	})

	t.Run("push payloads still decode", func(t *testing.T) {
		packed, err := msgpack.Marshal(map[string]string{"name": "Anna"})
		require.NoError(t, err)

		var decoded map[string]string
		require.NoError(t, c.ProcessMessage(packed, &decoded))
		assert.Equal(t, "Anna", decoded["name"])
	})
}
