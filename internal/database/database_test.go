package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"players", "teams", "team_players"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_MembershipIsExclusive(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO players (name) VALUES ('One')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO teams (id, name) VALUES (1, 'Team 1'), (2, 'Team 2')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO team_players (team_id, player_id) VALUES (1, 1)`)
	require.NoError(t, err)

	// The unique index on player_id keeps teams disjoint.
	_, err = db.Exec(`INSERT INTO team_players (team_id, player_id) VALUES (2, 1)`)
	assert.Error(t, err)
}
