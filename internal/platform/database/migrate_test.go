package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingCandidates(t *testing.T) {
	fsys := fstest.MapFS{
		"002_teaser.up.sql":      {Data: []byte("SELECT 1")},
		"001_performer.up.sql":   {Data: []byte("SELECT 1")},
		"001_performer.down.sql": {Data: []byte("SELECT 1")},
		"README.md":              {Data: []byte("docs")},
	}

	files, err := PendingCandidates(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_performer.up.sql", "002_teaser.up.sql"}, files)
}
