package shared

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studenthub/core"
	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/session"
	"github.com/trezcool/studenthub/services/email"
	"github.com/trezcool/studenthub/storage/session/filestore"
	"github.com/trezcool/studenthub/tests"
)

func TestNewDeps(t *testing.T) {
	tests := []struct {
		name      string
		seed      bool
		wantCount int
	}{
		{name: "seeded", seed: true, wantCount: 4},
		{name: "empty", seed: false, wantCount: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, err := NewDeps(&core.Config{Seed: tt.seed}, new(testutil.Logger))
			require.NoError(t, err)

			count, err := deps.StudentSvc.Count()
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestNewEmailService(t *testing.T) {
	assert.Nil(t, NewEmailService(&core.Config{}, new(testutil.Logger)))
	assert.NotNil(t, NewEmailService(&core.Config{NotifyStudents: true, Debug: true}, new(testutil.Logger)))
	assert.NotNil(t, NewEmailService(&core.Config{NotifyStudents: true, SendgridApiKey: "sg-key"}, new(testutil.Logger)))
}

func TestDeps_WaitMail(t *testing.T) {
	t.Run("notifications disabled", func(t *testing.T) {
		deps, err := NewDeps(&core.Config{Seed: true}, new(testutil.Logger))
		require.NoError(t, err)
		assert.Nil(t, deps.Mail)
		deps.WaitMail()
	})

	t.Run("console mail", func(t *testing.T) {
		var out bytes.Buffer
		conf := &core.Config{AppName: "StudentHub", Seed: true, Debug: true, NotifyStudents: true}
		deps, err := NewDeps(conf, new(testutil.Logger), emailsvc.WithOutput(&out))
		require.NoError(t, err)

		score := 64
		_, err = deps.ResultSvc.Add(result.NewEntry{StudentID: "ST001", Subject: "Art", Score: &score})
		require.NoError(t, err)
		deps.WaitMail()
		assert.Contains(t, out.String(), "Subject: [StudentHub] New result: Art")
		assert.Contains(t, out.String(), "To: \"Murari Kumar\" <murari@email.com>")
	})
}

func TestNewSessionStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, release, err := NewSessionStore(ctx, &core.Config{Session: core.SessionConfig{Store: "file", Dir: dir, Key: "currentUser"}})
	require.NoError(t, err)
	defer release()
	if fs, ok := store.(*filestore.Store); assert.True(t, ok) {
		assert.Equal(t, filepath.Join(dir, "currentUser.json"), fs.Path())
	}

	store, _, err = NewSessionStore(ctx, &core.Config{Session: core.SessionConfig{Store: "memory"}})
	require.NoError(t, err)
	assert.IsType(t, &session.MemoryStore{}, store)

	_, _, err = NewSessionStore(ctx, &core.Config{Session: core.SessionConfig{Store: "cookie"}})
	assert.EqualError(t, err, `unknown session store "cookie"`)
}
