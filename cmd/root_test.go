package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapdeck/zapdeck/internal/creds"
)

func TestLogout_HonorsCredsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")
	require.NoError(t, creds.Save(path, creds.Account{Username: "op", Token: "tok"}))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"logout", "--creds", path})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "logged out")

	account, err := creds.Load(path)
	require.NoError(t, err)
	assert.False(t, account.LoggedIn(), "token should be gone after logout")
}

func TestRootCommandFlags(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"config", "creds"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "missing persistent flag %q", name)
	}
	for _, name := range []string{"prefs", "poll"} {
		assert.NotNil(t, root.Flags().Lookup(name), "missing flag %q", name)
	}

	// Subcommands inherit the credentials override.
	login, _, err := root.Find([]string{"login"})
	require.NoError(t, err)
	assert.NotNil(t, login.InheritedFlags().Lookup("creds"))
}
