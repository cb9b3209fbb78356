package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPermissions_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permissions.yml")
	content := `roles:
  ADMIN:
    - patient:create
    - patient:delete
  doctor:
    - history:view
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	perms, err := LoadPermissions(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"patient:create", "patient:delete"}, perms["ADMIN"])
	assert.Equal(t, []string{"history:view"}, perms["DOCTOR"])
}

func TestLoadPermissions_Errors(t *testing.T) {
	_, err := LoadPermissions(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("roles: [unclosed"), 0644))
	_, err = LoadPermissions(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("roles: {}\n"), 0644))
	_, err = LoadPermissions(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("roles:\n  ADMIN:\n    - everything\n"), 0644))
	_, err = LoadPermissions(path)
	assert.ErrorContains(t, err, "malformed permission")
}

func TestLoadPermissions_RepositoryFile(t *testing.T) {
	perms, err := LoadPermissions(filepath.Join("..", "..", "permissions.yml"))
	require.NoError(t, err)

	for _, role := range []string{"ADMIN", "RECEPTIONIST", "DOCTOR"} {
		assert.Contains(t, perms, role)
	}
	assert.True(t, perms.Allows([]string{"ADMIN"}, "patient:delete"))
	assert.True(t, perms.Allows([]string{"doctor"}, "history:create"))
	assert.False(t, perms.Allows([]string{"DOCTOR"}, "patient:delete"))
	assert.False(t, perms.Allows(nil, "patient:view"))
}
