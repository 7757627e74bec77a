package node

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dts/setuptest"
)

func stubNodeBinary(t *testing.T) {
	t.Helper()
	setuptest.StubOutput(t, map[string]string{"node": "v22.9.0"}, nil)
}

func TestNewManager(t *testing.T) {
	assert := assert.New(t)

	m := NewManager(setuptest.NewUbuntuSystem(), "")
	assert.Equal(DefaultMajor, m.Major)

	m = NewManager(setuptest.NewUbuntuSystem(), "20")
	assert.Equal("20", m.Major)
}

func TestManager_Install_Apt(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	fs := setuptest.UseMemFs(t)
	stubNodeBinary(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("-----BEGIN PGP PUBLIC KEY BLOCK-----\n"))
	}))
	defer server.Close()

	oldGpgKeyUrl := gpgKeyUrl
	gpgKeyUrl = server.URL
	t.Cleanup(func() {
		gpgKeyUrl = oldGpgKeyUrl
	})

	r := setuptest.NewShellRecorder()
	r.Install(t)

	m := NewManager(setuptest.NewUbuntuSystem(), "")

	err := m.Install()
	require.Nil(err)

	// Key import, apt update, then the install itself.
	require.Len(r.Calls, 3)
	(&setuptest.ShellCall{
		Binary:         "gpg",
		ContainsArgs:   []string{"--dearmor", aptKeyringPath},
		InheritEnvVars: true,
	}).Equal(t, r.Calls[0])
	(&setuptest.ShellCall{
		Binary:         "apt-get",
		ContainsArgs:   []string{"update"},
		InheritEnvVars: true,
	}).Equal(t, r.Calls[1])
	(&setuptest.ShellCall{
		Binary:         "apt-get",
		ContainsArgs:   []string{"install", "nodejs"},
		InheritEnvVars: true,
	}).Equal(t, r.Calls[2])

	sources, err := afero.ReadFile(fs, aptSourcesPath)
	require.Nil(err)
	assert.Contains(string(sources), "node_22.x")
	assert.Contains(string(sources), aptKeyringPath)
}

func TestManager_Install_Rpm(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	fs := setuptest.UseMemFs(t)
	stubNodeBinary(t)

	r := setuptest.NewShellRecorder()
	r.Install(t)

	m := NewManager(setuptest.NewRockySystem(), "20")

	err := m.Install()
	require.Nil(err)

	// The rpm family needs no key import or update step.
	require.Len(r.Calls, 1)
	(&setuptest.ShellCall{
		Binary:         "dnf",
		ContainsArgs:   []string{"install", "nodejs"},
		InheritEnvVars: true,
	}).Equal(t, r.Calls[0])

	repo, err := afero.ReadFile(fs, rpmRepoPath)
	require.Nil(err)
	assert.Contains(string(repo), "pub_20.x")
}

func TestManager_Remove(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	fs := setuptest.UseMemFs(t)
	require.Nil(afero.WriteFile(fs, aptSourcesPath, []byte("deb ...\n"), 0644))
	require.Nil(afero.WriteFile(fs, aptKeyringPath, []byte("key"), 0644))

	r := setuptest.NewShellRecorder()
	r.Install(t)

	m := NewManager(setuptest.NewUbuntuSystem(), "")

	err := m.Remove()
	require.Nil(err)

	require.Len(r.Calls, 1)
	(&setuptest.ShellCall{
		Binary:         "apt-get",
		ContainsArgs:   []string{"remove", "nodejs"},
		InheritEnvVars: true,
	}).Equal(t, r.Calls[0])

	for _, p := range []string{aptSourcesPath, aptKeyringPath} {
		exists, err := afero.Exists(fs, p)
		require.Nil(err)
		assert.False(exists, "%s should be removed", p)
	}
}

func TestManager_CurrentVersion(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	stubNodeBinary(t)

	m := NewManager(setuptest.NewUbuntuSystem(), "")
	got, err := m.CurrentVersion()

	require.Nil(err)
	assert.Equal("v22.9.0", got)
}
