package awscli

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dts/errors"
	"dts/setuptest"
)

func TestManager_DownloadUrl(t *testing.T) {
	tests := []struct {
		name    string
		arch    string
		want    string
		wantErr bool
	}{
		{
			name: "amd64 maps to x86_64",
			arch: "amd64",
			want: "https://awscli.amazonaws.com/awscli-exe-linux-x86_64.zip",
		},
		{
			name: "arm64 maps to aarch64",
			arch: "arm64",
			want: "https://awscli.amazonaws.com/awscli-exe-linux-aarch64.zip",
		},
		{
			name:    "Unsupported architecture",
			arch:    "386",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)

			l := setuptest.NewUbuntuSystem()
			l.Arch = tt.arch
			m := NewManager(l, false)

			got, err := m.downloadUrl()

			if tt.wantErr {
				var archErr *errors.UnsupportedArchError
				assert.ErrorAs(err, &archErr)
				return
			}
			require.Nil(t, err)
			assert.Equal(tt.want, got)
		})
	}
}

func TestManager_Install(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	setuptest.UseMemFs(t)
	setuptest.StubOutput(t, map[string]string{
		binPath: "aws-cli/2.17.0 Python/3.11.8 Linux/6.8.0 exe/x86_64.ubuntu.24",
	}, nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(setuptest.ZipArchive(t, map[string]string{
			"aws/install": "#!/bin/sh\n",
			"aws/README":  "installer",
		}))
	}))
	defer server.Close()

	oldDownloadUrl := downloadUrl
	downloadUrl = server.URL + "/awscli-exe-linux-%s.zip"
	t.Cleanup(func() {
		downloadUrl = oldDownloadUrl
	})

	r := setuptest.NewShellRecorder()
	r.Install(t)

	m := NewManager(setuptest.NewUbuntuSystem(), false)

	err := m.Install()
	require.Nil(err)

	// The bundled installer is the only command that runs.
	require.Len(r.Calls, 1)
	assert.True(strings.HasSuffix(r.Calls[0].Name, "/aws/install"), "unexpected installer path %s", r.Calls[0].Name)
	assert.Empty(r.Calls[0].Args)
}

func TestManager_Install_AlreadyExists(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	fs := setuptest.UseMemFs(t)
	require.Nil(afero.WriteFile(fs, binPath, []byte("binary"), 0755))

	m := NewManager(setuptest.NewUbuntuSystem(), false)

	err := m.Install()

	var existsErr *errors.AlreadyExistsError
	assert.ErrorAs(err, &existsErr)
}

func TestManager_Update_ReinstallsWithUpdateFlag(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	fs := setuptest.UseMemFs(t)
	require.Nil(afero.WriteFile(fs, binPath, []byte("binary"), 0755))
	setuptest.StubOutput(t, map[string]string{
		binPath: "aws-cli/2.17.0 Python/3.11.8 Linux/6.8.0 exe/x86_64.ubuntu.24",
	}, nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(setuptest.ZipArchive(t, map[string]string{
			"aws/install": "#!/bin/sh\n",
		}))
	}))
	defer server.Close()

	oldDownloadUrl := downloadUrl
	downloadUrl = server.URL + "/awscli-exe-linux-%s.zip"
	t.Cleanup(func() {
		downloadUrl = oldDownloadUrl
	})

	r := setuptest.NewShellRecorder()
	r.Install(t)

	m := NewManager(setuptest.NewUbuntuSystem(), false)

	err := m.Update()
	require.Nil(err)

	require.Len(r.Calls, 1)
	assert.Equal([]string{"--update"}, r.Calls[0].Args)
}

func TestManager_Remove(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	fs := setuptest.UseMemFs(t)
	require.Nil(afero.WriteFile(fs, binPath, []byte("binary"), 0755))
	require.Nil(afero.WriteFile(fs, completerPath, []byte("binary"), 0755))
	require.Nil(afero.WriteFile(fs, installDir+"/v2/current", []byte("x"), 0644))

	m := NewManager(setuptest.NewUbuntuSystem(), false)

	require.Nil(m.Remove())

	for _, p := range []string{binPath, completerPath, installDir} {
		exists, err := afero.Exists(fs, p)
		require.Nil(err)
		assert.False(exists, "%s should be removed", p)
	}

	// Removing again is a no-op.
	require.Nil(m.Remove())
}

func TestManager_CurrentVersion(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	setuptest.StubOutput(t, map[string]string{
		binPath: "aws-cli/2.17.0 Python/3.11.8 Linux/6.8.0 exe/x86_64.ubuntu.24",
	}, nil)

	m := NewManager(setuptest.NewUbuntuSystem(), false)
	got, err := m.CurrentVersion()

	require.Nil(err)
	assert.Equal("2.17.0", got)
}
