package syspkg

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewYumManager(t *testing.T) {
	assert := assert.New(t)

	m := NewYumManager()

	assert.Equal("yum", m.GetBin())
	assert.Equal(".rpm", m.GetPackageExtension())
	assert.Contains(m.installOpts, "install")
	assert.Contains(m.upgradeOpts, "update")
	assert.Contains(m.removeOpts, "remove")
}

func TestYumManager_Install(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	r := installRecorder(t)

	err := NewYumManager().Install(&PackageList{Packages: []string{"pkg1"}})

	require.Nil(err)
	require.Len(r.calls, 1)
	assert.Equal("yum", r.calls[0].name)
	assert.Contains(r.calls[0].args, "install")
	assert.Contains(r.calls[0].args, "pkg1")
}

func TestYumManager_Upgrade(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	r := installRecorder(t)

	err := NewYumManager().Upgrade(false)

	require.Nil(err)
	require.Len(r.calls, 1)
	assert.Contains(r.calls[0].args, "update")
}

func TestYumManager_Clean_AutoRemoveBestEffort(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	r := installRecorder(t)
	r.errs[1] = fmt.Errorf("no such command: autoremove")

	// The clean succeeds even when autoremove is unavailable.
	err := NewYumManager().Clean()

	require.Nil(err)
	assert.Len(r.calls, 2)
}
