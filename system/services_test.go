package system

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dts/system/command"
)

type recordedCommand struct {
	name string
	args []string
}

func (r *recordedCommand) Run() error     { return nil }
func (r *recordedCommand) String() string { return r.name + " " + strings.Join(r.args, " ") }

func (r *recordedCommand) GetName() string                           { return r.name }
func (r *recordedCommand) GetArgs() []string                         { return r.args }
func (r *recordedCommand) GetEnvVars() []string                      { return nil }
func (r *recordedCommand) GetInheritEnvVars() bool                   { return true }
func (r *recordedCommand) GetContext() command.ShellCommandContexter { return nil }
func (r *recordedCommand) GetExecutor() command.ShellCommandExecutor { return nil }

func recordShellCommands(t *testing.T) *[]*recordedCommand {
	t.Helper()

	var calls []*recordedCommand
	oldShellCommand := command.NewShellCommand
	command.NewShellCommand = func(name string, args []string, envVars []string, inheritEnvVars bool) command.ShellCommandRunner {
		call := &recordedCommand{name: name, args: args}
		calls = append(calls, call)
		return call
	}
	t.Cleanup(func() {
		command.NewShellCommand = oldShellCommand
	})
	return &calls
}

func TestUnitControl(t *testing.T) {
	tests := []struct {
		name     string
		invoke   func(string) error
		wantArgs []string
	}{
		{
			name:     "Enable",
			invoke:   EnableUnit,
			wantArgs: []string{"enable", "--now", "docker"},
		},
		{
			name:     "Disable",
			invoke:   DisableUnit,
			wantArgs: []string{"disable", "--now", "docker"},
		},
		{
			name:     "Restart",
			invoke:   RestartUnit,
			wantArgs: []string{"restart", "docker"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			calls := recordShellCommands(t)

			err := tt.invoke("docker")

			require.Nil(t, err)
			require.Len(t, *calls, 1)
			assert.Equal("systemctl", (*calls)[0].name)
			assert.Equal(tt.wantArgs, (*calls)[0].args)
		})
	}
}
