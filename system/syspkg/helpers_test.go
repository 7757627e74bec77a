package syspkg

import (
	"strings"
	"testing"

	"dts/system/command"
)

// fakeShellCommand records a single invocation without spawning a process.
type fakeShellCommand struct {
	name           string
	args           []string
	envVars        []string
	inheritEnvVars bool
	err            error
}

func (f *fakeShellCommand) Run() error     { return f.err }
func (f *fakeShellCommand) String() string { return f.name + " " + strings.Join(f.args, " ") }

func (f *fakeShellCommand) GetName() string                           { return f.name }
func (f *fakeShellCommand) GetArgs() []string                         { return f.args }
func (f *fakeShellCommand) GetEnvVars() []string                      { return f.envVars }
func (f *fakeShellCommand) GetInheritEnvVars() bool                   { return f.inheritEnvVars }
func (f *fakeShellCommand) GetContext() command.ShellCommandContexter { return nil }
func (f *fakeShellCommand) GetExecutor() command.ShellCommandExecutor { return nil }

type shellRecorder struct {
	calls []*fakeShellCommand
	errs  map[int]error
}

func installRecorder(t *testing.T) *shellRecorder {
	t.Helper()

	r := &shellRecorder{errs: map[int]error{}}
	oldShellCommand := command.NewShellCommand
	command.NewShellCommand = func(name string, args []string, envVars []string, inheritEnvVars bool) command.ShellCommandRunner {
		call := &fakeShellCommand{
			name:           name,
			args:           args,
			envVars:        envVars,
			inheritEnvVars: inheritEnvVars,
			err:            r.errs[len(r.calls)],
		}
		r.calls = append(r.calls, call)
		return call
	}
	t.Cleanup(func() {
		command.NewShellCommand = oldShellCommand
	})
	return r
}

// stubOutput swaps command.Output for a canned per-binary response table.
func stubOutput(t *testing.T, outputs map[string]string, errs map[string]error) {
	t.Helper()

	oldOutput := command.Output
	command.Output = func(name string, args ...string) (string, error) {
		if err, ok := errs[name]; ok {
			return "", err
		}
		return outputs[name], nil
	}
	t.Cleanup(func() {
		command.Output = oldOutput
	})
}
