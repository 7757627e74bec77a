package setuptest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dts/system/command"
)

// FakeShellCommand satisfies command.ShellCommandRunner without spawning a
// process.
type FakeShellCommand struct {
	Name           string
	Args           []string
	EnvVars        []string
	InheritEnvVars bool
	Err            error
}

func (f *FakeShellCommand) Run() error {
	return f.Err
}

func (f *FakeShellCommand) String() string {
	return f.Name + " " + strings.Join(f.Args, " ")
}

func (f *FakeShellCommand) GetName() string                           { return f.Name }
func (f *FakeShellCommand) GetArgs() []string                         { return f.Args }
func (f *FakeShellCommand) GetEnvVars() []string                      { return f.EnvVars }
func (f *FakeShellCommand) GetInheritEnvVars() bool                   { return f.InheritEnvVars }
func (f *FakeShellCommand) GetContext() command.ShellCommandContexter { return nil }
func (f *FakeShellCommand) GetExecutor() command.ShellCommandExecutor { return nil }

// ShellRecorder captures every shell command a test provokes. Errs scripts
// a failure for the nth call (0-based).
type ShellRecorder struct {
	Calls []*FakeShellCommand
	Errs  map[int]error
}

func NewShellRecorder() *ShellRecorder {
	return &ShellRecorder{Errs: map[int]error{}}
}

// Install swaps command.NewShellCommand for the recorder until the test
// ends.
func (r *ShellRecorder) Install(t *testing.T) {
	t.Helper()

	oldShellCommand := command.NewShellCommand
	command.NewShellCommand = func(name string, args []string, envVars []string, inheritEnvVars bool) command.ShellCommandRunner {
		call := &FakeShellCommand{
			Name:           name,
			Args:           args,
			EnvVars:        envVars,
			InheritEnvVars: inheritEnvVars,
			Err:            r.Errs[len(r.Calls)],
		}
		r.Calls = append(r.Calls, call)
		return call
	}
	t.Cleanup(func() {
		command.NewShellCommand = oldShellCommand
	})
}

// ShellCall describes an expected invocation.
type ShellCall struct {
	Binary         string
	ContainsArgs   []string
	EnvVars        []string
	InheritEnvVars bool
}

func (s *ShellCall) Equal(t *testing.T, call *FakeShellCommand) {
	t.Helper()
	assert := assert.New(t)
	assert.Equal(s.Binary, call.Name)
	for _, arg := range s.ContainsArgs {
		assert.Contains(call.Args, arg)
	}
	for _, v := range s.EnvVars {
		assert.Contains(call.EnvVars, v)
	}
	assert.Equal(s.InheritEnvVars, call.InheritEnvVars)
}

// StubOutput swaps command.Output for a canned per-binary response table
// until the test ends.
func StubOutput(t *testing.T, outputs map[string]string, errs map[string]error) {
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
