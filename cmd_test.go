package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/isdelr/ecolearn/internal/app"
	"github.com/isdelr/ecolearn/internal/auth"
	"github.com/isdelr/ecolearn/internal/config"
	"github.com/isdelr/ecolearn/internal/fixtures"
	"github.com/isdelr/ecolearn/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T, input string) (*commandLine, *bytes.Buffer) {
	t.Helper()
	a, err := app.NewWithStore(&config.Config{
		BackendMode: config.BackendFixtures,
		Profile:     "default",
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
	}, auth.NewMemoryStore(""))
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &commandLine{app: a, out: out, in: bufio.NewReader(strings.NewReader(input))}, out
}

func mockPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	orig := readPasswordFunc
	t.Cleanup(func() { readPasswordFunc = orig })
	readPasswordFunc = func(int) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, errors.New("no more passwords")
		}
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}
}

func TestUsage(t *testing.T) {
	cli, out := newTestCLI(t, "")
	assert.ErrorIs(t, cli.run(context.Background(), []string{"ecolearn"}), errHelp)
	assert.Contains(t, out.String(), "Usage: ecolearn")

	assert.ErrorIs(t, cli.run(context.Background(), []string{"ecolearn", "bogus"}), errHelp)
}

func TestProtectedCommandsNeedLogin(t *testing.T) {
	cli, _ := newTestCLI(t, "")
	for _, cmd := range []string{"dashboard", "impact", "paths", "history", "profile"} {
		err := cli.run(context.Background(), []string{"ecolearn", cmd})
		assert.ErrorIs(t, err, errNotSignedIn, cmd)
	}
	assert.ErrorIs(t, cli.run(context.Background(), []string{"ecolearn", "whoami"}), errNotSignedIn)
}

func TestLoginShowsDashboard(t *testing.T) {
	cli, out := newTestCLI(t, "")
	mockPasswords(t, fixtures.DemoPassword)

	err := cli.run(context.Background(), []string{"ecolearn", "login", "-email", fixtures.DemoEmail})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Signed in as "+fixtures.DemoName)
	assert.Contains(t, out.String(), "Welcome, "+fixtures.DemoName)
	assert.Contains(t, out.String(), "Trees planted per month")

	out.Reset()
	require.NoError(t, cli.run(context.Background(), []string{"ecolearn", "whoami"}))
	assert.Contains(t, out.String(), fixtures.DemoEmail)

	out.Reset()
	require.NoError(t, cli.run(context.Background(), []string{"ecolearn", "logout"}))
	assert.ErrorIs(t, cli.run(context.Background(), []string{"ecolearn", "dashboard"}), errNotSignedIn)
}

func TestLoginWrongPassword(t *testing.T) {
	cli, _ := newTestCLI(t, "")
	mockPasswords(t, "wrong")

	err := cli.run(context.Background(), []string{"ecolearn", "login", "-email", fixtures.DemoEmail})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRegisterMismatchIsRejectedLocally(t *testing.T) {
	cli, _ := newTestCLI(t, "")
	mockPasswords(t, "secret1", "secret2")

	err := cli.run(context.Background(), []string{"ecolearn", "register", "-name", "Jane", "-email", "jane@example.com"})
	var vErr *validation.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.NotEmpty(t, vErr.Field("confirmPassword"))
}

func signIn(t *testing.T, cli *commandLine) {
	t.Helper()
	mockPasswords(t, fixtures.DemoPassword)
	require.NoError(t, cli.run(context.Background(), []string{"ecolearn", "login", "-email", fixtures.DemoEmail}))
}

func TestLessonWalkthrough(t *testing.T) {
	cli, out := newTestCLI(t, "n\np\nn\nn\nn\n")
	signIn(t, cli)
	out.Reset()

	require.NoError(t, cli.run(context.Background(), []string{"ecolearn", "lesson", "-id", "1"}))
	s := out.String()
	assert.Contains(t, s, "1 / 3 (33%)")
	assert.Contains(t, s, "3 / 3 (100%)")
	assert.Contains(t, s, "Lesson complete!")
	assert.Contains(t, s, "My learning paths")
}

func TestCarbonCommands(t *testing.T) {
	cli, out := newTestCLI(t, "")
	signIn(t, cli)

	out.Reset()
	require.NoError(t, cli.run(context.Background(), []string{"ecolearn", "history"}))
	assert.Contains(t, out.String(), "14 trees, 11.8 kg CO₂, 4 contributions")

	out.Reset()
	require.NoError(t, cli.run(context.Background(), []string{"ecolearn", "offset", "-kg", "50"}))
	assert.Contains(t, out.String(), "3 trees ordered")

	out.Reset()
	require.NoError(t, cli.run(context.Background(), []string{"ecolearn", "calculate", "-hours", "2", "-device", "desktop", "-energy", "fossil"}))
	assert.Contains(t, out.String(), "0.12 kg CO₂")

	out.Reset()
	require.NoError(t, cli.run(context.Background(), []string{"ecolearn", "impact"}))
	assert.Contains(t, out.String(), "128 km by plane")
}

func TestLearningCommands(t *testing.T) {
	cli, out := newTestCLI(t, "")
	signIn(t, cli)

	out.Reset()
	require.NoError(t, cli.run(context.Background(), []string{"ecolearn", "generate", "-topic", "Composting", "-level", "advanced"}))
	assert.Contains(t, out.String(), "Composting")

	err := cli.run(context.Background(), []string{"ecolearn", "generate", "-topic", "Composting", "-level", "expert"})
	var vErr *validation.ValidationError
	assert.ErrorAs(t, err, &vErr)

	out.Reset()
	require.NoError(t, cli.run(context.Background(), []string{"ecolearn", "personalize", "-id", "2", "-style", "visual", "-interests", "soil, water"}))
	assert.Contains(t, out.String(), "(visual style, soil, water)")

	out.Reset()
	require.NoError(t, cli.run(context.Background(), []string{"ecolearn", "paths"}))
	assert.Contains(t, out.String(), "Renewable Energy")
}

func TestProfileEdit(t *testing.T) {
	cli, out := newTestCLI(t, "")
	signIn(t, cli)

	out.Reset()
	require.NoError(t, cli.run(context.Background(), []string{"ecolearn", "profile", "-name", "Eco Fan"}))
	assert.Contains(t, out.String(), "Eco Fan")
	assert.Contains(t, out.String(), "Eco-Warrior")
}
