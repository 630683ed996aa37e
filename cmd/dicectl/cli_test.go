package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rlindsey28/chat-dice/rolldice"
	"github.com/rlindsey28/chat-dice/rolldice/rolldicetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, faces []int, args ...string) (string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut, rolldicetest.NewFaces(faces...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String(), errOut.String()
}

func TestRollCommand(t *testing.T) {
	out, errOut := execute(t, "", []int{3, 4}, "roll", "2d6+1", "--user", "Alice")
	assert.Equal(t, "[console] Alice rolled 2d6+1: [3, 4] = 7 +1 = <strong>8</strong>\n", out)
	assert.Empty(t, errOut)
}

func TestShorthandCommand(t *testing.T) {
	out, _ := execute(t, "", []int{19, 2}, "d20", "2", "-u", "Bob", "-r", "tabletop")
	assert.Equal(t, "[tabletop] Bob rolled 2d20: [19, 2] = <strong>21</strong>\n", out)

	out, _ = execute(t, "", []int{7}, "d8")
	assert.Equal(t, "[console] You rolled 1d8: <strong>7</strong>\n", out)
}

func TestErrorsGoToStderr(t *testing.T) {
	out, errOut := execute(t, "", nil, "roll", "abc")
	assert.Empty(t, out)
	assert.Equal(t, rolldice.Usage+"\n", errOut)
}

func TestExecHelp(t *testing.T) {
	out, errOut := execute(t, "", nil, "exec", "/help", "roll")
	assert.Empty(t, out)
	assert.Contains(t, errOut, "/roll [dice notation]")
}

func TestRepl(t *testing.T) {
	out, errOut := execute(t, "/roll d6\n\n/d4 101\n/dice 1d6-1\n", []int{5, 2}, "repl")
	assert.Equal(t, "[console] You rolled 1d6: <strong>5</strong>\n[console] You rolled 1d6-1: <strong>2</strong> -1 = <strong>1</strong>\n", out)
	assert.Equal(t, "Number of dice must be between 1 and 100.\n", errOut)
}
