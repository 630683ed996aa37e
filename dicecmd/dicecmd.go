// Package dicecmd registers the dice chat commands: /roll, its /dice alias
// and the fixed-die shortcuts /d4 through /d100.
package dicecmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rlindsey28/chat-dice/chat"
	"github.com/rlindsey28/chat-dice/rolldice"
)

// Shortcuts are the die sizes that get a /d<sides> command.
var Shortcuts = []int{4, 6, 8, 10, 12, 20, 100}

var RollHelp = []string{
	"/roll [dice notation] - Rolls dice using standard dice notation.",
	"Examples:",
	"/roll d6 - Roll a single 6-sided die",
	"/roll 2d20 - Roll two 20-sided dice",
	"/roll 3d10+5 - Roll three 10-sided dice and add 5",
	"/roll 4d6-2 - Roll four 6-sided dice and subtract 2",
	fmt.Sprintf("Supports %d-%d dice, %d-%d sides, and modifiers from %d to %d.",
		rolldice.MinDice, rolldice.MaxDice, rolldice.MinSides, rolldice.MaxSides, -rolldice.MaxModifier, rolldice.MaxModifier),
	"Common shortcuts: /d4, /d6, /d8, /d10, /d12, /d20, /d100",
}

type Commands struct {
	roller *rolldice.Roller
}

// Register adds the dice commands to reg.
func Register(reg chat.Registrar, roller *rolldice.Roller) *Commands {
	c := &Commands{roller: roller}

	reg.Handle("roll", c.Roll)
	reg.Help("roll", RollHelp...)
	reg.Alias("dice", "roll")
	for _, sides := range Shortcuts {
		reg.Handle(fmt.Sprintf("d%d", sides), c.Shorthand(sides))
	}
	return c
}

// Roll handles /roll <notation>. Bad notation is answered privately; a good
// roll is broadcast to the room.
func (c *Commands) Roll(ctx context.Context, inv chat.Invocation, target string) error {
	if strings.TrimSpace(target) == "" {
		return inv.Parse(ctx, "/help roll")
	}

	line, err := c.roller.Roll(ctx, inv.User(), target)
	if err != nil {
		if rolldice.IsUserError(err) {
			return inv.Reply(ctx, err.Error())
		}
		return err
	}
	return inv.Broadcast(ctx, line)
}

// Shorthand returns the handler for /d<sides> [count].
func (c *Commands) Shorthand(sides int) chat.Handler {
	return func(ctx context.Context, inv chat.Invocation, target string) error {
		count := parseCount(target)
		if err := rolldice.CheckCount(count); err != nil {
			return inv.Reply(ctx, err.Error())
		}
		return inv.Parse(ctx, fmt.Sprintf("/roll %dd%d", count, sides))
	}
}

// parseCount reads the leading integer of s, ignoring anything after it.
// Without one the count is 1.
func parseCount(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}
	v, _ := strconv.ParseInt(s[:end], 10, 0)
	return int(v)
}
