package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rlindsey28/chat-dice/chat"
	"github.com/rlindsey28/chat-dice/dicecmd"
	"github.com/rlindsey28/chat-dice/logger"
	"github.com/rlindsey28/chat-dice/rolldice"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exampleUsage = strings.TrimSpace(`
  dicectl roll 3d10+5
  dicectl d20 2 --user Alice
  dicectl exec "/help roll"
  dicectl repl --room tabletop
`)

// consoleSink prints broadcasts the way a room would show them.
type consoleSink struct {
	out io.Writer
}

func (s consoleSink) Broadcast(_ context.Context, b chat.Broadcast) error {
	_, err := fmt.Fprintf(s.out, "[%s] %s\n", b.Room, b.Line)
	return err
}

type cli struct {
	out, errOut io.Writer
	source      rolldice.Source

	user     string
	room     string
	logLevel string
}

func newRootCmd(out, errOut io.Writer, src rolldice.Source) *cobra.Command {
	c := &cli{out: out, errOut: errOut, source: src}

	root := &cobra.Command{
		Use:           "dicectl",
		Short:         "Run chat dice commands against a local console room",
		Example:       exampleUsage,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init("dicectl", c.logLevel)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&c.user, "user", "u", "You", "display name used in broadcasts")
	flags.StringVarP(&c.room, "room", "r", "console", "room the commands are issued in")
	flags.StringVar(&c.logLevel, "log-level", "error", "log level (debug, info, warn, error)")

	root.AddCommand(&cobra.Command{
		Use:   "roll <notation>",
		Short: "Roll dice notation such as 2d6+3",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context(), "/roll "+args[0])
		},
	})
	for _, sides := range dicecmd.Shortcuts {
		root.AddCommand(&cobra.Command{
			Use:   fmt.Sprintf("d%d [count]", sides),
			Short: fmt.Sprintf("Roll %d-sided dice", sides),
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.run(cmd.Context(), "/"+cmd.Name()+" "+strings.Join(args, " "))
			},
		})
	}
	root.AddCommand(&cobra.Command{
		Use:   "exec <command line>",
		Short: "Run a raw chat command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context(), strings.Join(args, " "))
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Read chat command lines from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			router := c.router()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if err := c.dispatch(cmd.Context(), router, line); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	})

	return root
}

func (c *cli) router() *chat.Router {
	router := chat.NewRouter(consoleSink{out: c.out})
	dicecmd.Register(router, rolldice.NewRoller(c.source))
	return router
}

func (c *cli) run(ctx context.Context, line string) error {
	return c.dispatch(ctx, c.router(), line)
}

func (c *cli) dispatch(ctx context.Context, router *chat.Router, line string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	transcript, err := router.Dispatch(ctx, chat.Caller{User: c.user, Room: c.room}, line)
	for _, reply := range transcript.Replies {
		fmt.Fprintln(c.errOut, reply)
	}
	if err != nil {
		logger.Get().Error("command failed", zap.String("line", line), zap.Error(err))
		return err
	}
	return nil
}
