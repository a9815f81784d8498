package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// maxStdinMessage caps a message read from a pipe.
const maxStdinMessage = 1 << 20

func newPostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a message into Google Chat",
		Example: `  gchat-notify post --webhook-url 'https://chat.googleapis.com/v1/spaces/...' --message 'Build succeeded'
  git log -1 --format=%s | gchat-notify post --message -`,
		Args: cobra.NoArgs,
		RunE: runPost,
	}
	cmd.Flags().String("webhook-url", "", "Google Chat webhook url (generated via `Configure webhooks`)")
	cmd.Flags().StringP("message", "m", "", "the message to post; '-' reads it from stdin")
	cmd.Flags().Duration("timeout", 0, "HTTP round trip timeout (default from config, 15s)")
	return cmd
}

func runPost(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.shutdown()

	message := a.cfg.Notify.Message
	if message == "-" {
		in := cmd.InOrStdin()
		message, err = readMessage(in, isTerminal(in), cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}
	}

	return post(ctx, a, message)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// post sends the message and maps a non-success outcome to an error.
func post(ctx context.Context, a *app, message string) error {
	res, err := a.svc.Post(ctx, a.cfg.Notify.WebhookURL, message)
	if err != nil {
		return err
	}
	return res.Err()
}

// readMessage reads the message body for "--message -". On a terminal the
// user is prompted for a single line; from a pipe the whole input is used
// with one trailing newline removed.
func readMessage(r io.Reader, interactive bool, prompt io.Writer) (string, error) {
	if interactive {
		fmt.Fprint(prompt, "Message: ")
		line, err := bufio.NewReader(r).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	data, err := io.ReadAll(io.LimitReader(r, maxStdinMessage))
	if err != nil {
		return "", err
	}
	msg := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(msg, "\r"), nil
}
