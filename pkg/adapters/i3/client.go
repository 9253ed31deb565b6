package i3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/aretw0/envswitch/pkg/domain"
)

// DefaultBinary is the IPC client shipped with i3.
// swaymsg speaks the same protocol and can be used instead.
const DefaultBinary = "i3-msg"

// ExecFunc runs a command and returns its captured stdout and stderr.
type ExecFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// Client implements ports.WorkspaceClient by shelling out to i3-msg.
// Every request is a short-lived process; no connection is kept open.
type Client struct {
	binary string
	socket string
	exec   ExecFunc
}

// Option configures the client.
type Option func(*Client)

// WithBinary selects the IPC client executable (e.g. "swaymsg").
func WithBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithSocket points the client at an explicit IPC socket path.
func WithSocket(path string) Option {
	return func(c *Client) {
		c.socket = path
	}
}

// WithExec replaces the process launcher (used by tests).
func WithExec(fn ExecFunc) Option {
	return func(c *Client) {
		c.exec = fn
	}
}

// New creates a new IPC client.
func New(opts ...Option) *Client {
	c := &Client{
		binary: DefaultBinary,
		exec:   runProcess,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type workspaceReply struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Focused bool   `json:"focused"`
}

// GetWorkspaces runs "get_workspaces" and decodes the reply.
func (c *Client) GetWorkspaces(ctx context.Context) ([]domain.LiveWorkspace, error) {
	stdout, stderr, err := c.exec(ctx, c.binary, c.args("-t", "get_workspaces")...)
	if err != nil {
		return nil, fmt.Errorf("get_workspaces failed: %v. Stderr: %s", err, strings.TrimSpace(string(stderr)))
	}

	var reply []workspaceReply
	if err := json.Unmarshal(stdout, &reply); err != nil {
		return nil, fmt.Errorf("failed to decode get_workspaces reply: %w", err)
	}

	workspaces := make([]domain.LiveWorkspace, 0, len(reply))
	for _, ws := range reply {
		workspaces = append(workspaces, domain.LiveWorkspace{
			Name:    ws.Name,
			Visible: ws.Visible,
			Focused: ws.Focused,
		})
	}
	return workspaces, nil
}

type commandReply struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// RenameWorkspace runs `rename workspace "<from>" to "<to>"`.
// The command is passed as a single argument (no shell), with both names
// quoted for the i3 command parser.
func (c *Client) RenameWorkspace(ctx context.Context, from, to string) error {
	command := RenameCommand(from, to)
	stdout, stderr, err := c.exec(ctx, c.binary, c.args("-t", "command", command)...)

	replyErr := checkCommandReply(stdout)
	if err != nil {
		detail := strings.TrimSpace(string(stderr))
		if replyErr != nil {
			detail = replyErr.Error()
		}
		return fmt.Errorf("%w: %s -> %s: %v (%s)", domain.ErrRenameFailed, from, to, err, detail)
	}
	if replyErr != nil {
		return fmt.Errorf("%w: %s -> %s: %v", domain.ErrRenameFailed, from, to, replyErr)
	}
	return nil
}

func (c *Client) args(args ...string) []string {
	if c.socket == "" {
		return args
	}
	return append([]string{"-s", c.socket}, args...)
}

// RenameCommand builds the i3 command for renaming a workspace.
func RenameCommand(from, to string) string {
	return fmt.Sprintf("rename workspace %s to %s", Quote(from), Quote(to))
}

// Quote wraps s in double quotes, escaping backslashes and double quotes
// the way the i3 command parser unescapes them.
func Quote(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}

// checkCommandReply inspects a `[{"success": ...}]` reply.
// An empty or non-JSON reply is not an error; the exit status decides then.
func checkCommandReply(stdout []byte) error {
	trimmed := bytes.TrimSpace(stdout)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}

	var replies []commandReply
	if err := json.Unmarshal(trimmed, &replies); err != nil {
		return nil
	}
	for _, r := range replies {
		if !r.Success {
			if r.Error == "" {
				return errors.New("command rejected")
			}
			return fmt.Errorf("command rejected: %s", r.Error)
		}
	}
	return nil
}

func runProcess(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
