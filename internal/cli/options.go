package cli

import (
	"fmt"
	"io"
	"os"
)

// Window managers accepted by --wm.
const (
	WMI3   = "i3"
	WMSway = "sway"
)

// Options contains the configuration shared by every command.
type Options struct {
	ConfigPath      string
	BaseDir         string
	WM              string
	StateDir        string
	RedisAddr       string
	MetricsTextfile string
	Debug           bool
	DryRun          bool

	// Out receives the progress lines. Defaults to os.Stdout.
	Out io.Writer
	// Color forces colored markers; by default they are colored on a TTY.
	Color *bool
}

func (o Options) validate() error {
	switch o.WM {
	case "", WMI3, WMSway:
		return nil
	default:
		return fmt.Errorf("unknown window manager %q (supported: %s, %s)", o.WM, WMI3, WMSway)
	}
}

func (o Options) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}
