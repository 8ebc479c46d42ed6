package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
)

// OSNavigator tells the user where to log in and tries to open the page in
// the desktop browser. Failing to launch a browser is not an error; the
// printed URL is enough.
type OSNavigator struct {
	out     io.Writer
	launch  bool
	command func(name string, args ...string) *exec.Cmd
}

func NewOSNavigator(out io.Writer, launch bool) *OSNavigator {
	return &OSNavigator{out: out, launch: launch, command: exec.Command}
}

func (n *OSNavigator) Open(_ context.Context, target string) error {
	if target == "" {
		return fmt.Errorf("navigation target is empty")
	}
	if n.out != nil {
		_, _ = fmt.Fprintf(n.out, "Please log in through the LogBook system: %s\n", target)
	}
	if !n.launch {
		return nil
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = n.command("open", target)
	case "linux":
		cmd = n.command("xdg-open", target)
	default:
		return nil
	}
	if err := cmd.Start(); err != nil {
		return nil
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
