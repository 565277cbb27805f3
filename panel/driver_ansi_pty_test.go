//go:build !windows

package panel

import (
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
)

// TestAnsiDriverOnRealPty exercises the escape-code backend against a real
// pseudo-terminal: raw mode, size reporting and run output all go through
// the kernel tty layer instead of a plain buffer.
func TestAnsiDriverOnRealPty(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	if err := pty.Setsize(ptmx, &pty.Winsize{Cols: 40, Rows: 12}); err != nil {
		t.Fatalf("Setsize: %v", err)
	}

	d := NewAnsiDriverFrom(tty, tty)
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer d.Fini()

	if cols, rows := d.Size(); cols != 40 || rows != 12 {
		t.Fatalf("size through pty = %dx%d, want 40x12", cols, rows)
	}

	output := make(chan string, 1)
	go func() {
		buf := make([]byte, 4096)
		var sb strings.Builder
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			ptmx.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
			n, err := ptmx.Read(buf)
			if n > 0 {
				sb.Write(buf[:n])
				if strings.Contains(sb.String(), "pty run") {
					break
				}
			}
			if err != nil && !strings.Contains(err.Error(), "timeout") {
				break
			}
		}
		output <- sb.String()
	}()

	d.WriteRun(3, 4, "pty run", ColorBrightGreen, ColorBlack)
	d.Flush()

	got := <-output
	if !strings.Contains(got, "pty run") {
		t.Fatalf("run text never reached the pty master: %q", got)
	}
	if !strings.Contains(got, "\x1b[4;5H") {
		t.Fatalf("cursor move missing from pty output: %q", got)
	}
}
