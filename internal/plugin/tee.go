package plugin

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/edirooss/runcc/internal/ansiline"
	"github.com/edirooss/runcc/internal/label"
	"github.com/edirooss/runcc/internal/supervisor"
)

// TeePlugin is the default Plugin: it prefixes every line of a
// command's stdout/stderr with "[label] " and writes it to the host's
// own stdout/stderr, rewriting single-line ANSI cursor escapes so they
// don't fight with the prefix. Exit and spawn-failure events are logged
// to stderr in the same "[label] ..." shape.
type TeePlugin struct {
	log *zap.Logger

	mu   sync.Mutex
	out  *bufio.Writer
	errw *bufio.Writer

	wg sync.WaitGroup
}

// NewTeePlugin constructs a TeePlugin writing to os.Stdout/os.Stderr.
// log receives scanner-failure diagnostics that don't belong on the
// tee'd streams themselves.
func NewTeePlugin(log *zap.Logger) *TeePlugin {
	return &TeePlugin{
		log:  log,
		out:  bufio.NewWriter(os.Stdout),
		errw: bufio.NewWriter(os.Stderr),
	}
}

func (p *TeePlugin) OnSpawned(lbl label.Label, stdout, stderr io.ReadCloser) {
	prefix := "[" + lbl.Display + "] "
	prefixWidth := len(prefix)

	p.wg.Add(2)
	go func() {
		defer p.wg.Done()
		p.drain(stdout, p.out, prefix, prefixWidth, "stdout", lbl)
	}()
	go func() {
		defer p.wg.Done()
		p.drain(stderr, p.errw, prefix, prefixWidth, "stderr", lbl)
	}()
}

func (p *TeePlugin) drain(r io.ReadCloser, w *bufio.Writer, prefix string, prefixWidth int, stream string, lbl label.Label) {
	defer r.Close()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	for sc.Scan() {
		line := ansiline.Rewrite(sc.Text(), prefixWidth)

		p.mu.Lock()
		fmt.Fprintln(w, prefix+line)
		w.Flush()
		p.mu.Unlock()
	}

	if err := sc.Err(); err != nil {
		p.log.Error("failed to read line from child output",
			zap.String("label", lbl.Raw),
			zap.String("stream", stream),
			zap.Error(err))
	}
}

func (p *TeePlugin) OnSpawnFailed(lbl label.Label, err error) {
	p.writeErr(fmt.Sprintf("[%s] failed to start: %s", lbl.Display, err))
}

func (p *TeePlugin) OnExited(lbl label.Label, stopped supervisor.Stopped) {
	status := exitStatusText(stopped.Err)

	killed := ""
	if k := stopped.Killed; k != nil {
		switch k.Classification {
		case supervisor.KillClassificationFailedToKill:
			killed = fmt.Sprintf(" (tried to kill due to %s but failed: %s)", k.Reason, k.Err)
		case supervisor.KillClassificationAlreadyExited:
			killed = fmt.Sprintf(" (already exited before kill due to %s could be delivered)", k.Reason)
		default:
			killed = fmt.Sprintf(" (killed due to %s)", k.Reason)
		}
	}

	p.writeErr(fmt.Sprintf("[%s] exited with status %s%s", lbl.Display, status, killed))
}

func (p *TeePlugin) writeErr(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.errw, line)
	p.errw.Flush()
}

func (p *TeePlugin) Join() {
	p.wg.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out.Flush()
	p.errw.Flush()
}

func exitStatusText(err error) string {
	if err == nil {
		return "code 0"
	}
	type exitCoder interface{ ExitCode() int }
	if ec, ok := err.(exitCoder); ok {
		code := ec.ExitCode()
		if code == -1 {
			return "code None"
		}
		return fmt.Sprintf("code %d", code)
	}
	return "error: " + err.Error()
}
