//go:build !linux

package cmdbuild

import "os/exec"

// setSysProcAttr is a no-op on platforms without process-group Setpgid
// semantics; supervisor.killProcessGroup falls back to killing just the
// direct child there.
func setSysProcAttr(cmd *exec.Cmd) {}
