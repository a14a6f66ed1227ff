// Package fleet runs a set of commands concurrently as a single unit:
// it spawns every command, applies a kill policy whenever one of them
// exits, and lets a caller wait for all of them to finish and collect a
// combined report. It is the concurrency core the CLI builds on —
// everything else (config parsing, output formatting) sits around it.
package fleet

import (
	"os/exec"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/edirooss/runcc/internal/label"
	"github.com/edirooss/runcc/internal/plugin"
	"github.com/edirooss/runcc/internal/supervisor"
)

// Command is one member of a fleet: the process to run and the label
// it should be reported under.
type Command struct {
	Cmd   *exec.Cmd
	Label label.Label
}

type childStateKind int

const (
	childProcessing childStateKind = iota
	childSpawned
	childStopped
)

// child tracks one command's progression through processing → spawned
// → stopped. The kill-policy goroutine reads killer/kind under mu to
// decide whether it may still request a kill; only the command's own
// goroutine ever writes these fields, and always under mu. A kill asked
// for while the child is still processing is kept in pending (written
// by the policy goroutine under mu) and delivered once it has spawned.
type child struct {
	mu      sync.Mutex
	kind    childStateKind
	killer  *supervisor.Killer
	pending *supervisor.Reason
	stopped supervisor.Stopped
}

func (c *child) transitionToSpawned(k *supervisor.Killer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kind != childProcessing {
		panic("fleet: child spawned twice")
	}
	c.kind = childSpawned
	c.killer = k
	if c.pending != nil {
		k.Request(*c.pending)
	}
}

func (c *child) transitionToStopped(stopped supervisor.Stopped) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kind == childStopped {
		panic("fleet: child stopped twice")
	}
	c.kind = childStopped
	c.killer = nil
	c.stopped = stopped
}

func (c *child) requestKillIfSpawned(reason supervisor.Reason) {
	c.mu.Lock()
	k, spawned := c.killer, c.kind == childSpawned
	if c.kind == childProcessing && c.pending == nil {
		c.pending = &reason
	}
	c.mu.Unlock()
	if spawned {
		k.Request(reason)
	}
}

type mailboxMsg struct {
	killAll bool
	stopped supervisor.Stopped
}

// Report summarizes how a finished fleet's commands exited.
type Report struct {
	Total      int
	Successful int
}

// Killer lets any goroutine holding a reference ask a fleet to kill
// every one of its still-running commands, exactly once.
type Killer struct {
	once    sync.Once
	mailbox chan<- mailboxMsg
}

// KillAll requests that every running command in the fleet be killed.
// Safe to call more than once or from multiple goroutines; only the
// first call has any effect.
func (k *Killer) KillAll() {
	k.once.Do(func() {
		k.mailbox <- mailboxMsg{killAll: true}
	})
}

// Fleet is a set of commands spawned together and supervised as a
// single unit under one KillBehavior.
type Fleet struct {
	children []*child
	mailbox  chan mailboxMsg
	killer   *Killer
	plugin   plugin.Plugin

	eg         errgroup.Group // one Go call per command goroutine
	policyDone chan struct{}
	waitOnce   sync.Once
}

// Spawn starts every command in cmds concurrently and begins enforcing
// behavior as each one exits. It returns immediately; use Wait or
// WaitStopped to block for completion.
func Spawn(cmds []Command, behavior KillBehavior, p plugin.Plugin) *Fleet {
	n := len(cmds)
	mailboxCap := n
	if mailboxCap > 1 {
		mailboxCap = 1
	}

	mailbox := make(chan mailboxMsg, mailboxCap)

	f := &Fleet{
		children:   make([]*child, n),
		mailbox:    mailbox,
		killer:     &Killer{mailbox: mailbox},
		plugin:     p,
		policyDone: make(chan struct{}),
	}

	for i, c := range cmds {
		f.children[i] = &child{}
		i, c := i, c
		f.eg.Go(func() error {
			f.runChild(i, c)
			return nil
		})
	}

	go f.runPolicy(behavior)

	return f
}

func (f *Fleet) runChild(i int, c Command) {
	ch := f.children[i]

	spawned, stdout, stderr, err := supervisor.Spawn(c.Cmd, c.Label)
	if err != nil {
		stopped := supervisor.Stopped{Label: c.Label, Err: err}
		ch.transitionToStopped(stopped)
		f.plugin.OnSpawnFailed(c.Label, err)
		f.mailbox <- mailboxMsg{stopped: stopped}
		return
	}

	ch.transitionToSpawned(spawned.Killer())
	f.plugin.OnSpawned(c.Label, stdout, stderr)

	stopped := spawned.Join()
	ch.transitionToStopped(stopped)
	f.plugin.OnExited(c.Label, stopped)
	f.mailbox <- mailboxMsg{stopped: stopped}
}

func (f *Fleet) runPolicy(behavior KillBehavior) {
	defer close(f.policyDone)

	n := len(f.children)
	exited := 0
	killTriggered := false

	for exited < n {
		msg := <-f.mailbox

		if msg.killAll {
			if !killTriggered {
				killTriggered = true
				f.killAllSpawned(supervisor.Reason{Kind: supervisor.ReasonSignal})
			}
			continue
		}

		exited++
		if !killTriggered && behavior.shouldKillAll(msg.stopped) {
			killTriggered = true
			stopped := msg.stopped
			f.killAllSpawned(supervisor.Reason{Kind: supervisor.ReasonOtherExited, Other: &stopped})
		}
	}
}

func (f *Fleet) killAllSpawned(reason supervisor.Reason) {
	for _, c := range f.children {
		c.requestKillIfSpawned(reason)
	}
}

// ShareKiller returns a handle any goroutine can use to kill every
// command in the fleet, e.g. from a context.Context cancellation or an
// OS signal handler.
func (f *Fleet) ShareKiller() *Killer { return f.killer }

// Wait blocks until every command has exited and any plugin background
// work has finished, then returns a summary report. Safe to call more
// than once; later calls return the same result without re-waiting.
// It panics if any command is not in its stopped state by then.
func (f *Fleet) Wait() Report {
	f.waitOnce.Do(func() {
		f.eg.Wait()
		<-f.policyDone
		f.plugin.Join()
		for _, c := range f.children {
			c.mu.Lock()
			kind := c.kind
			c.mu.Unlock()
			if kind != childStopped {
				panic("fleet: command not stopped after Wait")
			}
		}
	})

	total := len(f.children)
	successful := 0
	for _, c := range f.children {
		if c.stopped.Err == nil {
			successful++
		}
	}
	return Report{Total: total, Successful: successful}
}

// WaitStopped blocks like Wait, then returns every command's terminal
// record in fleet order.
func (f *Fleet) WaitStopped() []supervisor.Stopped {
	f.Wait()
	out := make([]supervisor.Stopped, len(f.children))
	for i, c := range f.children {
		out[i] = c.stopped
	}
	return out
}
