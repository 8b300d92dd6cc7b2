package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	ipcDialTimeout        = 250 * time.Millisecond
	ipcRetryInterval      = 50 * time.Millisecond
	defaultStartupTimeout = 2 * time.Second
)

// ErrPlayerNotFound is returned by Lookup when the player binary is not on PATH.
var ErrPlayerNotFound = errors.New("player not found")

// Process is a running player instance.
type Process interface {
	Kill() error
	Wait() error
}

// LaunchFunc starts the player binary.
type LaunchFunc func(name string, args ...string) (Process, error)

// SendFunc delivers one IPC command to the player listening on socket.
type SendFunc func(socket string, command []string) error

// Options configures an MPV player. Zero values fall back to defaults.
type Options struct {
	Command   string
	Args      []string
	SocketDir string
	// StartupTimeout is how long a newly started player may take to open its IPC socket.
	StartupTimeout time.Duration
	Launch         LaunchFunc
	Send           SendFunc
}

// MPV plays previews in a single mpv window. A new clip replaces the current one over
// mpv's JSON IPC socket; when no player is reachable a fresh process is started.
type MPV struct {
	command        string
	args           []string
	socket         string
	startupTimeout time.Duration
	launch         LaunchFunc
	send           SendFunc

	mu        sync.Mutex
	proc      Process
	exited    chan struct{}
	startedAt time.Time
}

// NewMPV creates a player. Nothing is started until the first PlayMedia.
func NewMPV(opts Options) *MPV {
	p := &MPV{
		command:        opts.Command,
		args:           opts.Args,
		startupTimeout: opts.StartupTimeout,
		launch:         opts.Launch,
		send:           opts.Send,
	}
	if p.command == "" {
		p.command = "mpv"
	}
	if p.startupTimeout <= 0 {
		p.startupTimeout = defaultStartupTimeout
	}
	dir := opts.SocketDir
	if dir == "" {
		dir = os.TempDir()
	}
	p.socket = filepath.Join(dir, "tv-guide-"+uuid.NewString()+".sock")
	if p.launch == nil {
		p.launch = launchProcess
	}
	if p.send == nil {
		p.send = sendIPC
	}
	return p
}

// Lookup resolves command on PATH.
func Lookup(command string) (string, error) {
	path, err := exec.LookPath(command)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrPlayerNotFound, command, err)
	}
	return path, nil
}

// Socket returns the IPC socket path of this session.
func (p *MPV) Socket() string { return p.socket }

// PlayMedia replaces the current preview with path. Failures are logged, not returned.
func (p *MPV) PlayMedia(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.runningLocked() {
		err := p.replaceLocked(path)
		if err == nil {
			logrus.Debugf("preview replaced with %s", path)
			return
		}
		logrus.Debugf("mpv ipc failed, restarting player: %v", err)
		p.stopLocked()
	}

	args := append([]string{}, p.args...)
	args = append(args, "--input-ipc-server="+p.socket, path)
	proc, err := p.launch(p.command, args...)
	if err != nil {
		logrus.Warnf("starting %s failed: %v", p.command, err)
		return
	}
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		if err := proc.Wait(); err != nil {
			logrus.Debugf("%s exited: %v", p.command, err)
		}
	}()
	p.proc, p.exited, p.startedAt = proc, exited, time.Now()
	logrus.Debugf("preview started with %s", path)
}

// replaceLocked sends loadfile to the running player. A player still inside its
// startup window may not have opened the socket yet, so the send is retried until
// the window closes or the player exits.
func (p *MPV) replaceLocked(path string) error {
	command := []string{"loadfile", path, "replace"}
	deadline := p.startedAt.Add(p.startupTimeout)
	for {
		err := p.send(p.socket, command)
		if err == nil || !time.Now().Before(deadline) {
			return err
		}
		select {
		case <-p.exited:
			return err
		case <-time.After(ipcRetryInterval):
		}
	}
}

// Close stops the player and removes its socket.
func (p *MPV) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	if err := os.Remove(p.socket); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", p.socket, err)
	}
	return nil
}

func (p *MPV) runningLocked() bool {
	if p.proc == nil {
		return false
	}
	select {
	case <-p.exited:
		p.proc, p.exited = nil, nil
		return false
	default:
		return true
	}
}

func (p *MPV) stopLocked() {
	if p.proc == nil {
		return
	}
	if err := p.proc.Kill(); err != nil {
		logrus.Debugf("stopping %s: %v", p.command, err)
	}
	<-p.exited
	p.proc, p.exited = nil, nil
}

type execProcess struct{ cmd *exec.Cmd }

func (e execProcess) Kill() error { return e.cmd.Process.Kill() }
func (e execProcess) Wait() error { return e.cmd.Wait() }

func launchProcess(name string, args ...string) (Process, error) {
	//nolint:gosec // the player command comes from local configuration.
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", name, err)
	}
	return execProcess{cmd: cmd}, nil
}

type ipcCommand struct {
	Command []string `json:"command"`
}

func sendIPC(socket string, command []string) error {
	conn, err := net.DialTimeout("unix", socket, ipcDialTimeout)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", socket, err)
	}
	defer conn.Close()
	_ = conn.SetWriteDeadline(time.Now().Add(ipcDialTimeout))

	payload, err := json.Marshal(ipcCommand{Command: command})
	if err != nil {
		return err
	}
	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("writing to %s: %w", socket, err)
	}
	return nil
}

// Nop records nothing and plays nothing; used when video is disabled.
type Nop struct{}

// PlayMedia only logs the request.
func (Nop) PlayMedia(path string) { logrus.Debugf("preview disabled, skipping %s", path) }

// Close does nothing.
func (Nop) Close() error { return nil }
