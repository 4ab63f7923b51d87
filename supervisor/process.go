package supervisor

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/rotisserie/eris"
)

const stopGrace = 5 * time.Second

// Service is one child server the supervisor keeps alive.
type Service struct {
	Name string
	Mode string
	URL  string
}

// Process is a running child.
type Process interface {
	// Wait blocks until the child exits.
	Wait() error
	// Stop asks the child to exit and kills it after a grace period.
	Stop()
}

// StartFunc launches the child for svc.
type StartFunc func(ctx context.Context, svc Service) (Process, error)

// ExecStarter re-executes binary with -mode=<svc.Mode>, passing the
// supervisor's environment and output through.
func ExecStarter(binary string) StartFunc {
	return func(_ context.Context, svc Service) (Process, error) {
		cmd := exec.Command(binary, "-mode="+svc.Mode)
		cmd.Env = os.Environ()
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Start(); err != nil {
			return nil, eris.Wrapf(err, "start %s", svc.Name)
		}

		p := &execProcess{cmd: cmd, done: make(chan struct{})}
		go func() {
			p.err = cmd.Wait()
			close(p.done)
		}()
		return p, nil
	}
}

type execProcess struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

func (p *execProcess) Wait() error {
	<-p.done
	return p.err
}

func (p *execProcess) Stop() {
	select {
	case <-p.done:
		return
	default:
	}
	_ = p.cmd.Process.Signal(os.Interrupt)
	select {
	case <-p.done:
	case <-time.After(stopGrace):
		_ = p.cmd.Process.Kill()
		<-p.done
	}
}
