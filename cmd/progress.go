package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
	"github.com/mattn/go-isatty"
)

const progressTick = 300 * time.Millisecond

// progressPrinter redraws a single status line while a scan runs. It
// implements scan.Observer.
type progressPrinter struct {
	out   io.Writer
	total int
	name  string

	mu      sync.Mutex
	counts  map[check.Status]int
	current string

	updates  chan struct{}
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
}

func newProgressPrinter(out io.Writer, total int, name string) *progressPrinter {
	if total <= 0 {
		total = 1
	}
	if out == nil {
		out = os.Stdout
	}
	return &progressPrinter{
		out:     out,
		total:   total,
		name:    name,
		counts:  make(map[check.Status]int),
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
}

func (p *progressPrinter) Start() {
	go p.loop()
}

func (p *progressPrinter) OnResult(_, _ int, result *check.Result) {
	p.mu.Lock()
	p.counts[result.Status()]++
	p.current = result.Name()
	p.mu.Unlock()

	select {
	case p.updates <- struct{}{}:
	default:
	}
}

func (p *progressPrinter) OnComplete(*check.Report, error) {}

// Stop halts the redraw loop and prints the final line
func (p *progressPrinter) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		<-p.exited
		p.mu.Lock()
		p.current = ""
		p.mu.Unlock()
		fmt.Fprintf(p.out, "\r%s\r", strings.Repeat(" ", 100))
		p.print()
		fmt.Fprintln(p.out)
	})
}

func (p *progressPrinter) loop() {
	defer close(p.exited)
	ticker := time.NewTicker(progressTick)
	defer ticker.Stop()

	for {
		select {
		case <-p.updates:
			p.print()
		case <-ticker.C:
			p.print()
		case <-p.done:
			return
		}
	}
}

func (p *progressPrinter) print() {
	p.mu.Lock()
	pass := p.counts[check.StatusPass]
	warn := p.counts[check.StatusWarning]
	fail := p.counts[check.StatusFail]
	unknown := p.counts[check.StatusUnknown]
	current := p.current
	p.mu.Unlock()

	completed := pass + warn + fail + unknown
	if completed > p.total {
		p.total = completed
	}
	percent := (float64(completed) / float64(p.total)) * 100

	line := fmt.Sprintf("\r[%s] Progress: %d/%d (%.1f%%) Pass:%d Warn:%d Fail:%d Unknown:%d",
		p.name, completed, p.total, percent, pass, warn, fail, unknown)
	if current != "" {
		line += " " + colorMuted(current)
	}
	fmt.Fprint(p.out, line)
}

// progressEnabled honours an explicit --progress, otherwise shows progress
// only when stdout is a terminal
func progressEnabled(explicit, value bool) bool {
	if explicit {
		return value
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
