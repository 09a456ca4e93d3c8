package game

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"sync"
	"time"
)

// Profiler captures a CPU profile when a frame update runs over budget.
// Captures are rate-limited so one slow stretch produces one profile, not
// hundreds.
type Profiler struct {
	mu          sync.Mutex
	capturing   bool
	lastCapture time.Time

	dir      string
	budget   time.Duration
	cooldown time.Duration
	duration time.Duration
}

// NewProfiler creates a profiler writing into dir. budget is the frame
// time that counts as slow.
func NewProfiler(dir string, budget time.Duration) *Profiler {
	os.MkdirAll(dir, 0755)
	return &Profiler{
		dir:      dir,
		budget:   budget,
		cooldown: 10 * time.Second,
		duration: 5 * time.Second,
	}
}

// Observe feeds one frame's update duration. A frame over budget starts
// an asynchronous capture unless one is running or on cooldown.
func (p *Profiler) Observe(frame time.Duration) {
	if frame <= p.budget {
		return
	}

	p.mu.Lock()
	if p.capturing || time.Since(p.lastCapture) < p.cooldown {
		p.mu.Unlock()
		return
	}
	p.capturing = true
	p.lastCapture = time.Now()
	p.mu.Unlock()

	go p.capture(frame)
}

// IsCapturing reports whether a capture is in progress.
func (p *Profiler) IsCapturing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.capturing
}

// capture records a CPU profile for the configured duration.
func (p *Profiler) capture(trigger time.Duration) {
	defer func() {
		p.mu.Lock()
		p.capturing = false
		p.mu.Unlock()
	}()

	name := fmt.Sprintf("slow-frame-%s.cpu.prof", time.Now().Format("20060102-150405"))
	path := filepath.Join(p.dir, name)

	file, err := os.Create(path)
	if err != nil {
		log.Printf("[Profiler] create %s: %v", path, err)
		return
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		log.Printf("[Profiler] start profile: %v", err)
		return
	}
	time.Sleep(p.duration)
	pprof.StopCPUProfile()

	log.Printf("[Profiler] frame took %v (budget %v), profile saved to %s", trigger, p.budget, path)
	log.Printf("[Profiler] inspect with: go tool pprof -http=:8080 %s", path)
}
