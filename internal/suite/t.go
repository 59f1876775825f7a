package suite

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

// T is handed to each test body. Fatal methods stop the body the way *testing.T does, so a
// body must not call them from goroutines it starts.
type T struct {
	name string

	mu       sync.Mutex
	failed   bool
	failures []string
	logs     []string
}

func newT(name string) *T {
	return &T{name: name}
}

// Name returns the node id of the running item.
func (t *T) Name() string {
	return t.name
}

// Log records a message shown with the failure details.
func (t *T) Log(args ...interface{}) {
	t.addLog(fmt.Sprint(args...))
}

// Logf records a formatted message shown with the failure details.
func (t *T) Logf(format string, args ...interface{}) {
	t.addLog(fmt.Sprintf(format, args...))
}

// Error marks the item failed and records the message.
func (t *T) Error(args ...interface{}) {
	t.fail(fmt.Sprint(args...))
}

// Errorf marks the item failed and records the formatted message.
func (t *T) Errorf(format string, args ...interface{}) {
	t.fail(fmt.Sprintf(format, args...))
}

// Fatal is Error followed by FailNow.
func (t *T) Fatal(args ...interface{}) {
	t.fail(fmt.Sprint(args...))
	t.FailNow()
}

// Fatalf is Errorf followed by FailNow.
func (t *T) Fatalf(format string, args ...interface{}) {
	t.fail(fmt.Sprintf(format, args...))
	t.FailNow()
}

// Fail marks the item failed without stopping it.
func (t *T) Fail() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.failed = true
}

// FailNow marks the item failed and stops its body.
func (t *T) FailNow() {
	t.Fail()
	runtime.Goexit()
}

// Failed reports whether the item has failed.
func (t *T) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.failed
}

func (t *T) fail(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.failed = true
	t.failures = append(t.failures, msg)
}

func (t *T) addLog(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.logs = append(t.logs, msg)
}

// crash returns the first line of the first failure.
func (t *T) crash() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.failures) == 0 {
		if t.failed {
			return "failed"
		}

		return ""
	}

	line, _, _ := strings.Cut(t.failures[0], "\n")

	return line
}

// longrepr renders all failures followed by the log.
func (t *T) longrepr() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder

	for _, f := range t.failures {
		b.WriteString("E   " + strings.ReplaceAll(f, "\n", "\nE   ") + "\n")
	}

	if len(t.logs) > 0 {
		b.WriteString("--- log ---\n")

		for _, l := range t.logs {
			b.WriteString(l + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// runItem executes the body of item on its own goroutine so FailNow can stop it.
func runItem(item *Item) (*T, time.Duration) {
	var (
		t     = newT(item.NodeID)
		done  = make(chan struct{})
		start = time.Now()
	)

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				t.fail(fmt.Sprintf("panic: %v", r))
			}
		}()

		item.Func.Body(t, item.Args)
	}()

	<-done

	return t, time.Since(start)
}
