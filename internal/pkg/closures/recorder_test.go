package closures

import "sync"

type recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *recorder) Report(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, msg)
}

func (r *recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

type observation struct {
	factory   string
	operation string
	err       error
}

type observations struct {
	mu  sync.Mutex
	all []observation
}

func (o *observations) Observe(factory, operation string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.all = append(o.all, observation{factory: factory, operation: operation, err: err})
}
