package service

import "sync"

// projectLocks serializes mutations per project. The milestone ledger, escrow
// account and discrepancy register of one project form a single consistency
// domain: a verification must never race a hold toggle or another transition
// on the same project. Operations on different projects proceed in parallel.
type projectLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewProjectLocks creates an empty lock table. All services touching one
// project's ledger must share the same instance.
func NewProjectLocks() *projectLocks {
	return &projectLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the exclusive lock for a project, creating it on first use.
// The returned function releases it.
func (p *projectLocks) Lock(projectID string) func() {
	p.mu.Lock()
	l, ok := p.locks[projectID]
	if !ok {
		l = &sync.Mutex{}
		p.locks[projectID] = l
	}
	p.mu.Unlock()

	l.Lock()
	return l.Unlock
}
