package generator

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// Transaction journals the paths created by one or more Execute calls so a
// failed run can remove what it wrote.
type Transaction struct {
	mu        sync.Mutex
	created   []string
	committed bool
}

// NewTransaction creates an empty journal.
func NewTransaction() *Transaction {
	return &Transaction{}
}

// Track records path as created by this transaction.
func (t *Transaction) Track(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.created = append(t.created, path)
}

// Created returns the journaled paths in creation order.
func (t *Transaction) Created() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.created...)
}

// Execute runs ops through Execute, journaling every target that did not
// exist beforehand. Dry runs journal nothing.
func (t *Transaction) Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if t.isCommitted() {
		return fmt.Errorf("transaction already committed")
	}

	if !opts.DryRun {
		for _, op := range ops {
			target, ok := op.(Targeter)
			if !ok {
				continue
			}
			if _, err := os.Stat(target.Target()); os.IsNotExist(err) {
				t.Track(target.Target())
			}
		}
	}

	return Execute(ctx, ops, opts)
}

// Commit ends the transaction; later rollbacks are no-ops.
func (t *Transaction) Commit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.committed = true
}

// Rollback removes journaled paths in reverse order. Errors for individual
// paths are collected and the first one is returned after trying them all.
func (t *Transaction) Rollback() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.committed {
		return nil
	}

	var firstErr error
	for i := len(t.created) - 1; i >= 0; i-- {
		if err := os.RemoveAll(t.created[i]); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	t.created = nil
	return firstErr
}

func (t *Transaction) isCommitted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.committed
}
