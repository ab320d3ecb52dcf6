//go:build windows

package repository

import "sync"

var (
	locksMu sync.Mutex
	locks   = map[string]*sync.Mutex{}
)

// lockFile serializes writers inside this process only
func lockFile(path string) (func(), error) {
	locksMu.Lock()
	mu, ok := locks[path]
	if !ok {
		mu = &sync.Mutex{}
		locks[path] = mu
	}
	locksMu.Unlock()

	mu.Lock()
	return mu.Unlock, nil
}
