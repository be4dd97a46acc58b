//go:build !unix

package repository

// lockFile is a no-op where flock is unavailable; the in-process mutex in
// FileRepository.Update still serializes writers of this process.
func lockFile(path string) (func(), error) {
	return func() {}, nil
}
