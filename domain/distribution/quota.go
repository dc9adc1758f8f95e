package distribution

// StorageInfo is the Drive storage quota of the authorized account.
// Drive reports a zero limit for accounts without a quota.
type StorageInfo struct {
	LimitBytes int64
	UsedBytes  int64
}

// Unlimited reports whether the account has no storage limit
func (s StorageInfo) Unlimited() bool {
	return s.LimitBytes <= 0
}

// Available returns the free bytes, or -1 when the account is unlimited
func (s StorageInfo) Available() int64 {
	if s.Unlimited() {
		return -1
	}
	if free := s.LimitBytes - s.UsedBytes; free > 0 {
		return free
	}
	return 0
}

// Shortfall returns how many bytes must be freed before n bytes fit
func (s StorageInfo) Shortfall(n int64) int64 {
	if s.Unlimited() {
		return 0
	}
	if missing := n - s.Available(); missing > 0 {
		return missing
	}
	return 0
}

// CleanupResult lists the published videos removed to make room for a new one
type CleanupResult struct {
	DeletedFiles []DeletedFile
	FreedBytes   int64
}

// DeletedFile is one video removed by cleanup
type DeletedFile struct {
	Name string
	Size int64
}
