package distribution

import "testing"

func TestStorageInfo_Shortfall(t *testing.T) {
	tests := []struct {
		name  string
		info  StorageInfo
		bytes int64
		want  int64
	}{
		{"fits", StorageInfo{LimitBytes: 100, UsedBytes: 60}, 40, 0},
		{"one byte short", StorageInfo{LimitBytes: 100, UsedBytes: 60}, 41, 1},
		{"over quota already", StorageInfo{LimitBytes: 100, UsedBytes: 120}, 10, 10},
		{"unlimited", StorageInfo{UsedBytes: 1 << 40}, 1 << 40, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Shortfall(tt.bytes); got != tt.want {
				t.Errorf("Shortfall(%d) = %d, want %d", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestStorageInfo_Available(t *testing.T) {
	if got := (StorageInfo{LimitBytes: 100, UsedBytes: 30}).Available(); got != 70 {
		t.Errorf("Available() = %d, want 70", got)
	}
	if got := (StorageInfo{}).Available(); got != -1 {
		t.Errorf("unlimited Available() = %d, want -1", got)
	}
}
