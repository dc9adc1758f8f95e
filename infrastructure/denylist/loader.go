package denylist

import (
	"bufio"
	"fmt"
	"os"

	"video-censor/domain/censor"
)

// Load reads a newline-delimited denylist file. Blank lines are ignored so a
// trailing newline never produces an entry that matches every word.
func Load(path string) (censor.Denylist, error) {
	f, err := os.Open(path)
	if err != nil {
		return censor.Denylist{}, fmt.Errorf("failed to open denylist: %w", err)
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		entries = append(entries, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return censor.Denylist{}, fmt.Errorf("failed to read denylist: %w", err)
	}

	list := censor.NewDenylist(entries)
	if list.Len() == 0 {
		return censor.Denylist{}, fmt.Errorf("denylist %s has no entries", path)
	}
	return list, nil
}
