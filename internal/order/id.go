package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	idPrefix      = "ORD"
	idSequenceN   = 100000
	idRandomTries = 10
)

// randomSequence is swapped in tests.
var randomSequence = func() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(idSequenceN))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// GenerateID returns an id of the form ORD-<year>-<5 digits> that is not in
// existing. Random sequences are tried first; after repeated collisions the
// next free sequence after the highest one of that year is used.
// An empty string means every sequence of the year is taken.
func GenerateID(now time.Time, existing []string) string {
	year := now.Year()
	taken := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		taken[id] = struct{}{}
	}

	for try := 0; try < idRandomTries; try++ {
		n, err := randomSequence()
		if err != nil {
			break
		}
		id := formatID(year, n)
		if _, dup := taken[id]; !dup {
			return id
		}
	}

	start := maxSequence(year, existing) + 1
	for i := 0; i < idSequenceN; i++ {
		id := formatID(year, (start+i)%idSequenceN)
		if _, dup := taken[id]; !dup {
			return id
		}
	}
	return ""
}

func formatID(year, seq int) string {
	return fmt.Sprintf("%s-%d-%05d", idPrefix, year, seq)
}

func maxSequence(year int, ids []string) int {
	prefix := fmt.Sprintf("%s-%d-", idPrefix, year)
	highest := -1
	for _, id := range ids {
		rest, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}
