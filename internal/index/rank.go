package index

import (
	"strings"
	"time"

	"quicksearch/internal/domain"
)

const (
	fourYears         = 4 * 365.25 * 24 * time.Hour
	minimumSizeAmount = 100 // bytes

	exactMatch          = 500
	subStringEarlyMax   = 325
	recentlyModifiedMax = 250.0
	notDeeplyNestedMax  = 150
	lengthDifferenceMax = 125.0
	inDefaultDirs       = 75
	minimumSize         = 25
)

// rankedEntry is a matched entry with its score
type rankedEntry struct {
	entry  domain.Entry
	points int
}

// score rates a match. matchIndex is where the query starts inside the name.
func score(e domain.Entry, name string, matchIndex int, defaultRoots []string, now time.Time) int {
	points := 0

	if strings.ToLower(e.Name) == name {
		points += exactMatch
	}

	points += subStringEarlyMax - 10*matchIndex

	age := now.Sub(e.ModTime)
	if age < 0 {
		age = 0
	}
	if age > fourYears {
		age = fourYears
	}
	points += int(recentlyModifiedMax * (1 - float64(age)/float64(fourYears)))

	points += notDeeplyNestedMax - 10*e.Depth()

	if len(e.Name) > 0 {
		points += int(lengthDifferenceMax * float64(len(name)) / float64(len(e.Name)))
	}

	for _, root := range defaultRoots {
		if strings.HasPrefix(e.Dir, root) {
			points += inDefaultDirs
			break
		}
	}

	if e.Size > minimumSizeAmount {
		points += minimumSize
	}

	return points
}
