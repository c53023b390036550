package archive

import "iter"

const (
	FirstChapter = 1
	LastChapter  = 3462
)

// missingChapters were never published and have no record in the archive.
var missingChapters = map[int]bool{
	3095: true,
	3117: true,
}

// IsMissing reports whether a chapter number is a known gap in the archive.
func IsMissing(number int) bool {
	return missingChapters[number]
}

// Chapters yields chapter numbers from start to end inclusive, skipping
// known gaps.
func Chapters(start, end int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for n := max(start, FirstChapter); n <= end; n++ {
			if missingChapters[n] {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// CountChapters returns how many chapter numbers Chapters(start, end) yields.
func CountChapters(start, end int) int {
	count := 0
	for range Chapters(start, end) {
		count++
	}
	return count
}
