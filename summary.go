package crx

import (
	"maps"
	"sync"

	"github.com/meigma/crx/pattern"
)

// Summary aggregates package-wide statistics.
type Summary struct {
	// FileCount is the number of file nodes in the tree.
	FileCount int

	// DirCount is the number of directory nodes, excluding the root.
	DirCount int

	// TotalUncompressedSize is the sum of all declared file sizes.
	TotalUncompressedSize uint64

	// TotalCompressedSize is the sum of all compressed file sizes.
	TotalCompressedSize uint64

	// CompressionRatio is compressed over uncompressed size, or 1.0
	// when the package holds no content.
	CompressionRatio float64

	// CategoryCounts is the number of files in each content category.
	CategoryCounts map[pattern.Category]int
}

// summaryState caches the computed summary.
type summaryState struct {
	once sync.Once
	val  Summary
}

// Summary returns aggregate statistics for the package.
//
// The tree is walked once on first call; the result is cached.
func (p *Package) Summary() Summary {
	p.summary.once.Do(func() {
		s := Summary{CategoryCounts: make(map[pattern.Category]int)}
		for node := range p.root.All() {
			switch {
			case node == p.root:
			case node.Dir:
				s.DirCount++
			default:
				s.FileCount++
				s.TotalUncompressedSize += node.Size
				s.TotalCompressedSize += node.CompressedSize
				s.CategoryCounts[pattern.Classify(node.Path)]++
			}
		}
		if s.TotalUncompressedSize > 0 {
			s.CompressionRatio = float64(s.TotalCompressedSize) / float64(s.TotalUncompressedSize)
		} else {
			s.CompressionRatio = 1.0
		}
		p.summary.val = s
	})

	s := p.summary.val
	s.CategoryCounts = maps.Clone(s.CategoryCounts)
	return s
}
