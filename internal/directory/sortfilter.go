// Package directory enumerates, filters, sorts, and windows a single
// filesystem directory.
package directory

import (
	"sort"
	"strings"

	"github.com/qkzk/dired/internal/fileinfo"
)

// SortBy selects the sort key.
type SortBy int

const (
	SortByKind SortBy = iota
	SortByName
	SortByDate
	SortBySize
	SortByExtension
)

// Order is ascending or descending.
type Order int

const (
	Ascending Order = iota
	Descending
)

// SortKey bundles a sort dimension with a direction, commanded by a single
// character: k n m s e (lowercase=ascending, uppercase=descending), r
// reverses the current order without changing the dimension.
type SortKey struct {
	By    SortBy
	Order Order
}

// DefaultSortKey is kind-first, ascending (directories before files, then
// by name), the default for a freshly opened Directory.
func DefaultSortKey() SortKey { return SortKey{By: SortByKind, Order: Ascending} }

// UpdateFromChar mutates the sort key from a single command character.
func (s *SortKey) UpdateFromChar(c rune) {
	switch c {
	case 'k', 'K':
		s.By = SortByKind
	case 'n', 'N':
		s.By = SortByName
	case 'm', 'M':
		s.By = SortByDate
	case 's', 'S':
		s.By = SortBySize
	case 'e', 'E':
		s.By = SortByExtension
	case 'r', 'R':
		s.Order = reverseOrder(s.Order)
		return
	default:
		return
	}
	if isUpper(c) {
		s.Order = Descending
	} else {
		s.Order = Ascending
	}
}

func reverseOrder(o Order) Order {
	if o == Ascending {
		return Descending
	}
	return Ascending
}

func isUpper(c rune) bool { return c >= 'A' && c <= 'Z' }

// SortFiles sorts files in place per key. "." and ".." are expected to have
// already been excluded by the caller (Directory re-prepends them).
func SortFiles(files []fileinfo.FileInfo, key SortKey) {
	less := func(i, j int) bool {
		a, b := files[i], files[j]
		switch key.By {
		case SortByKind:
			if a.Kind.SortableChar() != b.Kind.SortableChar() {
				return a.Kind.SortableChar() < b.Kind.SortableChar()
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByDate:
			return a.ModTime.Before(b.ModTime)
		case SortBySize:
			return a.SizeBytes() < b.SizeBytes()
		case SortByExtension:
			if a.Extension != b.Extension {
				return a.Extension < b.Extension
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		default:
			return false
		}
	}
	if key.Order == Ascending {
		sort.SliceStable(files, less)
	} else {
		sort.SliceStable(files, func(i, j int) bool { return less(j, i) })
	}
}

// FilterKind selects which entries survive enumeration.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterByName
	FilterByExtension
	FilterDirectoryOnly
)

// Filter bundles a FilterKind with its argument (substring or extension).
type Filter struct {
	Kind FilterKind
	Arg  string
}

// NoFilter is the default, unfiltered view.
func NoFilter() Filter { return Filter{Kind: FilterAll} }

// Matches reports whether fi survives this filter.
func (f Filter) Matches(fi fileinfo.FileInfo) bool {
	switch f.Kind {
	case FilterByName:
		return strings.Contains(strings.ToLower(fi.Name), strings.ToLower(f.Arg))
	case FilterByExtension:
		return strings.EqualFold(fi.Extension, f.Arg)
	case FilterDirectoryOnly:
		return fi.Kind == fileinfo.KindDirectory
	default:
		return true
	}
}
