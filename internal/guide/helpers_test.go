//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package guide

import "fmt"

// rowsOfLengths builds channel rows with the given entry counts.
func rowsOfLengths(lengths ...int) []ChannelRow {
	rows := make([]ChannelRow, 0, len(lengths))
	for r, n := range lengths {
		row := ChannelRow{
			Label:  fmt.Sprintf("ch%d", r),
			Folder: fmt.Sprintf("ch%d", r),
			Dir:    fmt.Sprintf("/lib/ch%d", r),
		}
		for c := range n {
			row.Entries = append(row.Entries, ProgramEntry{
				DisplayName: fmt.Sprintf("p%d-%d", r, c),
				SourcePath:  fmt.Sprintf("/lib/ch%d/p%d.mp4", r, c),
				Span:        1,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

type fakePlayer struct{ played []string }

func (p *fakePlayer) PlayMedia(path string) { p.played = append(p.played, path) }

// fakeLocator knows preview clips for a fixed set of channel dirs.
type fakeLocator map[string]string

func (l fakeLocator) AdvertPath(dir string) (string, bool) {
	p, ok := l[dir]
	return p, ok
}

func allAdverts(rows []ChannelRow) fakeLocator {
	l := fakeLocator{}
	for _, r := range rows {
		l[r.Dir] = r.Dir + "/ADVERT.mp4"
	}
	return l
}
