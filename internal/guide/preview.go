package guide

import "github.com/sirupsen/logrus"

// Player plays a preview clip, replacing whatever is playing.
type Player interface {
	PlayMedia(path string)
}

// AdvertLocator finds a channel's preview clip.
type AdvertLocator interface {
	AdvertPath(dir string) (string, bool)
}

// DescriptionRequest asks the presentation layer to look up the description of the
// program at (Row, Col). Path is empty when there is no program there. Results are only
// applied if Seq is still the latest issued.
type DescriptionRequest struct {
	Seq  uint64
	Row  int
	Col  int
	Path string
}

// PreviewCoordinator decides when the channel preview changes and numbers description
// lookups. A preview is only started when the selected row changes, so horizontal
// movement never restarts playback.
type PreviewCoordinator struct {
	grid    *Grid
	locator AdvertLocator
	player  Player

	lastRow int
	descSeq uint64
}

// NewPreviewCoordinator wires a coordinator to the grid it follows.
func NewPreviewCoordinator(grid *Grid, locator AdvertLocator, player Player) *PreviewCoordinator {
	return &PreviewCoordinator{grid: grid, locator: locator, player: player, lastRow: -1}
}

// Prime starts the preview for the initial selection and requests its description.
func (p *PreviewCoordinator) Prime(sel Selection) (played bool, req DescriptionRequest) {
	return p.playRow(sel.Row), p.requestDescription(sel)
}

// OnSelectionChanged reacts to a completed navigation step.
func (p *PreviewCoordinator) OnSelectionChanged(old, cur Selection) (played bool, req DescriptionRequest) {
	if cur.Row != old.Row {
		played = p.playRow(cur.Row)
	}
	return played, p.requestDescription(cur)
}

// AcceptDescription reports whether a description result for seq is still current.
func (p *PreviewCoordinator) AcceptDescription(seq uint64) bool {
	return seq == p.descSeq
}

// LastRow returns the row whose preview was last started, or -1.
func (p *PreviewCoordinator) LastRow() int { return p.lastRow }

func (p *PreviewCoordinator) playRow(row int) bool {
	if row == p.lastRow {
		return false
	}
	ch, ok := p.grid.Row(row)
	if !ok || p.locator == nil || p.player == nil {
		return false
	}
	path, ok := p.locator.AdvertPath(ch.Dir)
	if !ok {
		logrus.Debugf("no preview clip for channel %q", ch.Folder)
		return false
	}
	p.player.PlayMedia(path)
	p.lastRow = row
	return true
}

func (p *PreviewCoordinator) requestDescription(sel Selection) DescriptionRequest {
	p.descSeq++
	req := DescriptionRequest{Seq: p.descSeq, Row: sel.Row, Col: sel.Col}
	if e, ok := p.grid.Entry(sel.Row, sel.Col); ok {
		req.Path = e.SourcePath
	}
	return req
}
