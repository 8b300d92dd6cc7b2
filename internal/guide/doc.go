// Package guide implements the channel x time-slot program grid: cursor movement
// with per-row wraparound, the scrolling window that keeps the cursor visible, and
// the coordinator that keeps the channel preview and the description in step with the
// cursor.
//
// Nothing in this package performs I/O on the navigation path. Metadata and playback
// are reached through the small interfaces declared here ([DurationProber],
// [AdvertLocator], [Player]) so the presentation layer can run every operation on its
// single update loop.
package guide
