// Package media resolves the tracks a player instance can load.
//
// A Library answers two questions: what tracks exist, and what URL a
// given track plays from. StaticLibrary serves a fixed in-memory list;
// S3Library lists a bucket prefix and presigns playback URLs.
package media

import (
	"context"
	"errors"
	"sort"
	"time"
)

// ErrTrackNotFound reports a track ID the library does not know.
var ErrTrackNotFound = errors.New("media: track not found")

// Track is one playable item.
type Track struct {
	ID          string
	Title       string
	ContentType string
	Size        int64
	Modified    time.Time

	// URL is where the shell's audio element loads the track from. For
	// presigning backends it is only populated by Resolve.
	URL string
}

// Library enumerates and resolves tracks.
type Library interface {
	// List returns the known tracks ordered by ID. Listed tracks may not
	// carry a playback URL.
	List(ctx context.Context) ([]Track, error)

	// Resolve returns the track with a playback URL, or ErrTrackNotFound.
	Resolve(ctx context.Context, id string) (Track, error)
}

// StaticLibrary serves a fixed track list. The zero value is empty.
type StaticLibrary struct {
	tracks map[string]Track
}

// NewStaticLibrary creates a library over the given tracks.
func NewStaticLibrary(tracks ...Track) *StaticLibrary {
	l := &StaticLibrary{tracks: make(map[string]Track, len(tracks))}
	for _, t := range tracks {
		l.tracks[t.ID] = t
	}
	return l
}

// List implements Library.
func (l *StaticLibrary) List(ctx context.Context) ([]Track, error) {
	out := make([]Track, 0, len(l.tracks))
	for _, t := range l.tracks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Resolve implements Library.
func (l *StaticLibrary) Resolve(ctx context.Context, id string) (Track, error) {
	t, ok := l.tracks[id]
	if !ok {
		return Track{}, ErrTrackNotFound
	}
	return t, nil
}
