package playlist

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/grafov/m3u8"
	"github.com/sirupsen/logrus"

	"github.com/saurabh-krishan/mp4-video-processor/internal/model"
)

// LocalFilename is the name under which the resolved media playlist is
// saved inside a job's scratch directory. The merge step reads it from
// there, resolving segment URIs against the scratch directory.
const LocalFilename = "playlist.m3u8"

// Error is a fatal playlist resolution failure. There is no retry; the
// enclosing job aborts before any segment is dispatched.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("resolve playlist %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Resolver turns a playlist URL into an ordered segment manifest. Master
// playlists are resolved to the variant with the highest declared bandwidth.
type Resolver struct {
	client *http.Client
	log    *logrus.Logger
}

// NewResolver creates a resolver whose HTTP requests are bounded by timeout
func NewResolver(timeout time.Duration, log *logrus.Logger) *Resolver {
	return &Resolver{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Resolve fetches and parses the playlist at rawURL. It returns the segment
// manifest and the raw bytes of the media playlist so the caller can save it
// next to the downloaded segments.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*model.Manifest, []byte, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, nil, &Error{URL: rawURL, Err: err}
	}

	body, err := r.fetch(ctx, rawURL)
	if err != nil {
		return nil, nil, &Error{URL: rawURL, Err: err}
	}

	decoded, listType, err := m3u8.Decode(*bytes.NewBuffer(body), true)
	if err != nil {
		return nil, nil, &Error{URL: rawURL, Err: fmt.Errorf("parse: %w", err)}
	}

	// A master playlist references variant streams; pick the variant with
	// the highest declared bandwidth and resolve its media playlist.
	if listType == m3u8.MASTER {
		master := decoded.(*m3u8.MasterPlaylist)
		variantURL, err := bestVariantURL(master, base)
		if err != nil {
			return nil, nil, &Error{URL: rawURL, Err: err}
		}
		r.log.WithField("variant", variantURL.String()).Info("selected highest-bandwidth variant")

		base = variantURL
		body, err = r.fetch(ctx, variantURL.String())
		if err != nil {
			return nil, nil, &Error{URL: rawURL, Err: err}
		}

		decoded, listType, err = m3u8.Decode(*bytes.NewBuffer(body), true)
		if err != nil {
			return nil, nil, &Error{URL: rawURL, Err: fmt.Errorf("parse variant: %w", err)}
		}
	}

	if listType != m3u8.MEDIA {
		return nil, nil, &Error{URL: rawURL, Err: fmt.Errorf("not a media playlist")}
	}

	manifest, err := buildManifest(decoded.(*m3u8.MediaPlaylist), base)
	if err != nil {
		return nil, nil, &Error{URL: rawURL, Err: err}
	}

	return manifest, body, nil
}

func (r *Resolver) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// bestVariantURL returns the variant with the highest declared bandwidth,
// resolved against the master playlist URL
func bestVariantURL(master *m3u8.MasterPlaylist, base *url.URL) (*url.URL, error) {
	var best *m3u8.Variant
	for _, variant := range master.Variants {
		if variant == nil {
			continue
		}
		if best == nil || variant.Bandwidth > best.Bandwidth {
			best = variant
		}
	}
	if best == nil {
		return nil, fmt.Errorf("master playlist has no variants")
	}

	ref, err := url.Parse(best.URI)
	if err != nil {
		return nil, fmt.Errorf("variant uri: %w", err)
	}
	return base.ResolveReference(ref), nil
}

func buildManifest(media *m3u8.MediaPlaylist, base *url.URL) (*model.Manifest, error) {
	segments := make([]model.Segment, 0, media.Count())
	for _, seg := range media.Segments {
		if seg == nil {
			continue
		}

		ref, err := url.Parse(seg.URI)
		if err != nil {
			return nil, fmt.Errorf("segment uri %s: %w", seg.URI, err)
		}
		resolved := base.ResolveReference(ref)

		segments = append(segments, model.Segment{
			Name:     path.Base(resolved.Path),
			URI:      resolved.String(),
			Duration: seg.Duration,
		})
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("playlist contains no segments")
	}

	return model.NewManifest(segments)
}
