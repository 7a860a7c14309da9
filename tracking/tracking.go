// Package tracking wraps a host's asynchronous surface hit-test service behind a
// per-tick "latest pose or nothing" query.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/anchorview/common"
)

var (
	// ErrTrackingUnavailable means the hit-test capability could not be
	// negotiated. Placement falls back to putting the model in front of the viewer.
	ErrTrackingUnavailable = errors.New("tracking: surface tracking unavailable")
	// ErrAcquisitionRace marks a hit-test source that resolved after the session
	// that asked for it had already ended.
	ErrAcquisitionRace = errors.New("tracking: acquisition resolved after session ended")
)

// SessionState is where the adapter is in acquiring a hit-test source.
type SessionState int

const (
	// StateInactive is before the first BeginSession.
	StateInactive SessionState = iota
	// StateInitializing means a source was requested and has not resolved.
	StateInitializing
	// StateReady means a source is held and PollFrame can return hits.
	StateReady
	// StateEnded follows EndSession, a failed request or a timeout.
	StateEnded
)

func (s SessionState) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// ReferenceSpace names a platform tracked coordinate space.
type ReferenceSpace string

const (
	SpaceViewer     ReferenceSpace = "viewer"
	SpaceLocal      ReferenceSpace = "local"
	SpaceLocalFloor ReferenceSpace = "local-floor"
)

// ParseReferenceSpace accepts the names above, case-insensitively. An empty
// name means SpaceViewer.
func ParseReferenceSpace(name string) (ReferenceSpace, error) {
	switch s := ReferenceSpace(strings.ToLower(strings.TrimSpace(name))); s {
	case "":
		return SpaceViewer, nil
	case SpaceViewer, SpaceLocal, SpaceLocalFloor:
		return s, nil
	default:
		return "", fmt.Errorf("tracking: unknown reference space %q", name)
	}
}

// HitTestSource is the platform handle that produces surface intersections.
// Cancel releases it and must be safe to call more than once.
type HitTestSource interface {
	Cancel()
}

// HitResult is one surface intersection, posed in the session reference space.
type HitResult struct {
	Pose common.Mat4
}

// Frame is the platform's per-tick view of the tracked world.
type Frame interface {
	HitTestResults(src HitTestSource) []HitResult
}

// Platform negotiates the hit-test capability. RequestHitTestSource may block;
// it is never called on the tick goroutine.
type Platform interface {
	RequestHitTestSource(ctx context.Context, space ReferenceSpace) (HitTestSource, error)
}
