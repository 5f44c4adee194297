package referenceframe

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/localplanner/spatialmath"
)

// A FrameSystem is a tree of frames connected by planar transforms, rooted at
// World. Frame transforms may be updated over time; lookups at a zero time
// resolve against the latest recorded state.
//
// It implements TransformGateway and is the gateway used by the simulator and
// tests.
type FrameSystem struct {
	mu      sync.RWMutex
	name    string
	clock   clock.Clock
	parents map[string]string
	// toParent maps a frame name to the transform taking poses in that frame
	// into its parent frame.
	toParent map[string]Transform
}

// NewFrameSystem creates an empty frame system containing only World.
func NewFrameSystem(name string, c clock.Clock) *FrameSystem {
	if c == nil {
		c = clock.New()
	}
	return &FrameSystem{
		name:     name,
		clock:    c,
		parents:  map[string]string{},
		toParent: map[string]Transform{},
	}
}

// Name returns the name of this frame system.
func (fs *FrameSystem) Name() string {
	return fs.name
}

// FrameNames returns the names of all frames in the system other than World.
func (fs *FrameSystem) FrameNames() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	var names []string
	for name := range fs.parents {
		names = append(names, name)
	}
	return names
}

// AddFrame inserts the named frame as a child of the given parent frame,
// related to it by the given translation and rotation.
func (fs *FrameSystem) AddFrame(name, parent string, translation r2.Point, rotation float64) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if name == World {
		return errors.New("cannot add a frame named world")
	}
	if _, ok := fs.parents[name]; ok {
		return errors.Errorf("frame with name %q already in frame system", name)
	}
	if !fs.frameExistsLocked(parent) {
		return &LookupError{Frame: parent}
	}
	fs.parents[name] = parent
	fs.toParent[name] = Transform{
		Target:      parent,
		Source:      name,
		Translation: translation,
		Rotation:    spatialmath.NormalizeAngle(rotation),
		At:          fs.clock.Now(),
	}
	return nil
}

// UpdateFrame replaces the transform relating an existing frame to its parent.
func (fs *FrameSystem) UpdateFrame(name string, translation r2.Point, rotation float64) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	parent, ok := fs.parents[name]
	if !ok {
		return &LookupError{Frame: name}
	}
	fs.toParent[name] = Transform{
		Target:      parent,
		Source:      name,
		Translation: translation,
		Rotation:    spatialmath.NormalizeAngle(rotation),
		At:          fs.clock.Now(),
	}
	return nil
}

func (fs *FrameSystem) frameExistsLocked(name string) bool {
	if name == World {
		return true
	}
	_, ok := fs.parents[name]
	return ok
}

// LookupTransform returns the transform taking poses expressed in the source
// frame into the target frame. A zero time means latest available; a time in
// the future yields an ExtrapolationError.
func (fs *FrameSystem) LookupTransform(target, source string, at time.Time) (Transform, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if !fs.frameExistsLocked(target) {
		return Transform{}, &LookupError{Frame: target}
	}
	if !fs.frameExistsLocked(source) {
		return Transform{}, &LookupError{Frame: source}
	}
	if !at.IsZero() && at.After(fs.clock.Now()) {
		return Transform{}, &ExtrapolationError{Frame: source, At: at}
	}
	sourceToWorld, err := fs.composeToWorldLocked(source)
	if err != nil {
		return Transform{}, err
	}
	targetToWorld, err := fs.composeToWorldLocked(target)
	if err != nil {
		return Transform{}, err
	}
	transform := targetToWorld.Invert().Compose(sourceToWorld)
	transform.Target = target
	transform.Source = source
	transform.At = fs.clock.Now()
	return transform, nil
}

func (fs *FrameSystem) composeToWorldLocked(name string) (Transform, error) {
	transform := Transform{Target: World, Source: name, At: fs.clock.Now()}
	for name != World {
		toParent, ok := fs.toParent[name]
		if !ok {
			return Transform{}, &ConnectivityError{Target: World, Source: name}
		}
		transform = toParent.Compose(transform)
		name = fs.parents[name]
	}
	transform.Target = World
	return transform, nil
}

// TransformPose expresses the given stamped pose in the target frame.
func (fs *FrameSystem) TransformPose(target string, pose PoseInFrame) (PoseInFrame, error) {
	transform, err := fs.LookupTransform(target, pose.Frame, pose.At)
	if err != nil {
		return PoseInFrame{}, err
	}
	return PoseInFrame{
		Pose:  transform.Apply(pose.Pose),
		Frame: target,
		At:    transform.At,
	}, nil
}
