package game_object

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
)

// ErrParentCycle is returned by SetParent when the new parent is the object itself or one of its descendants.
var ErrParentCycle = errors.New("parent would create a cycle")

var nextID atomic.Uint64

type gameObject struct {
	mu      *sync.Mutex
	id      uint64
	name    string
	enabled atomic.Bool
	parent  GameObject

	position mgl32.Vec3
	rotation mgl32.Quat
}

// GameObject defines the interface for a scene node with a local transform relative to an
// optional parent. Rig and camera nodes are GameObjects; the rig controller drives them
// through the rig.TransformHandle subset of this interface.
type GameObject interface {
	rig.TransformHandle

	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's display name.
	//
	// Returns:
	//   - string: the name, possibly empty
	Name() string

	// Enabled returns whether this object is enabled.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Parent returns the object this node is attached to, or nil for a root node.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// SetParent attaches this node to p. Pass nil to detach.
	//
	// Parameters:
	//   - p: the new parent, or nil
	//
	// Returns:
	//   - error: ErrParentCycle if p is this node or one of its descendants
	SetParent(p GameObject) error

	// LocalMatrix builds the translation * rotation matrix of the local transform.
	//
	// Returns:
	//   - mgl32.Mat4: the column-major local matrix
	LocalMatrix() mgl32.Mat4

	// WorldMatrix composes the local matrix with every ancestor's.
	//
	// Returns:
	//   - mgl32.Mat4: the column-major world matrix
	WorldMatrix() mgl32.Mat4

	// WorldPosition returns the node's origin in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the world position
	WorldPosition() mgl32.Vec3

	// WorldRotation composes the local rotation with every ancestor's.
	//
	// Returns:
	//   - mgl32.Quat: the world rotation
	WorldRotation() mgl32.Quat
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject at the origin with identity rotation,
// configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:       &sync.Mutex{},
		id:       nextID.Add(1),
		rotation: mgl32.QuatIdent(),
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Parent() GameObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.parent
}

func (g *gameObject) SetParent(p GameObject) error {
	for ancestor := p; ancestor != nil; ancestor = ancestor.Parent() {
		if ancestor.ID() == g.id {
			return ErrParentCycle
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.parent = p
	return nil
}

func (g *gameObject) LocalPosition() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) SetLocalPosition(p mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p
}

func (g *gameObject) LocalRotation() mgl32.Quat {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) SetLocalRotation(q mgl32.Quat) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = q
}

func (g *gameObject) LocalMatrix() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.localMatrix()
}

// localMatrix builds the local matrix.
// Caller must hold the mutex.
func (g *gameObject) localMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(g.position.X(), g.position.Y(), g.position.Z()).Mul4(g.rotation.Normalize().Mat4())
}

// The parent is read under the lock and walked after releasing it so that a chain of
// nodes never holds more than one mutex at a time.
func (g *gameObject) WorldMatrix() mgl32.Mat4 {
	g.mu.Lock()
	local := g.localMatrix()
	parent := g.parent
	g.mu.Unlock()

	if parent == nil {
		return local
	}
	return parent.WorldMatrix().Mul4(local)
}

func (g *gameObject) WorldPosition() mgl32.Vec3 {
	return g.WorldMatrix().Col(3).Vec3()
}

func (g *gameObject) WorldRotation() mgl32.Quat {
	g.mu.Lock()
	local := g.rotation
	parent := g.parent
	g.mu.Unlock()

	if parent == nil {
		return local
	}
	return parent.WorldRotation().Mul(local)
}
