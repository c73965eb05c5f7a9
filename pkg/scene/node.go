package scene

import (
	"github.com/taigrr/portal/pkg/math3d"
	"github.com/taigrr/portal/pkg/render"
)

// Material controls how a node's mesh is shaded.
type Material struct {
	Color       render.Color
	Texture     *render.Texture
	DoubleSided bool
}

// Node is an element of the scene graph. Its transform is relative to its
// parent; a node without a mesh only groups its children.
type Node struct {
	Name     string
	Mesh     render.MeshRenderer
	Material Material

	Position math3d.Vec3
	Rotation math3d.Euler
	Scale    math3d.Vec3

	// Shadow flags are carried for scene descriptions; the rasterizer does
	// not cast shadows.
	CastShadow    bool
	ReceiveShadow bool

	Hidden   bool
	Children []*Node
}

// NewNode creates a white node drawing mesh with identity transform.
func NewNode(name string, mesh render.MeshRenderer) *Node {
	return &Node{
		Name:     name,
		Mesh:     mesh,
		Material: Material{Color: render.ColorWhite},
		Scale:    math3d.One3(),
	}
}

// NewGroup creates an empty node used to group children.
func NewGroup(name string) *Node {
	return NewNode(name, nil)
}

// Add appends children to the node.
func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// LocalMatrix returns translation * rotation * scale.
func (n *Node) LocalMatrix() math3d.Mat4 {
	return math3d.Compose(n.Position, n.Rotation, n.Scale)
}

// Traverse calls fn for n and every visible descendant with its world matrix.
// Hidden nodes are skipped together with their subtree.
func (n *Node) Traverse(parent math3d.Mat4, fn func(node *Node, world math3d.Mat4)) {
	if n.Hidden {
		return
	}
	world := parent.Mul(n.LocalMatrix())
	fn(n, world)
	for _, c := range n.Children {
		c.Traverse(world, fn)
	}
}

// Find returns the first node named name in the subtree, depth first.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}
