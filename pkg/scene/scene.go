// Package scene is a small retained scene graph: a Scene owns a background
// color, lights and a tree of nodes, and feeds them to the renderer.
package scene

import (
	"github.com/taigrr/portal/pkg/math3d"
	"github.com/taigrr/portal/pkg/render"
)

// Scene is a set of nodes and lights. Nodes are only appended.
type Scene struct {
	Name string

	bg     render.Color
	lights []Light
	nodes  []*Node
}

// New creates an empty scene.
func New(name string, background render.Color) *Scene {
	return &Scene{Name: name, bg: background}
}

// Add appends top level nodes.
func (s *Scene) Add(nodes ...*Node) {
	s.nodes = append(s.nodes, nodes...)
}

// AddLight appends a light.
func (s *Scene) AddLight(l Light) {
	s.lights = append(s.lights, l)
}

// Nodes returns the top level nodes.
func (s *Scene) Nodes() []*Node {
	return s.nodes
}

// Lights returns the scene lights.
func (s *Scene) Lights() []Light {
	return s.lights
}

// Find returns the first node named name.
func (s *Scene) Find(name string) *Node {
	for _, n := range s.nodes {
		if found := n.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Light returns the light named name, or nil.
func (s *Scene) Light(name string) Light {
	for _, l := range s.lights {
		if l.AsLightBase().Name == name {
			return l
		}
	}
	return nil
}

// Background implements render.SceneSource.
func (s *Scene) Background() render.Color {
	return s.bg
}

// Lighting implements render.SceneSource.
func (s *Scene) Lighting() render.Lighting {
	return shading(s.lights)
}

// Items implements render.SceneSource.
func (s *Scene) Items(yield func(render.DrawItem)) {
	for _, root := range s.nodes {
		root.Traverse(math3d.Identity(), func(n *Node, world math3d.Mat4) {
			if n.Mesh == nil {
				return
			}
			yield(render.DrawItem{
				Mesh:        n.Mesh,
				Transform:   world,
				Color:       n.Material.Color,
				Texture:     n.Material.Texture,
				DoubleSided: n.Material.DoubleSided,
			})
		})
	}
}
