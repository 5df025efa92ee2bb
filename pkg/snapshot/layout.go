package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/branchboard/branchboard/pkg/layout"
)

// LayoutNode is the serialized form of a positioned node.
type LayoutNode struct {
	ID         string  `json:"id" bson:"id"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	Depth      int     `json:"depth" bson:"depth"`
	CrossIndex float64 `json:"cross_index" bson:"cross_index"`
	Tentative  bool    `json:"tentative,omitempty" bson:"tentative,omitempty"`
	Title      string  `json:"title,omitempty" bson:"title,omitempty"` // tentative nodes only
}

// LayoutEdge is the serialized form of a connection between two placed
// nodes, flattened to their ids.
type LayoutEdge struct {
	From      string `json:"from" bson:"from"`
	To        string `json:"to" bson:"to"`
	Designed  bool   `json:"designed,omitempty" bson:"designed,omitempty"`
	Tentative bool   `json:"tentative,omitempty" bson:"tentative,omitempty"`
}

// Layout is the serialized form of a computed layout: positions, edges and
// the canvas that contains them.
type Layout struct {
	Nodes  []LayoutNode `json:"nodes" bson:"nodes"`
	Edges  []LayoutEdge `json:"edges" bson:"edges"`
	Width  float64      `json:"width" bson:"width"`
	Height float64      `json:"height" bson:"height"`
}

// FromResult flattens a layout.Result into its wire form.
func FromResult(res layout.Result) Layout {
	out := Layout{
		Nodes:  make([]LayoutNode, len(res.Nodes)),
		Edges:  make([]LayoutEdge, len(res.Edges)),
		Width:  res.Width,
		Height: res.Height,
	}
	for i, n := range res.Nodes {
		ln := LayoutNode{
			ID:         n.ID,
			X:          n.X,
			Y:          n.Y,
			Depth:      n.Depth,
			CrossIndex: n.CrossIndex,
			Tentative:  n.Tentative,
		}
		if n.Task != nil {
			ln.Title = n.Task.Title
		}
		out.Nodes[i] = ln
	}
	for i, e := range res.Edges {
		out.Edges[i] = LayoutEdge{
			From:      e.From.ID,
			To:        e.To.ID,
			Designed:  e.Designed,
			Tentative: e.Tentative,
		}
	}
	return out
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
