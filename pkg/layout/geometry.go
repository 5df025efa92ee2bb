package layout

// place converts every node's (depth, cross) grid position to pixel
// coordinates according to the configured orientation, and returns the
// canvas size that contains all nodes plus padding.
//
// The depth step is always NodeWidth/NodeHeight plus the matching gap;
// TentativeNodeHeight only affects the drawn box and the canvas extent,
// not the grid step, so real and tentative generations stay aligned.
//
// The empty graph yields the documented minimum canvas of
// 2*Padding × 2*Padding.
func (cfg Config) place(nodes []*Node) (width, height float64) {
	orient := cfg.Orientation
	if orient != OrientationColumns {
		orient = OrientationRows
	}

	width = 2 * cfg.Padding
	height = 2 * cfg.Padding

	for _, n := range nodes {
		switch orient {
		case OrientationColumns:
			n.X = cfg.Padding + float64(n.Depth)*(cfg.NodeWidth+cfg.HorizontalGap)
			n.Y = cfg.Padding + n.CrossIndex*(cfg.NodeHeight+cfg.VerticalGap)
		default:
			n.X = cfg.Padding + n.CrossIndex*(cfg.NodeWidth+cfg.HorizontalGap)
			n.Y = cfg.Padding + float64(n.Depth)*(cfg.NodeHeight+cfg.VerticalGap)
		}

		if w := n.X + cfg.NodeWidth + cfg.Padding; w > width {
			width = w
		}
		if h := n.Y + cfg.boxHeight(n) + cfg.Padding; h > height {
			height = h
		}
	}
	return width, height
}

// boxHeight returns the drawn height of a node's box.
func (cfg Config) boxHeight(n *Node) float64 {
	if n.Tentative && cfg.TentativeNodeHeight > 0 {
		return cfg.TentativeNodeHeight
	}
	return cfg.NodeHeight
}
