package flow

// Layout defines node spacing
type Layout struct {
	MainStride   float64 // Horizontal distance between main nodes
	LaneOffset   float64 // Vertical distance of dependency lanes from the main axis
	MemberStride float64 // Horizontal distance between dependencies in a lane
	EdgeType     string
	Animated     bool
}

func DefaultLayout() *Layout {
	return &Layout{
		MainStride:   600,
		LaneOffset:   150,
		MemberStride: 150,
		EdgeType:     "smoothstep",
		Animated:     true,
	}
}

// laneX returns x of lane member index out of count, centered under mainX
func (l *Layout) laneX(mainX float64, index, count int) float64 {
	return mainX + float64(index)*l.MemberStride - float64(count-1)*l.MemberStride/2
}
