package snap

// transitions is indexed [current][direction]. Left and Right swap sides at
// the current vertical extent, Up promotes quadrant to half to full screen,
// Down demotes half to the lower quadrant on the same side and full screen
// out of the recognised placements.
var transitions = [regionCount][directionCount]Region{
	//            Left         Right        Up          Down
	RightTop:    {LeftTop, LeftTop, RightHalf, RightBottom},
	RightBottom: {LeftBottom, LeftBottom, RightTop, RightBottom},
	LeftBottom:  {RightBottom, RightBottom, LeftTop, LeftBottom},
	LeftTop:     {RightTop, RightTop, LeftHalf, LeftBottom},
	RightHalf:   {LeftHalf, LeftHalf, FullScreen, RightBottom},
	LeftHalf:    {RightHalf, RightHalf, FullScreen, LeftBottom},
	FullScreen:  {LeftHalf, RightHalf, FullScreen, None},
	None:        {LeftHalf, RightHalf, FullScreen, None},
}

// Next returns the region a window in current moves to for d. Out-of-range
// inputs are treated as None and Left respectively.
func Next(current Region, d Direction) Region {
	if !current.Valid() {
		current = None
	}
	if !d.Valid() {
		d = Left
	}
	return transitions[current][d]
}
