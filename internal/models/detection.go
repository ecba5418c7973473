package models

// Box is an axis-aligned bounding box given by two corner points.
type Box struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// RawDetection is a detection event as delivered by the analysis
// backend: the box is in the source video's native pixel space.
type RawDetection struct {
	FrameIndex int    `json:"frame_idx"`
	Label      string `json:"label"`
	Box        Box    `json:"bbox"`
}

// PlacedDetection is a detection whose box has been rescaled into the
// render surface's coordinate space. Construction through Place is the
// only way a box changes space, so a detection is rescaled at most once.
type PlacedDetection struct {
	FrameIndex int    `json:"frame_idx"`
	Label      string `json:"label"`
	Box        Box    `json:"bbox"`
}

// Place converts a raw detection into surface coordinates. The scale
// factors are surface/native per axis; both corners are transformed.
func Place(d RawDetection, native, surface Size) PlacedDetection {
	sx := float64(surface.Width) / float64(native.Width)
	sy := float64(surface.Height) / float64(native.Height)

	return PlacedDetection{
		FrameIndex: d.FrameIndex,
		Label:      d.Label,
		Box: Box{
			X0: d.Box.X0 * sx,
			Y0: d.Box.Y0 * sy,
			X1: d.Box.X1 * sx,
			Y1: d.Box.Y1 * sy,
		},
	}
}

// Detection is a persisted detection event row.
type Detection struct {
	ID         int64   `json:"id"`
	VideoID    string  `json:"video_id"`
	Query      string  `json:"query"`
	FrameIndex int     `json:"frame_idx"`
	Label      string  `json:"label"`
	X0         float64 `json:"x0"`
	Y0         float64 `json:"y0"`
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
}

// SearchResult is one seekable entry: the representative detection of
// a cluster of temporally-adjacent events.
type SearchResult struct {
	Label      string `json:"label"`
	FrameIndex int    `json:"frame_idx"`
}
