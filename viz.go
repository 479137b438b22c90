package strata

// VisualizationSink observes the streamer's per-frame state for debug
// rendering. Implementations are read-only consumers; they never mutate
// registry, queue, or scheduler state.
type VisualizationSink interface {
	ObserveFrame(area Rect, inRange []Coord)
}

// OverlayRecorder keeps the latest frame's area of interest and in-range
// coordinates for the session manifest and the static viewer.
type OverlayRecorder struct {
	area    Rect
	inRange []Coord
	frames  int
}

func NewOverlayRecorder() *OverlayRecorder {
	return &OverlayRecorder{}
}

func (o *OverlayRecorder) ObserveFrame(area Rect, inRange []Coord) {
	o.area = area
	o.inRange = append(o.inRange[:0], inRange...)
	o.frames++
}

func (o *OverlayRecorder) Area() Rect {
	return o.area
}

func (o *OverlayRecorder) InRange() []Coord {
	return o.inRange
}

func (o *OverlayRecorder) Frames() int {
	return o.frames
}

// SessionMeta is the manifest describing one streaming session, written
// alongside the tiles and embedded into the static viewer.
type SessionMeta struct {
	Seed      int64   `json:"seed"`
	ChunkSize int     `json:"chunkSize"`
	Frames    int     `json:"frames"`
	Area      Rect    `json:"area"`
	Painted   []Coord `json:"painted"`
	Failed    []Coord `json:"failed"`
}
