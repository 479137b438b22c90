package web

type FrontendData struct {
	Seed      int64      `json:"seed"`
	ChunkSize int        `json:"chunkSize"`
	Area      AreaData   `json:"area"`
	Tiles     []TileData `json:"tiles"`
	Failed    []TileData `json:"failed"`
}

type AreaData struct {
	XMin   float64 `json:"xMin"`
	YMin   float64 `json:"yMin"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type TileData struct {
	X int `json:"x"`
	Y int `json:"y"`
}
