package run

import (
	"embed"
	"encoding/json"
	"html/template"
	"os"
	"path/filepath"

	"github.com/b1naryth1ef/strata"
	"github.com/b1naryth1ef/strata/web"
)

func writeDirectory(path string, fs embed.FS, dir string) error {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			err = os.Mkdir(filepath.Join(path, entry.Name()), os.ModePerm)
			if err != nil && !os.IsExist(err) {
				return err
			}
			err = writeDirectory(filepath.Join(path, entry.Name()), fs, filepath.Join(dir, entry.Name()))
			if err != nil {
				return err
			}
		} else {
			contents, err := fs.ReadFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				return err
			}

			err = os.WriteFile(filepath.Join(path, entry.Name()), contents, os.ModePerm)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func frontendData(meta strata.SessionMeta) web.FrontendData {
	tiles := make([]web.TileData, len(meta.Painted))
	for i, c := range meta.Painted {
		tiles[i] = web.TileData{X: c.X, Y: c.Y}
	}
	failed := make([]web.TileData, len(meta.Failed))
	for i, c := range meta.Failed {
		failed[i] = web.TileData{X: c.X, Y: c.Y}
	}

	return web.FrontendData{
		Seed:      meta.Seed,
		ChunkSize: meta.ChunkSize,
		Area: web.AreaData{
			XMin:   meta.Area.XMin,
			YMin:   meta.Area.YMin,
			Width:  meta.Area.Width,
			Height: meta.Area.Height,
		},
		Tiles:  tiles,
		Failed: failed,
	}
}

func writeStatic(path string, meta strata.SessionMeta) error {
	fd, err := os.Create(filepath.Join(path, "index.html"))
	if err != nil {
		return err
	}
	defer fd.Close()

	dataSerialized, err := json.Marshal(frontendData(meta))
	if err != nil {
		return err
	}

	tmpl := template.Must(template.New("index.html").Parse(web.IndexHTML))
	err = tmpl.Execute(fd, string(dataSerialized))
	if err != nil {
		return err
	}

	err = ensureDirectory(filepath.Join(path, "static"))
	if err != nil {
		return err
	}

	return writeDirectory(filepath.Join(path, "static"), web.Static, ".")
}
