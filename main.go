package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"osuplay/dotosu"
	"osuplay/playfield"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	cmd, err := app.Parse(args)
	if nil != err {
		return err
	}

	switch cmd {
	case inspectCmd.FullCommand():
		return inspect(os.Stdout, *inspectPath)
	case previewCmd.FullCommand():
		b, err := dotosu.DecodeFile(*previewChart)
		if nil != err {
			return err
		}
		if *previewCurves {
			return renderCurves(b, *previewScale, *previewOut)
		}
		return renderFrame(newSession(b), ms(*previewAt), *previewScale, *previewOut)
	case framesCmd.FullCommand():
		b, err := dotosu.DecodeFile(*framesChart)
		if nil != err {
			return err
		}
		return renderFrames(newSession(b), frameRange{
			From:    ms(*framesFrom),
			To:      ms(*framesTo),
			FPS:     *framesFPS,
			Scale:   *framesScale,
			Dir:     *framesDir,
			Workers: *framesWorkers,
		})
	case playCmd.FullCommand():
		return play(*playChart)
	case historyCmd.FullCommand():
		return history(os.Stdout, *historyChart)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func newSession(b *dotosu.Beatmap) *playfield.Session {
	return playfield.NewSession(b, playfield.ConfigFor(b.Difficulty, window(), *arPreempt))
}

// openCharts decodes path, or every .osu file below it when it is a
// directory. Files that fail to decode are reported and skipped.
func openCharts(path string) ([]*dotosu.Beatmap, []string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if !info.IsDir() {
		b, err := dotosu.DecodeFile(path)
		if err != nil {
			return nil, nil, err
		}
		return []*dotosu.Beatmap{b}, []string{path}, nil
	}

	var paths []string
	if err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Println(err)
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), ".osu") {
			paths = append(paths, p)
		}
		return nil
	}); err != nil {
		return nil, nil, err
	}

	sort.Strings(paths)

	beatmaps := make([]*dotosu.Beatmap, 0, len(paths))
	decoded := make([]string, 0, len(paths))
	for _, p := range paths {
		b, err := dotosu.DecodeFile(p)
		if err != nil {
			Fail(os.Stderr, p, err)
			continue
		}
		beatmaps = append(beatmaps, b)
		decoded = append(decoded, p)
	}
	if len(paths) > 0 && len(beatmaps) == 0 {
		return nil, nil, fmt.Errorf("none of %d .osu files in %s could be decoded", len(paths), path)
	}
	return beatmaps, decoded, nil
}
