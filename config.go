package main

import (
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"osuplay/playfield"
)

var (
	app = kingpin.New("osuplay", "Plays, inspects and renders osu! charts.")

	dbPath    = app.Flag("db", "Play history database").Default("./plays.db").String()
	preempt   = app.Flag("preempt", "How long an object is shown before its hit time").Default("600ms").Duration()
	fadeOut   = app.Flag("fade-out", "How long an object fades after it ends").Default("100ms").Duration()
	arPreempt = app.Flag("ar-preempt", "Use the chart's approach rate instead of --preempt").Bool()

	inspectCmd  = app.Command("inspect", "Summarise a chart, or every chart in a directory")
	inspectPath = inspectCmd.Arg("path", ".osu file or directory").Required().ExistingFileOrDir()

	previewCmd    = app.Command("preview", "Render the playfield at one point in time to PNG")
	previewChart  = previewCmd.Arg("chart", ".osu file").Required().ExistingFile()
	previewAt     = previewCmd.Flag("at", "Chart time to render").Default("0s").Duration()
	previewOut    = previewCmd.Flag("out", "Output file").Short('o').Default("frame.png").String()
	previewCurves = previewCmd.Flag("curves", "Draw every slider curve instead of a frame").Bool()
	previewScale  = previewCmd.Flag("scale", "Image pixels per playfield pixel").Default("2").Float64()

	framesCmd     = app.Command("frames", "Render a PNG sequence of a chart section")
	framesChart   = framesCmd.Arg("chart", ".osu file").Required().ExistingFile()
	framesDir     = framesCmd.Arg("dir", "Output directory").Required().String()
	framesFrom    = framesCmd.Flag("from", "Start time").Default("0s").Duration()
	framesTo      = framesCmd.Flag("to", "End time, defaults to the end of the chart").Duration()
	framesFPS     = framesCmd.Flag("fps", "Frames per second").Default("30").Int()
	framesScale   = framesCmd.Flag("scale", "Image pixels per playfield pixel").Default("1").Float64()
	framesWorkers = framesCmd.Flag("workers", "Concurrent encoders").Default("8").Int()

	playCmd    = app.Command("play", "Play a chart in the terminal")
	playChart  = playCmd.Arg("chart", ".osu file").Required().ExistingFile()
	playAudio  = playCmd.Flag("audio", "Audio file, defaults to the chart's AudioFilename").String()
	playMute   = playCmd.Flag("mute", "Play against the wall clock without audio").Bool()
	playOffset = playCmd.Flag("offset", "Added to the playback clock").Default("0ms").Short('o').Duration()
	playDelay  = playCmd.Flag("delay", "Minimum lead-in before the chart starts").Default("1.5s").Short('d').Duration()
	playLog    = playCmd.Flag("log", "Log file while the terminal is in use").Default("osuplay.log").String()

	historyCmd   = app.Command("history", "List stored plays of a chart")
	historyChart = historyCmd.Arg("chart", ".osu file").Required().ExistingFile()
)

func init() {
	app.Version("0.3.0")
	app.HelpFlag.Short('h')
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func window() playfield.Window {
	return playfield.Window{Preempt: ms(*preempt), FadeOut: ms(*fadeOut)}
}
