// Command arranger-edit is a batch front end for the timeline editor: it
// loads (or creates) a project file, applies the edits given on the command
// line, prints the resulting timeline and saves the project back. It exists
// for scripting and for smoke testing the editor with the offline engine;
// interactive use is out of its scope.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/avolans/arranger"
	"github.com/avolans/arranger/editor"
	"github.com/avolans/arranger/engine"
)

func main() {
	create := flag.Bool("n", false, "Create a new project if the file does not exist.")
	addMidiTrack := flag.Bool("add-midi-track", false, "Append a MIDI track to the project.")
	addAudioTrack := flag.Bool("add-audio-track", false, "Append an audio track to the project.")
	importMidi := flag.String("import-midi", "", "Import a standard MIDI `file` as a clip.")
	loadAudio := flag.String("load-audio", "", "Load a WAV `file` as an audio clip.")
	track := flag.Int("track", 0, "Track id for -import-midi and -load-audio.")
	start := flag.Float64("start", 0, "Start position for -import-midi (beats) and -load-audio (seconds).")
	tempo := flag.Float64("tempo", 0, "Set the project tempo in BPM.")
	preview := flag.Int("preview", 0, "Play audio clip `id` through the system audio device.")
	show := flag.Bool("print", false, "Print the timeline.")
	verbose := flag.Bool("v", false, "Log engine traffic to standard error.")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	eng := engine.NewOffline()
	e := editor.New(eng, logger)

	if f, err := os.Open(path); err == nil {
		if !e.ReadProject(f) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.StatusMessage())
			os.Exit(1)
		}
	} else if !*create {
		fmt.Fprintf(os.Stderr, "could not open %s: %v (use -n to create it)\n", path, err)
		os.Exit(1)
	}

	if *addMidiTrack {
		id := e.AddTrack("", arranger.MidiTrack)
		fmt.Printf("added midi track %d\n", id)
	}
	if *addAudioTrack {
		id := e.AddTrack("", arranger.AudioTrack)
		fmt.Printf("added audio track %d\n", id)
	}
	if *tempo > 0 {
		if !e.SetTempo(*tempo) {
			fmt.Fprintf(os.Stderr, "%s\n", e.StatusMessage())
			os.Exit(1)
		}
	}
	if *importMidi != "" {
		if e.ImportMidiFile(*importMidi, *track, *start) <= 0 {
			fmt.Fprintf(os.Stderr, "%s\n", e.StatusMessage())
			os.Exit(1)
		}
	}
	if *loadAudio != "" {
		if e.LoadAudioFile(*loadAudio, *track, *start) <= 0 {
			fmt.Fprintf(os.Stderr, "%s\n", e.StatusMessage())
			os.Exit(1)
		}
	}

	if *show {
		printTimeline(e.Snapshot())
	}

	if *preview > 0 {
		buffer := eng.RenderClipPreview(*preview)
		if buffer == nil {
			fmt.Fprintf(os.Stderr, "no audio clip %d to preview\n", *preview)
			os.Exit(1)
		}
		ctx, err := engine.NewContext()
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not acquire audio output: %v\n", err)
			os.Exit(1)
		}
		if err := ctx.PlayPreview(buffer); err != nil {
			fmt.Fprintf(os.Stderr, "preview failed: %v\n", err)
			os.Exit(1)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not write %s: %v\n", path, err)
		os.Exit(1)
	}
	if !e.WriteProject(f) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.StatusMessage())
		os.Exit(1)
	}
}

func printTimeline(arr arranger.Arrangement) {
	fmt.Printf("%g BPM, %d tracks\n", arr.BPM, len(arr.Tracks))
	for _, t := range arr.Tracks {
		switch t.Kind {
		case arranger.MidiTrack:
			fmt.Printf("track %d (midi) %q\n", t.ID, t.Name)
			for _, c := range arr.MidiClipsOnTrack(t.ID) {
				fmt.Printf("  clip %d %q [%g, %g) beats, %d notes\n",
					c.ID, c.Name, c.Start, c.End(), len(c.Notes))
			}
		case arranger.AudioTrack:
			fmt.Printf("track %d (audio) %q\n", t.ID, t.Name)
			for _, c := range arr.AudioClipsOnTrack(t.ID) {
				fmt.Printf("  clip %d %s [%g, %g) s, offset %g\n",
					c.ID, c.FilePath, c.Start, c.End(), c.Offset)
			}
		}
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "usage: arranger-edit [flags] project.yml\n")
	flag.PrintDefaults()
}
