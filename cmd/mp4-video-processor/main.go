package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/saurabh-krishan/mp4-video-processor/internal/config"
	"github.com/saurabh-krishan/mp4-video-processor/internal/download"
	"github.com/saurabh-krishan/mp4-video-processor/internal/logging"
	"github.com/saurabh-krishan/mp4-video-processor/internal/media"
	"github.com/saurabh-krishan/mp4-video-processor/internal/model"
	"github.com/saurabh-krishan/mp4-video-processor/internal/platform"
	"github.com/saurabh-krishan/mp4-video-processor/internal/playlist"
	"github.com/saurabh-krishan/mp4-video-processor/internal/progress"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

var emphasis = color.New(color.FgGreen, color.Bold)

func main() {
	app := &cli.App{
		Name:    "mp4-video-processor",
		Usage:   "download segmented video streams and post-process recordings",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			downloadCommand(),
			cropCommand(),
			probeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, *logrus.Logger, error) {
	level := logrus.InfoLevel
	if c.Bool("verbose") {
		level = logrus.DebugLevel
	}
	log := logging.New(level)

	path := c.String("config")
	if path == "" {
		return config.Default(), log, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func newJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func downloadCommand() *cli.Command {
	return &cli.Command{
		Name:      "download",
		Usage:     "download all segments of a playlist and merge them into an MP4",
		ArgsUsage: "URL",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output filename",
				Value:   "video.mp4",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one playlist URL, got %d arguments", c.NArg())
			}

			cfg, log, err := loadConfig(c)
			if err != nil {
				return err
			}

			tracker := progress.NewTracker()
			svc := download.NewService(
				cfg,
				playlist.NewResolver(cfg.HTTPTimeout, log),
				download.NewHTTPFetcher(cfg.HTTPTimeout, log),
				platform.Monitor{},
				media.NewRemuxer(cfg.FFmpegPath, log),
				progress.MultiSink{tracker, progress.NewLogSink(log)},
				log,
			)

			jobID := newJobID()
			filename, err := svc.Download(c.Context, c.Args().First(), c.String("output"), jobID)
			if err != nil {
				return err
			}

			output := platform.UploadPath(cfg.BaseDir, filename)
			if snap, ok := tracker.Latest(jobID); ok && snap.Status == model.ProgressComplete {
				emphasis.Printf("Saved %s in %s (%s)\n", output, snap.Elapsed, snap.Speed)
				return nil
			}
			emphasis.Printf("Saved %s\n", output)
			return nil
		},
	}
}

func cropCommand() *cli.Command {
	return &cli.Command{
		Name:      "crop",
		Usage:     "split a recording into screen and webcam videos over a trim window",
		ArgsUsage: "INPUT",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "start",
				Usage:    "trim window start (HH:MM:SS or seconds)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "end",
				Usage:    "trim window end (HH:MM:SS or seconds)",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one input file, got %d arguments", c.NArg())
			}
			input := c.Args().First()

			cfg, log, err := loadConfig(c)
			if err != nil {
				return err
			}

			prober := media.NewProber(cfg.FFprobePath)
			info, err := prober.Probe(c.Context, input)
			if err != nil {
				return err
			}

			editor := media.NewEditor(cfg, prober, progress.NewLogSink(log), log)
			window := media.TimeRange{Start: c.String("start"), End: c.String("end")}
			regions := model.DefaultCropRegions(info.Width, info.Height)

			base := strings.TrimSuffix(input, filepath.Ext(input))
			outputs, err := editor.CropTrim(c.Context, input, window, regions,
				base+"_screen.mp4", base+"_webcam.mp4", newJobID())
			if err != nil {
				return err
			}

			for _, output := range outputs {
				emphasis.Printf("Saved %s\n", output)
			}
			return nil
		},
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     "print video stream properties of a file",
		ArgsUsage: "INPUT",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one input file, got %d arguments", c.NArg())
			}
			input := c.Args().First()

			cfg, _, err := loadConfig(c)
			if err != nil {
				return err
			}

			prober := media.NewProber(cfg.FFprobePath)
			info, err := prober.Probe(c.Context, input)
			if err != nil {
				return err
			}
			seconds, err := prober.Duration(c.Context, input)
			if err != nil {
				return err
			}

			fmt.Printf("Codec:      %s\n", info.Codec)
			fmt.Printf("Resolution: %dx%d\n", info.Width, info.Height)
			fmt.Printf("FPS:        %.2f\n", info.FPS)
			fmt.Printf("Bitrate:    %.0f Kbps\n", info.BitrateKbps)
			fmt.Printf("Duration:   %s\n", model.FormatClock(int(seconds)))
			return nil
		},
	}
}
