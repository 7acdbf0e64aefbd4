package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/waste-wise/internal/cli"
	"github.com/Veraticus/waste-wise/internal/common"
	"github.com/Veraticus/waste-wise/internal/engine"
	"github.com/Veraticus/waste-wise/internal/guide"
	"github.com/Veraticus/waste-wise/internal/imagefile"
	"github.com/Veraticus/waste-wise/internal/model"
)

// errStdinTwice is returned when "-" is given more than once.
var errStdinTwice = errors.New("stdin can only be read once")

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [image...]",
		Short: "Classify photos of waste items",
		Long: `Send images to the configured AI model and print the category,
confidence and disposal tip of each. Use "-" to read an image from stdin.

Several images are classified one after another. An image already
classified in this run is answered from the cache without another request.

A successful classification is added to your history and counts toward
today's streak. Failures change nothing.`,
		Args: cobra.ArbitraryArgs,
		RunE: runClassify,
	}

	cmd.Flags().Bool("json", false, "Print the result as JSON")
	cmd.Flags().Bool("no-fact", false, "Skip the recycling fact after the result")

	return cmd
}

// classifyOutput is the --json shape of a classification.
type classifyOutput struct {
	model.ClassificationResult
	Image     string      `json:"image,omitempty"`
	ID        string      `json:"id,omitempty"`
	Timestamp int64       `json:"timestamp,omitempty"`
	Stats     model.Stats `json:"stats"`
	Error     string      `json:"error,omitempty"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	noFact, _ := cmd.Flags().GetBool("no-fact")

	a, cleanup, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// All images are read before the first request is sent.
	images, err := loadImages(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	// Without an image the engine fails before any remote call, so no
	// credentials are needed to report it.
	var classifier engine.RemoteClassifier
	if anyImage(images) {
		classifier, err = newClassifier(a.cfg)
		if err != nil {
			return err
		}
	}

	eng := engine.New(classifier, a.history, a.stats, engine.WithLogger(slog.Default()))

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr(), a.styles())
	ctx, stop := interrupts.HandleInterrupts(cmd.Context())
	defer stop()

	session := engine.NewSession(ctx, eng)

	batch := len(images) > 1
	var (
		results []classifyOutput
		failed  int
	)
	for i, img := range images {
		if batch && !asJSON {
			if err := a.renderer.Info(fmt.Sprintf("[%d/%d] %s", i+1, len(images), imageName(img))); err != nil {
				return err
			}
		}

		var spinner *cli.Spinner
		if !asJSON && !img.IsEmpty() {
			spinner = cli.StartSpinner(cmd.ErrOrStderr(), "Analyzing image...")
		}
		outcome, err := session.Submit(ctx, img)
		if spinner != nil {
			spinner.Stop()
		}

		if err != nil {
			if !batch || ctx.Err() != nil {
				return err
			}
			failed++
			slog.Debug("Classification failed", "image", imageName(img), "error", err)
			if asJSON {
				results = append(results, classifyOutput{Image: imageName(img), Stats: session.Stats(), Error: common.UserMessage(err)})
				continue
			}
			if err := a.renderer.RenderError(err); err != nil {
				return err
			}
			continue
		}

		if asJSON {
			results = append(results, classifyOutput{
				ClassificationResult: outcome.Result,
				Image:                imageName(img),
				ID:                   outcome.Entry.ID,
				Timestamp:            outcome.Entry.Timestamp,
				Stats:                outcome.Stats,
			})
			continue
		}

		var fact string
		if !noFact && i == len(images)-1 {
			fact = guide.RandomFact(nil)
		}
		if err := a.renderer.RenderOutcome(outcome, fact); err != nil {
			return err
		}
	}

	if asJSON {
		if err := writeClassifyJSON(cmd.OutOrStdout(), results, batch); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d images could not be classified", failed, len(images))
	}
	return nil
}

// loadImages reads every path. No paths yields a single nil image so the
// engine reports the missing input.
func loadImages(paths []string, stdin io.Reader) ([]*model.Image, error) {
	if len(paths) == 0 {
		return []*model.Image{nil}, nil
	}

	images := make([]*model.Image, 0, len(paths))
	seenStdin := false
	for _, path := range paths {
		if path == imagefile.StdinName {
			if seenStdin {
				return nil, errStdinTwice
			}
			seenStdin = true
		}
		img, err := imagefile.Load(path, stdin)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		images = append(images, img)
	}
	return images, nil
}

func anyImage(images []*model.Image) bool {
	for _, img := range images {
		if !img.IsEmpty() {
			return true
		}
	}
	return false
}

func imageName(img *model.Image) string {
	if img.IsEmpty() {
		return "(empty)"
	}
	return img.Name
}

// writeClassifyJSON prints one object for a single image and an array for
// several.
func writeClassifyJSON(w io.Writer, results []classifyOutput, batch bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if !batch {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}
