package cli

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner shows an indeterminate progress indicator while a remote call is
// pending.
type Spinner struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// StartSpinner starts a spinner with description on writer.
func StartSpinner(writer io.Writer, description string) *Spinner {
	if writer == nil {
		writer = os.Stderr
	}

	s := &Spinner{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(writer),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription("[green]"+description+"[reset]"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionClearOnFinish(),
		),
		done: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.run()
	return s
}

func (s *Spinner) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.bar.Add(1); err != nil {
				slog.Debug("Failed to advance spinner", "error", err)
			}
		}
	}
}

// Stop halts the spinner and clears its line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
		if err := s.bar.Finish(); err != nil {
			slog.Debug("Failed to finish spinner", "error", err)
		}
	})
}
