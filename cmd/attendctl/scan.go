package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/smartattend/go-attend/scanner"
)

func scanCmd() *cobra.Command {
	var framesDir string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run the attendance scanner loop",
		Long: `Run the capture-and-submit loop against a frame spool directory.

Drop JPEG or PNG frames into the directory (a camera daemon, a watch
folder, a test script); each frame is consumed once, submitted for face
matching, and removed. Matches trigger a short cooldown so the same
person is not re-marked while still in frame. Today's numbers refresh
alongside. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			if framesDir == "" {
				return fmt.Errorf("a --frames directory is required")
			}
			if err := os.MkdirAll(framesDir, 0o755); err != nil {
				return fmt.Errorf("preparing frame spool: %w", err)
			}

			app := newApp()

			var mu sync.Mutex
			var present, total int
			poller := scanner.NewPoller(app.api, func(s scanner.Snapshot) {
				mu.Lock()
				present, total = s.Stats.PresentToday, s.Stats.TotalStudents
				mu.Unlock()
				fmt.Println(faintStyle.Render(fmt.Sprintf("  %d of %d present today", s.Stats.PresentToday, s.Stats.TotalStudents)))
			})

			scan := scanner.New(&spoolFrames{dir: framesDir}, app.api).
				OnMatch(func(name string) {
					success("Marked %s", name)
				}).
				OnRefresh(func() {
					poller.Refresh(ctx)
				})

			fmt.Println(heading("Scanning " + framesDir))

			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = poller.Run(ctx)
			}()
			go func() {
				defer wg.Done()
				_ = scan.Run(ctx)
			}()
			wg.Wait()

			mu.Lock()
			defer mu.Unlock()
			fmt.Println()
			fmt.Printf("Stopped. %d of %d present today.\n", present, total)
			return nil
		},
	}

	cmd.Flags().StringVar(&framesDir, "frames", "", "Directory to watch for camera frames")

	return cmd
}

// spoolFrames feeds the scan loop from a watch directory. The oldest image
// file is consumed per capture and deleted so a frame is submitted once.
type spoolFrames struct {
	dir string
}

func (s *spoolFrames) Capture(ctx context.Context) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)

	path := filepath.Join(s.dir, names[0])
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if err := os.Remove(path); err != nil {
		return "", err
	}

	mime := "image/jpeg"
	if strings.HasSuffix(strings.ToLower(path), ".png") {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
