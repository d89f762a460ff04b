package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sceneforge/sceneport/pkg/config"
	"github.com/sceneforge/sceneport/pkg/download"
	"github.com/sceneforge/sceneport/pkg/export"
	"github.com/sceneforge/sceneport/pkg/scene"
	"github.com/sceneforge/sceneport/pkg/scene/sceneio"
)

// exportCommand creates the export command for serializing scene documents.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		formatStr    string
		output       string
		name         string
		showProgress bool
	)

	cmd := &cobra.Command{
		Use:   "export [scene.json]",
		Short: "Export a scene document to an interchange format",
		Long: `Export a scene document to an interchange format.

The export command reads a scene document (JSON) and serializes it to one
of the supported formats: glb (binary glTF), gltf (JSON glTF), stl (binary
STL), or obj (Wavefront OBJ). The result is written to the output
directory under the chosen base name plus the format's extension.

STL and OBJ bake node transforms into world-space geometry; GLB and glTF
preserve the node hierarchy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if formatStr == "" {
				formatStr = cfg.Export.DefaultFormat
			}
			formats, err := parseFormats(formatStr)
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.Export.OutputDir
			}
			for _, format := range formats {
				if err := c.runExport(cmd.Context(), args[0], format, name, output, cfg.Export, showProgress); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatStr, "format", "f", "", "output format(s): glb (default), gltf, stl, obj (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&name, "name", "", "base filename without extension (default \"model\")")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "show a live progress bar instead of a spinner")

	return cmd
}

// runExport loads the scene and drives one export run.
func (c *CLI) runExport(ctx context.Context, input string, format export.Format, name, output string, cfg config.ExportConfig, showProgress bool) error {
	root, err := sceneio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}

	sink := download.NewFileSink(output)
	ctrl := export.NewController(sink,
		export.WithLogger(c.Logger),
		export.WithWarnSize(cfg.WarnSize()),
		export.WithPacing(cfg.Pacing()))

	track := newProgress(c.Logger)
	if showProgress {
		err = exportWithProgressBar(ctx, ctrl, root, format, name)
	} else {
		err = exportWithSpinner(ctx, ctrl, root, format, name)
	}
	if err != nil {
		printError("Export failed: %s", ctrl.State().Error)
		return err
	}

	filename := baseName(name) + format.Extension()
	track.done(fmt.Sprintf("Exported %s", filename))

	path := sink.Path(filename)
	printSuccess("Exported %s", StyleHighlight.Render(filename))
	printFile(path)
	printSceneStats(countNodes(root), root.TriangleCount(), payloadSize(path))
	return nil
}

// exportWithSpinner runs the export behind a spinner whose message follows
// the stage sequence.
func exportWithSpinner(ctx context.Context, ctrl *export.Controller, root *scene.Scene, format export.Format, name string) error {
	updates, cancel := ctrl.Subscribe()
	defer cancel()

	spinner := newSpinner(ctx, "Preparing export...")
	spinner.Start()
	go func() {
		for st := range updates {
			if st.Busy {
				spinner.SetMessage(fmt.Sprintf("%s... %d%%", st.Progress.Stage, st.Progress.Percentage))
			}
		}
	}()

	err := ctrl.Export(ctx, root, format, name)
	if err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.Stop()
	return nil
}

// exportWithProgressBar runs the export behind a live bubbletea progress bar.
func exportWithProgressBar(ctx context.Context, ctrl *export.Controller, root *scene.Scene, format export.Format, name string) error {
	updates, cancel := ctrl.Subscribe()

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Export(ctx, root, format, name)
		cancel()
	}()

	program := tea.NewProgram(NewExportProgressModel(updates), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		// The display failing must not orphan the run.
		<-done
		return err
	}
	return <-done
}

// parseFormats parses a comma-separated format string into a format slice.
func parseFormats(s string) ([]export.Format, error) {
	var formats []export.Format
	for _, part := range strings.Split(s, ",") {
		f, err := export.ParseFormat(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// baseName applies the default base filename.
func baseName(name string) string {
	if name == "" {
		return export.DefaultBaseName
	}
	return name
}

// countNodes returns the number of nodes in the scene tree.
func countNodes(s *scene.Scene) int {
	n := 0
	s.Walk(func(*scene.Node) { n++ })
	return n
}

// payloadSize returns the written file's size, or zero when unavailable.
func payloadSize(path string) int {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return int(info.Size())
}
