package cmd

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumipallolabs/sgsplit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, path string, c color.Color) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func photoFolder(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	white := color.NRGBA{255, 255, 255, 255}
	gray := color.NRGBA{80, 80, 80, 255}
	for _, name := range []string{"a", "b", "c"} {
		writeImage(t, filepath.Join(root, "4444444444444_"+name+".png"), white)
	}
	for _, name := range []string{"a", "b"} {
		writeImage(t, filepath.Join(root, "5555555555555_"+name+".png"), gray)
	}
	writeImage(t, filepath.Join(root, "short.png"), gray)
	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("SGSPLIT_CONFIG", "")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRunCommand(t *testing.T) {
	root := photoFolder(t)

	out, errOut, err := execute(t, "run", root, "-d", "2", "--no-tag")
	require.NoError(t, err)

	assert.Contains(t, out, "5 images across 2 designers")
	assert.Contains(t, out, filepath.Join(root, "SplitImg_Report.xlsx"))
	assert.Contains(t, out, "1 without group id")
	assert.Contains(t, errOut, "INFO")

	assert.FileExists(t, filepath.Join(root, "Designer_1", "4444444444444_a.png"))
	assert.FileExists(t, filepath.Join(root, "Designer_2", "5555555555555_a.png"))
	assert.FileExists(t, filepath.Join(root, "short.png"), "files without a group id stay put")
}

func TestRunCommandRejectsBadDesignerCount(t *testing.T) {
	root := photoFolder(t)

	_, _, err := execute(t, "run", root, "-d", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number of designers")
	assert.FileExists(t, filepath.Join(root, "4444444444444_a.png"))
}

func TestPlanCommand(t *testing.T) {
	root := photoFolder(t)

	out, _, err := execute(t, "plan", root, "-d", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "Designer_1")
	assert.Contains(t, out, "Designer_3")
	assert.Contains(t, out, "5 images in 2 groups, 1 without group id")
	assert.FileExists(t, filepath.Join(root, "4444444444444_a.png"), "plan moves nothing")
	assert.NoDirExists(t, filepath.Join(root, "Designer_1"))
}

func TestPrintSummaryReportError(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, model.Snapshot{
		Processed: 1200,
		Light:     700,
		Other:     500,
		Failed:    2,
		Workers:   make([]model.WorkerFiles, 3),
		Elapsed:   75 * time.Second,
	}, "/x/SplitImg_Report.xlsx", errors.New("disk full"))

	out := buf.String()
	assert.Contains(t, out, "1,200 images across 3 designers in 00:01:15")
	assert.Contains(t, out, "Failed")
	assert.Contains(t, out, "not written")
	assert.NotContains(t, out, "/x/SplitImg_Report.xlsx")
}
