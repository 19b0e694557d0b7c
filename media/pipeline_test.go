package media

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"github.com/purdeep/studio-backend/errs"
)

var baseColor = color.NRGBA{R: 10, G: 20, B: 120, A: 255}

func pngBytes(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, imaging.Encode(buf, imaging.New(w, h, c), imaging.PNG))
	return buf.Bytes()
}

// writeWatermark writes a wide (4:1) solid white logo asset and returns its path.
func writeWatermark(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watermark.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 40, 10, color.NRGBA{R: 255, G: 255, B: 255, A: 255}), 0o644))
	return path
}

// storedFile returns the path of the single file stored under root/folder.
func storedFile(t *testing.T, root, folder string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(folder), "*"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	return matches[0]
}

func TestDerive_RejectsOversizeUploadWithoutWriting(t *testing.T) {
	root := t.TempDir()
	p := NewPipeline(Config{MaxUploadBytes: 1024}, NewDirTarget(root))

	_, err := p.Derive(make([]byte, 2048), "big.jpg", "projects")
	require.Error(t, err)
	require.True(t, errs.IsMaxUploadSizeError(err))

	entries, readErr := os.ReadDir(root)
	require.NoError(t, readErr)
	require.Empty(t, entries, "a rejected upload must write nothing")
}

func TestDerive_ReferencePathShape(t *testing.T) {
	root := t.TempDir()
	p := NewPipeline(Config{}, NewDirTarget(root))

	url, err := p.Derive(pngBytes(t, 100, 80, baseColor), "photo.png", "projects")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/images/uploads/projects/"))
	require.True(t, strings.HasSuffix(url, ".png"))
}

func TestDerive_DefaultsToJpegExtension(t *testing.T) {
	root := t.TempDir()
	p := NewPipeline(Config{}, NewDirTarget(root))

	url, err := p.Derive(pngBytes(t, 50, 50, baseColor), "noextension", "misc")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(url, ".jpg"))
}

func TestDerive_ClampsLargeImages(t *testing.T) {
	root := t.TempDir()
	p := NewPipeline(Config{}, NewDirTarget(root))

	_, err := p.Derive(pngBytes(t, 3000, 1500, baseColor), "wide.png", "projects")
	require.NoError(t, err)

	img, err := imaging.Open(storedFile(t, root, "projects"))
	require.NoError(t, err)
	require.Equal(t, 2048, img.Bounds().Dx())
	require.Equal(t, 1024, img.Bounds().Dy(), "aspect ratio must be preserved")
}

func TestDerive_KeepsSmallImageDimensions(t *testing.T) {
	root := t.TempDir()
	p := NewPipeline(Config{}, NewDirTarget(root))

	_, err := p.Derive(pngBytes(t, 800, 600, baseColor), "small.png", "projects")
	require.NoError(t, err)

	img, err := imaging.Open(storedFile(t, root, "projects"))
	require.NoError(t, err)
	require.Equal(t, 800, img.Bounds().Dx())
	require.Equal(t, 600, img.Bounds().Dy())
}

func TestDerive_TeamFolderIsNeverWatermarked(t *testing.T) {
	root := t.TempDir()
	p := NewPipeline(Config{WatermarkPath: writeWatermark(t)}, NewDirTarget(root))

	_, err := p.Derive(pngBytes(t, 400, 300, baseColor), "ana.png", "team")
	require.NoError(t, err)

	img, err := imaging.Open(storedFile(t, root, "team"))
	require.NoError(t, err)

	// Every pixel of a solid upload must survive untouched.
	nrgba := imaging.Clone(img)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		require.Equal(t, baseColor.R, nrgba.Pix[i])
		require.Equal(t, baseColor.G, nrgba.Pix[i+1])
		require.Equal(t, baseColor.B, nrgba.Pix[i+2])
	}
}

func TestDerive_OtherFoldersGetWatermarkStrip(t *testing.T) {
	root := t.TempDir()
	p := NewPipeline(Config{WatermarkPath: writeWatermark(t)}, NewDirTarget(root))

	_, err := p.Derive(pngBytes(t, 400, 300, baseColor), "lobby.png", "projects")
	require.NoError(t, err)

	img, err := imaging.Open(storedFile(t, root, "projects"))
	require.NoError(t, err)
	nrgba := imaging.Clone(img)

	// The contrast strip sits near the bottom edge; at least one pixel there
	// must have been lightened by the white overlay.
	marked := false
	for y := img.Bounds().Dy() / 2; y < img.Bounds().Dy(); y++ {
		i := nrgba.PixOffset(5, y)
		if nrgba.Pix[i] != baseColor.R || nrgba.Pix[i+1] != baseColor.G || nrgba.Pix[i+2] != baseColor.B {
			marked = true
			break
		}
	}
	require.True(t, marked, "expected composited strip pixels in the bottom half")
}

func TestDerive_MissingWatermarkAssetSkipsSilently(t *testing.T) {
	root := t.TempDir()
	p := NewPipeline(Config{WatermarkPath: filepath.Join(t.TempDir(), "nope.png")}, NewDirTarget(root))

	url, err := p.Derive(pngBytes(t, 400, 300, baseColor), "lobby.png", "projects")
	require.NoError(t, err)
	require.NotEmpty(t, url)
}

func TestDerive_UndecodableUploadPassesThrough(t *testing.T) {
	root := t.TempDir()
	p := NewPipeline(Config{}, NewDirTarget(root))

	raw := []byte("definitely not an image")
	_, err := p.Derive(raw, "broken.jpg", "projects")
	require.NoError(t, err, "transform failure must never fail the upload")

	stored, err := os.ReadFile(storedFile(t, root, "projects"))
	require.NoError(t, err)
	require.Equal(t, raw, stored)
}

func TestDerive_UnrecognizedExtensionPassesOriginalBytes(t *testing.T) {
	root := t.TempDir()
	p := NewPipeline(Config{}, NewDirTarget(root))

	raw := pngBytes(t, 60, 60, baseColor)
	_, err := p.Derive(raw, "scan.tiff", "projects")
	require.NoError(t, err)

	stored, err := os.ReadFile(storedFile(t, root, "projects"))
	require.NoError(t, err)
	require.Equal(t, raw, stored)
}

func TestDerive_WritesToEveryStorageRoot(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	p := NewPipeline(Config{}, NewDirTarget(rootA), NewDirTarget(rootB))

	url, err := p.Derive(pngBytes(t, 50, 50, baseColor), "photo.png", "projects")
	require.NoError(t, err)

	rel := strings.TrimPrefix(url, "/images/uploads/")
	require.FileExists(t, filepath.Join(rootA, filepath.FromSlash(rel)))
	require.FileExists(t, filepath.Join(rootB, filepath.FromSlash(rel)))
}

func TestDerive_SucceedsWhenOneRootFails(t *testing.T) {
	rootA := t.TempDir()
	// A root whose parent is an existing file cannot be created.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	badRoot := filepath.Join(blocker, "uploads")

	p := NewPipeline(Config{}, NewDirTarget(badRoot), NewDirTarget(rootA))

	url, err := p.Derive(pngBytes(t, 50, 50, baseColor), "photo.png", "projects")
	require.NoError(t, err, "one surviving root is enough")

	rel := strings.TrimPrefix(url, "/images/uploads/")
	require.FileExists(t, filepath.Join(rootA, filepath.FromSlash(rel)))
}

func TestDelete_RemovesFromEveryRoot(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	p := NewPipeline(Config{}, NewDirTarget(rootA), NewDirTarget(rootB))

	url, err := p.Derive(pngBytes(t, 50, 50, baseColor), "photo.png", "projects")
	require.NoError(t, err)

	p.Delete(url)

	rel := strings.TrimPrefix(url, "/images/uploads/")
	require.NoFileExists(t, filepath.Join(rootA, filepath.FromSlash(rel)))
	require.NoFileExists(t, filepath.Join(rootB, filepath.FromSlash(rel)))
}

func TestDelete_IgnoresNonManagedReferences(t *testing.T) {
	root := t.TempDir()
	p := NewPipeline(Config{}, NewDirTarget(root))

	outside := filepath.Join(root, "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	p.Delete("/images/static/logo.png")
	p.Delete("https://example.com/images/uploads/x.jpg")
	p.Delete("")

	require.FileExists(t, outside)
}

func TestRemoveFolder(t *testing.T) {
	root := t.TempDir()
	p := NewPipeline(Config{}, NewDirTarget(root))

	_, err := p.Derive(pngBytes(t, 50, 50, baseColor), "a.png", "projects/hotel/3")
	require.NoError(t, err)

	p.RemoveFolder("projects/hotel/3")

	require.NoDirExists(t, filepath.Join(root, "projects", "hotel", "3"))
}
