package skillsite

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/eringen/skillsite/views"
)

const (
	maxImageWidth = 1200
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	mediaURL      = "/media/"
)

// processImage decodes an image from src, shrinks it to maxImageWidth if
// wider, and encodes it as JPEG.
func processImage(src io.Reader, originalName string) (views.MediaItem, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return views.MediaItem{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return views.MediaItem{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	base := Slugify(strings.TrimSuffix(originalName, filepath.Ext(originalName)))
	if base == "" {
		base = "image"
	}

	return views.MediaItem{
		Filename:     base + ".jpg",
		OriginalName: originalName,
		Width:        w,
		Height:       h,
		Size:         buf.Len(),
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}, buf.Bytes(), nil
}

// uniqueFilename appends a counter until the name is free on disk and in
// the store.
func (a *App) uniqueFilename(name string) (string, error) {
	base := strings.TrimSuffix(name, ".jpg")
	candidate := name
	for n := 2; ; n++ {
		_, statErr := os.Stat(filepath.Join(a.Config.MediaDir, candidate))
		exists, err := a.Store.MediaExists(candidate)
		if err != nil {
			return "", err
		}
		if statErr != nil && !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d.jpg", base, n)
	}
}

func (a *App) handleMediaUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, adminPath)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	item, data, err := processImage(io.LimitReader(src, maxUploadSize), file.Filename)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	if item.Filename, err = a.uniqueFilename(item.Filename); err != nil {
		return err
	}

	if err := os.MkdirAll(a.Config.MediaDir, 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(a.Config.MediaDir, item.Filename), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := a.Store.SaveMedia(item); err != nil {
		return err
	}
	c.Logger().Infof("media: stored %s (%dx%d, %d bytes)", item.Filename, item.Width, item.Height, item.Size)

	return a.renderMediaList(c)
}

func (a *App) handleMediaDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, adminPath)
	}

	filename := filepath.Base(c.Param("filename"))
	if filename == "" || filename == "." || filename == "/" {
		return c.String(http.StatusBadRequest, "Filename required")
	}

	// A file already gone is not an error; the record still goes.
	_ = os.Remove(filepath.Join(a.Config.MediaDir, filename))

	if err := a.Store.DeleteMedia(filename); err != nil {
		return err
	}
	return a.renderMediaList(c)
}

func (a *App) handleMediaList(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, adminPath)
	}
	return a.renderMediaList(c)
}

func (a *App) renderMediaList(c echo.Context) error {
	items, err := a.Store.ListMedia()
	if err != nil {
		return err
	}
	for i := range items {
		items[i].URL = mediaURL + items[i].Filename
	}
	return render(c, http.StatusOK, views.AdminMedia(items, CsrfToken(c)))
}
