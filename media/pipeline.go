package media

import (
	"bytes"
	"image"
	"image/png"
	"path"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/purdeep/studio-backend/errs"
)

const (
	// DefaultMaxUploadBytes caps raw upload size at 20MiB.
	DefaultMaxUploadBytes = 20 * 1024 * 1024
	// DefaultMaxDimension clamps the longer image side on ingest.
	DefaultMaxDimension = 2048
	// DefaultAssetPrefix is the public path under which derived media resolves.
	DefaultAssetPrefix = "/images/uploads"

	encodeQuality = 80
)

// Config tunes the derivation pipeline. Zero values fall back to defaults;
// an empty WatermarkPath disables watermarking entirely.
type Config struct {
	AssetPrefix    string
	WatermarkPath  string
	MaxUploadBytes int64
	MaxDimension   int
}

// Pipeline ingests raw uploads: validate size, decode, clamp dimensions,
// overlay the studio watermark, re-encode, and persist under a generated
// unique name across every configured storage target. Transform steps degrade
// gracefully; only size validation and a total persistence failure reject an
// upload.
type Pipeline struct {
	targets        []Target
	assetPrefix    string
	watermarkPath  string
	maxUploadBytes int64
	maxDimension   int
	logger         zerolog.Logger
}

func NewPipeline(cfg Config, targets ...Target) *Pipeline {
	p := &Pipeline{
		targets:        targets,
		assetPrefix:    cfg.AssetPrefix,
		watermarkPath:  cfg.WatermarkPath,
		maxUploadBytes: cfg.MaxUploadBytes,
		maxDimension:   cfg.MaxDimension,
		logger:         log.With().Str("component", "mediaPipeline").Logger(),
	}
	if p.assetPrefix == "" {
		p.assetPrefix = DefaultAssetPrefix
	}
	if p.maxUploadBytes <= 0 {
		p.maxUploadBytes = DefaultMaxUploadBytes
	}
	if p.maxDimension <= 0 {
		p.maxDimension = DefaultMaxDimension
	}
	return p
}

// AssetPrefix returns the public prefix derived references start with.
func (p *Pipeline) AssetPrefix() string {
	return p.assetPrefix
}

// Derive runs the full ingestion pipeline on one upload and returns the
// public reference path of the stored file.
func (p *Pipeline) Derive(raw []byte, declaredFilename, folder string) (string, error) {
	if int64(len(raw)) > p.maxUploadBytes {
		return "", errs.NewMaxUploadSizeError(p.maxUploadBytes)
	}

	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "misc"
	}
	if strings.Contains(folder, "..") {
		return "", errs.NewInvalidFieldError("folder", "must not traverse directories")
	}

	ext := strings.ToLower(path.Ext(declaredFilename))
	if ext == "" || ext == "." {
		ext = ".jpg"
	}

	processed := p.transform(raw, ext, folder)

	filename := uuid.NewString() + ext

	saved := 0
	for _, t := range p.targets {
		if err := t.Save(folder, filename, processed); err != nil {
			p.logger.Error().Err(err).Str("target", t.Name()).Str("folder", folder).Msg("save failed")
			continue
		}
		saved++
	}
	if saved == 0 {
		return "", errs.NewNoStorageTargetError(folder, filename)
	}

	return p.assetPrefix + "/" + folder + "/" + filename, nil
}

// transform decodes, downsizes, watermarks and re-encodes the upload. Any
// failure falls back to a less-processed image; the original bytes are the
// floor.
func (p *Pipeline) transform(raw []byte, ext, folder string) []byte {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		p.logger.Warn().Err(err).Msg("decode failed, storing original bytes")
		return raw
	}

	bounds := img.Bounds()
	if bounds.Dx() > p.maxDimension || bounds.Dy() > p.maxDimension {
		img = imaging.Fit(img, p.maxDimension, p.maxDimension, imaging.Lanczos)
	}

	// Team photos are never watermarked.
	if folder != "team" && !strings.HasPrefix(folder, "team/") {
		if marked, err := p.applyWatermark(img); err != nil {
			p.logger.Warn().Err(err).Msg("watermark failed, storing unmarked image")
		} else {
			img = marked
		}
	}

	encoded, err := encodeImage(img, ext)
	if err != nil {
		p.logger.Warn().Err(err).Str("ext", ext).Msg("encode failed, storing original bytes")
		return raw
	}
	if encoded == nil {
		// Unrecognized extension: pass the original through untouched.
		return raw
	}
	return encoded
}

// encodeImage re-encodes to the format implied by ext at the pipeline's
// fixed quality. A nil result means the extension has no encoder.
func encodeImage(img image.Image, ext string) ([]byte, error) {
	buf := new(bytes.Buffer)
	switch ext {
	case ".jpg", ".jpeg":
		if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(encodeQuality)); err != nil {
			return nil, err
		}
	case ".png":
		if err := imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
			return nil, err
		}
	case ".webp":
		if err := webp.Encode(buf, img, &webp.Options{Quality: encodeQuality}); err != nil {
			return nil, err
		}
	default:
		return nil, nil
	}
	return buf.Bytes(), nil
}

// Delete removes a previously derived file from every storage target.
// References outside the managed asset prefix are silently ignored, and
// per-target failures are logged, never raised.
func (p *Pipeline) Delete(url string) {
	if !strings.HasPrefix(url, p.assetPrefix+"/") {
		return
	}
	rel := strings.TrimPrefix(url, p.assetPrefix+"/")
	if rel == "" || strings.Contains(rel, "..") {
		return
	}

	for _, t := range p.targets {
		if err := t.Remove(rel); err != nil {
			p.logger.Error().Err(err).Str("target", t.Name()).Str("file", rel).Msg("delete failed")
		}
	}
}

// RemoveFolder best-effort deletes a whole logical folder (for example the
// per-project upload directory) from every storage target.
func (p *Pipeline) RemoveFolder(folder string) {
	folder = strings.Trim(folder, "/")
	if folder == "" || strings.Contains(folder, "..") {
		return
	}

	for _, t := range p.targets {
		if err := t.RemoveAll(folder); err != nil {
			p.logger.Error().Err(err).Str("target", t.Name()).Str("folder", folder).Msg("folder removal failed")
		}
	}
}
