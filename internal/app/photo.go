package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"strings"

	"github.com/okian/roster/internal/domain/session"
	"github.com/okian/roster/internal/domain/types"
	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
	"github.com/rotisserie/eris"
)

const (
	dataURLPrefix = "data:"
	// dataURLOverhead covers the "data:image/...;base64," header and base64 padding.
	dataURLOverhead = 1024
)

// CapturePhoto stores payload as the employee's latest photo on the session.
// payload is raw JPEG/PNG bytes or a base64 data URL.
func (s *Service) CapturePhoto(ctx context.Context, token, id string, payload []byte) (types.PhotoInfo, error) {
	sess, err := s.session(ctx, token)
	if err != nil {
		return types.PhotoInfo{}, err
	}
	if _, ok := sess.Employee(id); !ok {
		return types.PhotoInfo{}, eris.Wrapf(ErrEmployeeNotFound, "id %q", id)
	}
	if limit := encodedLimit(s.maxPhotoBytes); int64(len(payload)) > limit {
		return types.PhotoInfo{}, eris.Wrapf(ErrPhotoTooLarge, "%d encoded bytes, limit %d", len(payload), limit)
	}

	data, err := decodePayload(payload)
	if err != nil {
		return types.PhotoInfo{}, err
	}
	if int64(len(data)) > s.maxPhotoBytes {
		return types.PhotoInfo{}, eris.Wrapf(ErrPhotoTooLarge, "%d bytes, limit %d", len(data), s.maxPhotoBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return types.PhotoInfo{}, eris.Wrapf(ErrInvalidPhoto, "decode: %v", err)
	}
	if format != "jpeg" && format != "png" {
		return types.PhotoInfo{}, eris.Wrapf(ErrInvalidPhoto, "unsupported format %q", format)
	}

	photo := session.Photo{
		EmployeeID:  id,
		ContentType: "image/" + format,
		Data:        data,
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		CapturedAt:  s.now(),
	}
	sess.SetPhoto(photo)
	metrics.RecordPhotoCaptured(len(data))

	s.log().Debug(ctx, "photo captured",
		logger.String("employee", id),
		logger.String("format", format),
		logger.Int("bytes", len(data)),
	)
	return photoInfo(photo), nil
}

// Photo returns the employee's latest captured photo for download.
func (s *Service) Photo(ctx context.Context, token, id string) (types.PhotoFile, error) {
	sess, err := s.session(ctx, token)
	if err != nil {
		return types.PhotoFile{}, err
	}
	e, ok := sess.Employee(id)
	if !ok {
		return types.PhotoFile{}, eris.Wrapf(ErrEmployeeNotFound, "id %q", id)
	}
	p, ok := sess.Photo(id)
	if !ok {
		return types.PhotoFile{}, eris.Wrapf(ErrNoPhoto, "id %q", id)
	}
	return types.PhotoFile{
		PhotoInfo: photoInfo(p),
		Filename:  photoFilename(e.DisplayName(), p.ContentType),
		Data:      p.Data,
	}, nil
}

// encodedLimit is the largest payload that can still decode to maxBytes of
// image data, allowing for base64 expansion in a data URL.
func encodedLimit(maxBytes int64) int64 {
	return maxBytes*4/3 + dataURLOverhead
}

// decodePayload unwraps a base64 data URL; anything else is returned unchanged.
func decodePayload(payload []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(payload)
	if !bytes.HasPrefix(trimmed, []byte(dataURLPrefix)) {
		return payload, nil
	}
	meta, encoded, ok := strings.Cut(string(trimmed[len(dataURLPrefix):]), ",")
	if !ok {
		return nil, eris.Wrap(ErrInvalidPhoto, "data URL without payload")
	}
	if !strings.HasPrefix(meta, "image/") || !strings.HasSuffix(meta, ";base64") {
		return nil, eris.Wrapf(ErrInvalidPhoto, "unsupported data URL %q", meta)
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, eris.Wrapf(ErrInvalidPhoto, "base64: %v", err)
	}
	return data, nil
}

func photoInfo(p session.Photo) types.PhotoInfo {
	return types.PhotoInfo{
		EmployeeID:  p.EmployeeID,
		ContentType: p.ContentType,
		Width:       p.Width,
		Height:      p.Height,
		Size:        len(p.Data),
		CapturedAt:  p.CapturedAt,
	}
}

// photoFilename is "photo-<name>.jpg", or .png for PNG captures. Path and quote
// characters are replaced so the name is safe in a Content-Disposition header.
func photoFilename(name, contentType string) string {
	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', '\r', '\n':
			return '_'
		}
		return r
	}, name)
	return "photo-" + clean + ext
}
