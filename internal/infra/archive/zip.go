package archive

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/shared"

	"github.com/klauspost/compress/zip"
)

// ZipArchiver packs ticket images into a ZIP.
type ZipArchiver struct{}

func NewZipArchiver() *ZipArchiver {
	return &ZipArchiver{}
}

func (*ZipArchiver) Archive(images []shared.TicketImage, modified time.Time) ([]byte, error) {
	return TicketZip(images, modified)
}

func (*ZipArchiver) FileName(sellerName, tableName string, count int) string {
	return FileName(sellerName, tableName, count)
}

// TicketZip writes one <code>.png entry per ticket. Images are PNGs and
// already compressed, so entries are stored rather than deflated.
func TicketZip(images []shared.TicketImage, modified time.Time) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	seen := make(map[string]struct{}, len(images))
	for _, e := range images {
		name := e.Code + ".png"
		if _, dup := seen[name]; dup {
			return nil, errs.Newf("duplicate archive entry %s", name)
		}
		seen[name] = struct{}{}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Store,
			Modified: modified,
		})
		if err != nil {
			return nil, errs.Wrapf(err, "failed to add %s", name)
		}
		if _, err := w.Write(e.Image); err != nil {
			return nil, errs.Wrapf(err, "failed to write %s", name)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, errs.Wrap(err, "failed to finish archive")
	}
	return buf.Bytes(), nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName suggests "<seller>-<table>-<count>.zip".
func FileName(sellerName, tableName string, count int) string {
	clean := func(s string) string {
		s = unsafeName.ReplaceAllString(strings.TrimSpace(s), "_")
		s = strings.Trim(s, "_")
		if s == "" {
			return "unknown"
		}
		return s
	}
	return fmt.Sprintf("%s-%s-%d.zip", clean(sellerName), clean(tableName), count)
}
