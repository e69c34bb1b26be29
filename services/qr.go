package services

import (
	"archive/zip"
	"encoding/base64"
	"image/color"
	"io"
	"regexp"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"linkforge/models"
)

const (
	// QRSizeSmall is used for inline dashboard previews, QRSizeLarge
	// for downloads.
	QRSizeSmall = 128
	QRSizeLarge = 512
)

// Brand colors for generated QR images.
var (
	qrForeground = color.RGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff}
	qrBackground = color.Black
)

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

type QRService struct{}

// PNG renders the short URL as a QR code image.
func (QRService) PNG(shortURL string, size int) ([]byte, error) {
	qr, err := qrcode.New(shortURL, qrcode.Low)
	if err != nil {
		return nil, err
	}
	qr.ForegroundColor = qrForeground
	qr.BackgroundColor = qrBackground
	return qr.PNG(size)
}

// DataURI renders the QR code as a base64 data URI for inline embedding.
func (s QRService) DataURI(shortURL string, size int) (string, error) {
	png, err := s.PNG(shortURL, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// WriteZIP writes one QR PNG per link into a ZIP archive.
func (s QRService) WriteZIP(w io.Writer, baseURL string, links []models.Link) error {
	archive := zip.NewWriter(w)

	for _, link := range links {
		png, err := s.PNG(ShortURL(baseURL, link.ShortCode), QRSizeLarge)
		if err != nil {
			return err
		}

		entry, err := archive.Create(QRFilename(link.DisplayName))
		if err != nil {
			return err
		}
		if _, err := entry.Write(png); err != nil {
			return err
		}
	}

	return archive.Close()
}

// QRFilename builds a filesystem-safe attachment name for a link's QR.
func QRFilename(displayName string) string {
	safe := unsafeFilenameChars.ReplaceAllString(displayName, "_")
	return safe + "_qr_code.png"
}

// ShortURL joins the base URL and a short code.
func ShortURL(baseURL, shortCode string) string {
	return strings.TrimRight(baseURL, "/") + "/" + shortCode
}
