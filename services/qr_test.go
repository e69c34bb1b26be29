package services

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkforge/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestQRServicePNG(t *testing.T) {
	svc := QRService{}

	png, err := svc.PNG("http://localhost:8080/alice/promo", QRSizeLarge)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "output should be a PNG")
}

func TestQRServiceDataURI(t *testing.T) {
	svc := QRService{}

	uri, err := svc.DataURI("http://localhost:8080/alice/promo", QRSizeSmall)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	assert.Greater(t, len(uri), len("data:image/png;base64,"))
}

func TestQRServiceWriteZIP(t *testing.T) {
	svc := QRService{}
	links := []models.Link{
		{ShortCode: "alice/promo", DisplayName: "Promo"},
		{ShortCode: "alice/sale", DisplayName: "Summer/Sale?"},
	}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteZIP(&buf, "http://localhost:8080", links))

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, reader.File, 2)
	assert.Equal(t, "Promo_qr_code.png", reader.File[0].Name)
	assert.Equal(t, "Summer_Sale__qr_code.png", reader.File[1].Name)
}

func TestQRFilename(t *testing.T) {
	assert.Equal(t, "Promo_qr_code.png", QRFilename("Promo"))
	assert.Equal(t, "a_b_c_d_qr_code.png", QRFilename(`a<b>c"d`))
}

func TestShortURL(t *testing.T) {
	assert.Equal(t, "http://x/alice/promo", ShortURL("http://x", "alice/promo"))
	assert.Equal(t, "http://x/alice/promo", ShortURL("http://x/", "alice/promo"))
}
