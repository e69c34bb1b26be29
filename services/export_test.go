package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkforge/models"
)

func TestWriteLinksCSV(t *testing.T) {
	hash := "not-a-real-hash"
	expires := time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC)
	links := []models.Link{
		{
			OriginalURL: "https://example.com",
			ShortCode:   "alice/promo",
			DisplayName: "Promo",
			Clicks:      42,
			CreatedAt:   time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			OriginalURL:    "https://example.org",
			ShortCode:      "alice/vault",
			DisplayName:    "Vault",
			PasswordHash:   &hash,
			ExpirationDate: &expires,
			CreatedAt:      time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLinksCSV(&buf, "http://localhost:8080/", links))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"Short URL", "Original URL", "Display Name", "Clicks",
		"Password Protected", "Expiration Date", "Created Date",
	}, rows[0])

	assert.Equal(t, []string{
		"http://localhost:8080/alice/promo", "https://example.com", "Promo",
		"42", "No", "Never", "2026-01-15 10:30",
	}, rows[1])

	assert.Equal(t, []string{
		"http://localhost:8080/alice/vault", "https://example.org", "Vault",
		"0", "Yes", "2026-12-31 23:59", "2026-02-01 08:00",
	}, rows[2])
}

func TestWriteLinksCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLinksCSV(&buf, "http://localhost:8080", nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
