package services

import (
	"encoding/csv"
	"io"
	"strconv"

	"linkforge/models"
)

const csvTimeLayout = "2006-01-02 15:04"

// WriteLinksCSV writes the export rows for the given links. Short URLs
// are built against baseURL.
func WriteLinksCSV(w io.Writer, baseURL string, links []models.Link) error {
	writer := csv.NewWriter(w)

	header := []string{
		"Short URL", "Original URL", "Display Name", "Clicks",
		"Password Protected", "Expiration Date", "Created Date",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, link := range links {
		protected := "No"
		if link.PasswordProtected() {
			protected = "Yes"
		}
		expiration := "Never"
		if link.ExpirationDate != nil {
			expiration = link.ExpirationDate.Format(csvTimeLayout)
		}

		row := []string{
			ShortURL(baseURL, link.ShortCode),
			link.OriginalURL,
			link.DisplayName,
			strconv.FormatInt(link.Clicks, 10),
			protected,
			expiration,
			link.CreatedAt.Format(csvTimeLayout),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
