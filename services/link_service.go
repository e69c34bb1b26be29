package services

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"linkforge/models"
)

const (
	linkPasswordMinLen = 6
	linkPasswordMaxLen = 15
)

// LinkService owns link creation, resolution, click recording and the
// bulk operations. Every logical mutation runs in a single transaction.
type LinkService struct {
	db    *gorm.DB
	codes *CodeGenerator
}

func NewLinkService(db *gorm.DB) *LinkService {
	return &LinkService{db: db, codes: NewCodeGenerator(db)}
}

type CreateLinkParams struct {
	OwnerID        uint
	OwnerName      string
	URL            string
	DisplayName    string
	CustomCode     string
	Password       string
	ExpirationDays int
}

// Create validates and stores a new link. Random-code races lost to the
// unique index are retried with a fresh draw; a custom-code race
// surfaces as ErrShortCodeExists.
func (s *LinkService) Create(p CreateLinkParams) (*models.Link, error) {
	cleanURL, err := NormalizeURL(p.URL)
	if err != nil {
		return nil, err
	}

	display := strings.TrimSpace(p.DisplayName)
	if display == "" {
		display = displayNameFromURL(cleanURL)
	}

	var passwordHash *string
	if password := strings.TrimSpace(p.Password); password != "" {
		if len(password) < linkPasswordMinLen || len(password) > linkPasswordMaxLen {
			return nil, ErrInvalidPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		passwordHash = &h
	}

	var expiration *time.Time
	if p.ExpirationDays > 0 {
		t := time.Now().UTC().AddDate(0, 0, p.ExpirationDays)
		expiration = &t
	}

	custom := strings.TrimSpace(p.CustomCode)
	attempts := maxCodeAttempts
	if custom != "" {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		code, err := s.codes.Generate(p.OwnerName, custom)
		if err != nil {
			return nil, err
		}

		link := models.Link{
			UserID:         p.OwnerID,
			OriginalURL:    cleanURL,
			ShortCode:      code,
			DisplayName:    display,
			PasswordHash:   passwordHash,
			ExpirationDate: expiration,
			IsActive:       true,
		}

		err = s.db.Create(&link).Error
		if err == nil {
			return &link, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if custom != "" {
				return nil, ErrShortCodeExists
			}
			continue
		}
		return nil, err
	}
	return nil, ErrCodeGenerationExhausted
}

// Resolve looks up a short code and walks the gates in order: found,
// active, unexpired, password. The caller records the click and
// redirects on success.
func (s *LinkService) Resolve(shortCode, password string) (*models.Link, error) {
	var link models.Link
	err := s.db.Where("short_code = ?", shortCode).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}

	if !link.IsActive {
		return nil, ErrLinkDeactivated
	}
	if link.Expired(time.Now().UTC()) {
		return nil, ErrLinkExpired
	}
	if !link.CheckPassword(password) {
		return nil, &PasswordRequiredError{DisplayName: link.DisplayName}
	}
	return &link, nil
}

// RecordClick appends one analytics row and bumps the counter in a
// single transaction so the two can never drift.
func (s *LinkService) RecordClick(linkID uint, ipAddress, referrer, userAgent string) error {
	if referrer == "" {
		referrer = "Direct"
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		click := models.Click{
			LinkID:    linkID,
			IPAddress: ipAddress,
			Referrer:  referrer,
			UserAgent: userAgent,
			ClickedAt: time.Now().UTC(),
		}
		if err := tx.Create(&click).Error; err != nil {
			return err
		}
		return tx.Model(&models.Link{}).Where("id = ?", linkID).
			UpdateColumn("clicks", gorm.Expr("clicks + ?", 1)).Error
	})
}

// UpdateDestination changes where an owned link points. The short code
// never changes.
func (s *LinkService) UpdateDestination(linkID, ownerID uint, newURL string) error {
	cleanURL, err := NormalizeURL(newURL)
	if err != nil {
		return err
	}

	result := s.db.Model(&models.Link{}).
		Where("id = ? AND user_id = ?", linkID, ownerID).
		Updates(map[string]interface{}{
			"original_url": cleanURL,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

// Deactivate soft-deletes an owned link.
func (s *LinkService) Deactivate(linkID, ownerID uint) error {
	result := s.db.Model(&models.Link{}).
		Where("id = ? AND user_id = ?", linkID, ownerID).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

// DeleteMany hard-deletes the owned links among linkIDs together with
// their clicks and returns how many links were actually deleted.
// Unowned ids are silently skipped.
func (s *LinkService) DeleteMany(linkIDs []uint, ownerID uint) (int64, error) {
	if len(linkIDs) == 0 {
		return 0, nil
	}

	var deleted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Link{}).Select("id").
			Where("id IN ? AND user_id = ?", linkIDs, ownerID)
		if err := tx.Where("link_id IN (?)", owned).Delete(&models.Click{}).Error; err != nil {
			return err
		}

		result := tx.Where("id IN ? AND user_id = ?", linkIDs, ownerID).Delete(&models.Link{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

// ListByOwner returns the user's links, newest first, optionally
// filtered by a substring over display name, destination and code.
func (s *LinkService) ListByOwner(ownerID uint, search string) ([]models.Link, error) {
	query := s.db.Where("user_id = ?", ownerID)
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		query = query.Where("display_name LIKE ? OR original_url LIKE ? OR short_code LIKE ?",
			like, like, like)
	}

	var links []models.Link
	if err := query.Order("created_at desc").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// ListOwnedByIDs returns the subset of linkIDs owned by the user.
func (s *LinkService) ListOwnedByIDs(linkIDs []uint, ownerID uint) ([]models.Link, error) {
	var links []models.Link
	err := s.db.Where("id IN ? AND user_id = ?", linkIDs, ownerID).Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

// GetOwned fetches a single link if the user owns it.
func (s *LinkService) GetOwned(linkID, ownerID uint) (*models.Link, error) {
	var link models.Link
	err := s.db.Where("id = ? AND user_id = ?", linkID, ownerID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// ClickStats returns the click rows for an owned link, newest first.
func (s *LinkService) ClickStats(linkID, ownerID uint) ([]models.Click, error) {
	if _, err := s.GetOwned(linkID, ownerID); err != nil {
		return nil, err
	}

	var clicks []models.Click
	err := s.db.Where("link_id = ?", linkID).Order("clicked_at desc").Find(&clicks).Error
	if err != nil {
		return nil, err
	}
	return clicks, nil
}

// UserStats are the dashboard totals for one user.
type UserStats struct {
	TotalLinks   int64 `json:"total_links"`
	TotalClicks  int64 `json:"total_clicks"`
	ActiveLinks  int64 `json:"active_links"`
	ExpiredLinks int64 `json:"expired_links"`
}

func (s *LinkService) Stats(ownerID uint) (UserStats, error) {
	var stats UserStats

	if err := s.db.Model(&models.Link{}).Where("user_id = ?", ownerID).
		Count(&stats.TotalLinks).Error; err != nil {
		return stats, err
	}
	if err := s.db.Model(&models.Link{}).Where("user_id = ?", ownerID).
		Select("COALESCE(SUM(clicks), 0)").Scan(&stats.TotalClicks).Error; err != nil {
		return stats, err
	}
	if err := s.db.Model(&models.Link{}).Where("user_id = ? AND is_active = ?", ownerID, true).
		Count(&stats.ActiveLinks).Error; err != nil {
		return stats, err
	}
	if err := s.db.Model(&models.Link{}).
		Where("user_id = ? AND expiration_date IS NOT NULL AND expiration_date < ?",
			ownerID, time.Now().UTC()).
		Count(&stats.ExpiredLinks).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

// NormalizeURL trims the input, prepends https:// when no scheme is
// present, and rejects anything without a scheme and host.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", ErrInvalidURL
	}
	return raw, nil
}

func displayNameFromURL(cleanURL string) string {
	parsed, err := url.Parse(cleanURL)
	if err != nil || parsed.Host == "" {
		return "Link"
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
