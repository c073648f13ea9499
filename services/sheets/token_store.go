package sheets

import (
	"context"
	"sync"
	"time"

	"cazinoureview/models"

	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// SaveToken persists the OAuth token from the consent callback. The table
// holds a single row that refreshed tokens overwrite.
func SaveToken(db *gorm.DB, tok *oauth2.Token) error {
	row := models.GoogleToken{
		ID:           1,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	}
	// A refresh response may omit the refresh token; keep the stored one.
	if tok.RefreshToken == "" {
		var existing models.GoogleToken
		if err := db.First(&existing, 1).Error; err == nil {
			row.RefreshToken = existing.RefreshToken
		}
	}
	return db.Save(&row).Error
}

// LoadToken reads the persisted token, or ErrReauthRequired when none is
// usable.
func LoadToken(db *gorm.DB) (*oauth2.Token, error) {
	var row models.GoogleToken
	if err := db.First(&row, 1).Error; err != nil {
		return nil, ErrReauthRequired
	}

	tok := &oauth2.Token{
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
		TokenType:    row.TokenType,
		Expiry:       row.Expiry,
	}
	if tok.RefreshToken == "" && !tok.Valid() {
		return nil, ErrReauthRequired
	}
	return tok, nil
}

// dbTokenSource wraps the oauth2 refreshing source and writes refreshed
// tokens back to the store so restarts keep the session.
type dbTokenSource struct {
	db   *gorm.DB
	base oauth2.TokenSource

	mu   sync.Mutex
	last string
}

// NewDBTokenSource builds a token source backed by the persisted token.
func NewDBTokenSource(ctx context.Context, db *gorm.DB, conf *oauth2.Config) (oauth2.TokenSource, error) {
	tok, err := LoadToken(db)
	if err != nil {
		return nil, err
	}

	return &dbTokenSource{
		db:   db,
		base: conf.TokenSource(ctx, tok),
		last: tok.AccessToken,
	}, nil
}

func (s *dbTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		_ = SaveToken(s.db, tok)
	}
	return tok, nil
}

// TokenHealthy reports whether the persisted token is present and either
// still valid or refreshable.
func TokenHealthy(db *gorm.DB) bool {
	tok, err := LoadToken(db)
	if err != nil {
		return false
	}
	return tok.RefreshToken != "" || tok.Expiry.After(time.Now())
}
