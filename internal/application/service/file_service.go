package service

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/sangkips/bizhub-api/internal/infrastructure/storage"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/sangkips/bizhub-api/pkg/utils"
)

// SignedURL is a time-limited link to a stored file
type SignedURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FileService hands out signed download links and serves the files they name
type FileService struct {
	store      storage.FileStore
	jwtManager *utils.JWTManager
	baseURL    string
	ttl        time.Duration
}

// NewFileService creates a new file service. Links point at
// {baseURL}/api/v1/files and stay valid for ttl.
func NewFileService(store storage.FileStore, jwtManager *utils.JWTManager, baseURL string, ttl time.Duration) *FileService {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &FileService{
		store:      store,
		jwtManager: jwtManager,
		baseURL:    strings.TrimRight(baseURL, "/"),
		ttl:        ttl,
	}
}

// Sign returns a signed link for the object at key
func (s *FileService) Sign(key, filename string) (*SignedURL, error) {
	token, err := s.jwtManager.GenerateFileToken(key, filename, s.ttl)
	if err != nil {
		return nil, err
	}
	return &SignedURL{
		URL:       s.baseURL + "/api/v1/files?token=" + url.QueryEscape(token),
		ExpiresAt: time.Now().Add(s.ttl),
	}, nil
}

// Open validates a signed token and opens the object it names
func (s *FileService) Open(ctx context.Context, token string) (io.ReadCloser, *storage.Object, error) {
	claims, err := s.jwtManager.ValidateFileToken(token)
	if err != nil {
		return nil, nil, apperror.NewUnauthorizedError("Invalid or expired file link")
	}

	rc, obj, err := s.store.Open(ctx, claims.Key)
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidKey) {
		return nil, nil, apperror.NewNotFoundError("File")
	}
	if err != nil {
		return nil, nil, err
	}
	if claims.Filename != "" {
		obj.Name = claims.Filename
	}
	return rc, obj, nil
}
