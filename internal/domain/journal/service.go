package journal

import (
	"context"
	"io"
	"log/slog"

	"hradmin/internal/platform/filestore"
)

const coverDir = "article"

// CoverTypes are the content types accepted for an article cover.
var CoverTypes = []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}

// Upload is an incoming file part.
type Upload struct {
	Filename string
	Body     io.Reader
}

type Files interface {
	Save(ctx context.Context, dir, original string, r io.Reader, allowed ...string) (filestore.Stored, error)
	Remove(ctx context.Context, name string) error
}

// ArticleService orders file and row writes: the new file is stored first, the row is written
// in a transaction, and the replaced file is removed only after commit. A failed row write
// removes the file it just stored.
type ArticleService struct {
	Store ArticleStore
	Files Files
}

func (s *ArticleService) Create(ctx context.Context, input ArticleInput, cover *Upload) error {
	stored, err := s.save(ctx, cover)
	if err != nil {
		return err
	}
	if stored != "" {
		input.Cover = &stored
	}
	if err := s.Store.InsertArticle(ctx, input); err != nil {
		s.discard(ctx, stored)
		return err
	}
	return nil
}

func (s *ArticleService) Patch(ctx context.Context, id string, patch ArticlePatch, cover *Upload) error {
	stored, err := s.save(ctx, cover)
	if err != nil {
		return err
	}
	if stored != "" {
		patch.Cover = &stored
	}
	previous, err := s.Store.PatchArticle(ctx, id, patch)
	if err != nil {
		s.discard(ctx, stored)
		return err
	}
	if previous != nil && *previous != stored {
		s.discard(ctx, *previous)
	}
	return nil
}

func (s *ArticleService) Remove(ctx context.Context, id string) error {
	previous, err := s.Store.DeleteArticle(ctx, id)
	if err != nil {
		return err
	}
	if previous != nil {
		s.discard(ctx, *previous)
	}
	return nil
}

func (s *ArticleService) Publish(ctx context.Context, id string) error {
	return s.Store.PublishArticle(ctx, id)
}

func (s *ArticleService) save(ctx context.Context, upload *Upload) (string, error) {
	if upload == nil {
		return "", nil
	}
	stored, err := s.Files.Save(ctx, coverDir, upload.Filename, upload.Body, CoverTypes...)
	if err != nil {
		return "", err
	}
	return stored.Name, nil
}

func (s *ArticleService) discard(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := s.Files.Remove(ctx, name); err != nil {
		slog.Warn("cover removal failed", "file", name, "err", err)
	}
}
