// Package journal manages journals and their articles, including the article cover file.
package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hradmin/internal/domain/crud"
	"hradmin/internal/platform/apperr"
	"hradmin/internal/platform/db"
)

var journals = db.Table[Journal]{
	Name:   "journal.journal",
	Entity: "journal",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.name, t.description, ` + crud.AuditColumns + `
    FROM journal.journal t ` + crud.AuditJoin,
	OrderBy: "t.name ASC",
	Touch:   true,
}

var articles = db.Table[Article]{
	Name:   "journal.article",
	Entity: "article",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.journal_uuid, j.name AS journal_name, t.title, t.abstract, t.cover, t.status,
      t.published_date, ` + crud.AuditColumns + `
    FROM journal.article t
    JOIN journal.journal j ON j.uuid = t.journal_uuid ` + crud.AuditJoin,
	OrderBy: "t.created_at DESC",
	Touch:   true,
}

func NewJournals(pool db.DB) *crud.Repo[Journal, JournalInput, JournalPatch] {
	return &crud.Repo[Journal, JournalInput, JournalPatch]{DB: pool, Table: journals}
}

func NewArticles(pool db.DB) *crud.Repo[Article, ArticleInput, ArticlePatch] {
	return &crud.Repo[Article, ArticleInput, ArticlePatch]{
		DB:    pool,
		Table: articles,
		Filters: map[string]string{
			"journal_uuid": "t.journal_uuid",
			"status":       "t.status",
		},
	}
}

// ArticleStore is the row side of article writes. Methods that replace or drop a cover return
// the cover that was stored before so the caller can delete it after commit.
type ArticleStore interface {
	InsertArticle(ctx context.Context, input ArticleInput) error
	PatchArticle(ctx context.Context, id string, patch ArticlePatch) (previous *string, err error)
	DeleteArticle(ctx context.Context, id string) (previous *string, err error)
	PublishArticle(ctx context.Context, id string) error
}

type Store struct {
	DB db.DB
}

func (s *Store) InsertArticle(ctx context.Context, input ArticleInput) error {
	return articles.Insert(ctx, s.DB, input)
}

func (s *Store) PatchArticle(ctx context.Context, id string, patch ArticlePatch) (*string, error) {
	var previous *string
	err := db.InTx(ctx, s.DB, func(tx pgx.Tx) error {
		cover, err := lockCover(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := articles.Patch(ctx, tx, id, patch); err != nil {
			return err
		}
		if patch.Cover != nil {
			previous = cover
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return previous, nil
}

func (s *Store) DeleteArticle(ctx context.Context, id string) (*string, error) {
	var previous *string
	err := db.InTx(ctx, s.DB, func(tx pgx.Tx) error {
		cover, err := lockCover(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := articles.Delete(ctx, tx, id); err != nil {
			return err
		}
		previous = cover
		return nil
	})
	if err != nil {
		return nil, err
	}
	return previous, nil
}

func (s *Store) PublishArticle(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE journal.article
    SET status = 'published', published_date = COALESCE(published_date, now()), updated_at = now()
    WHERE uuid = $1`, id)
	if err != nil {
		return fmt.Errorf("publish article: %w", apperr.FromDB(err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("article")
	}
	return nil
}

func lockCover(ctx context.Context, tx pgx.Tx, id string) (*string, error) {
	var cover *string
	err := tx.QueryRow(ctx, `SELECT cover FROM journal.article WHERE uuid = $1 FOR UPDATE`, id).Scan(&cover)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("article")
	}
	return cover, err
}
