package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"dealboard/internal/discussion"
	"dealboard/internal/models"
	"dealboard/internal/repository"
)

// ErrEmptyComment rejects blank comment bodies.
var ErrEmptyComment = errors.New("comment content must not be empty")

type CommentService struct {
	Repo repository.DealRepository
}

// Thread loads a deal's discussion and assembles the reply forest.
func (s *CommentService) Thread(ctx context.Context, slug string) ([]*discussion.Node, error) {
	deal, err := s.Repo.GetDealBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, storeErr("get deal", err)
	}
	rows, err := s.Repo.ListCommentsByDealID(ctx, deal.ID)
	if err != nil {
		return nil, storeErr("list comments", err)
	}
	return discussion.NewThread(deal.ID, rows).Tree(), nil
}

// AddComment posts a root comment or a reply. Replies are validated against
// the flat arena before anything is persisted, so a reply can never point
// outside its own deal's thread.
func (s *CommentService) AddComment(ctx context.Context, slug string, parentID *string, author, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	deal, err := s.Repo.GetDealBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, storeErr("get deal", err)
	}
	rows, err := s.Repo.ListCommentsByDealID(ctx, deal.ID)
	if err != nil {
		return nil, storeErr("list comments", err)
	}

	comment := models.Comment{
		ID:       uuid.New().String(),
		DealID:   deal.ID,
		ParentID: parentID,
		Author:   author,
		Content:  content,
	}
	thread := discussion.NewThread(deal.ID, rows)
	if err := thread.Add(comment); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateComment(ctx, &comment); err != nil {
		return nil, storeErr("create comment", err)
	}
	return &comment, nil
}

// VoteComment adjusts one comment's tally and returns the new value.
func (s *CommentService) VoteComment(ctx context.Context, id string, direction string) (int, error) {
	delta, err := parseDirection(direction)
	if err != nil {
		return 0, err
	}
	votes, err := s.Repo.AddCommentVote(ctx, id, delta)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, err
		}
		return 0, storeErr("vote comment", err)
	}
	return votes, nil
}
