package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	commoncrypto "github.com/rakhimovb/staylist/internal/common/crypto"
	commonerrors "github.com/rakhimovb/staylist/internal/common/errors"
	"github.com/rakhimovb/staylist/internal/common/logger"
	"github.com/rakhimovb/staylist/internal/item/domain"
	"github.com/rakhimovb/staylist/internal/item/repository"
	userdomain "github.com/rakhimovb/staylist/internal/user/domain"
)

type ItemService struct {
	repo     repository.Repository
	idGen    commoncrypto.IDGenerator
	validate *validator.Validate
	now      func() time.Time
	log      *logger.Logger
}

func NewItemService(repo repository.Repository, idGen commoncrypto.IDGenerator, log *logger.Logger) *ItemService {
	return &ItemService{
		repo:     repo,
		idGen:    idGen,
		validate: newValidator(),
		now:      time.Now,
		log:      log,
	}
}

type ItemInput struct {
	Name        string
	Description string
}

func (s *ItemService) List(ctx context.Context, ownerID userdomain.ID) ([]domain.Item, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(ownerID),
			"action":  "list_items_failed",
		}).Errorf("list items failed: %v", err)
		return nil, commonerrors.ErrInternalError.WithCause(err)
	}
	return items, nil
}

func (s *ItemService) Get(ctx context.Context, ownerID userdomain.ID, id domain.ID) (domain.Item, error) {
	item, err := s.repo.FindByOwnerAndID(ctx, ownerID, id)
	if err != nil {
		return domain.Item{}, s.wrapLookupError(ctx, ownerID, id, "get_item_failed", err)
	}
	return item, nil
}

func (s *ItemService) Create(ctx context.Context, ownerID userdomain.ID, input ItemInput) (domain.Item, error) {
	if messages := validateItem(s.validate, input); messages != nil {
		return domain.Item{}, messages
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return domain.Item{}, commonerrors.ErrInternalError.WithCause(err)
	}

	now := s.now().UTC()
	item := domain.Item{
		ID:          domain.ID(id),
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(ownerID),
			"action":  "create_item_failed",
		}).Errorf("create item failed: %v", err)
		return domain.Item{}, commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(ownerID),
		"item_id": string(item.ID),
		"action":  "item_created",
	}).Info("item created")
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, ownerID userdomain.ID, id domain.ID, input ItemInput) (domain.Item, error) {
	if messages := validateItem(s.validate, input); messages != nil {
		return domain.Item{}, messages
	}

	item, err := s.repo.FindByOwnerAndID(ctx, ownerID, id)
	if err != nil {
		return domain.Item{}, s.wrapLookupError(ctx, ownerID, id, "update_item_failed", err)
	}

	item.Name = input.Name
	item.Description = input.Description
	item.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, item); err != nil {
		return domain.Item{}, s.wrapLookupError(ctx, ownerID, id, "update_item_failed", err)
	}
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, ownerID userdomain.ID, id domain.ID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return s.wrapLookupError(ctx, ownerID, id, "delete_item_failed", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(ownerID),
		"item_id": string(id),
		"action":  "item_deleted",
	}).Info("item deleted")
	return nil
}

// wrapLookupError keeps a foreign or missing id indistinguishable from the
// caller's point of view: both surface as a plain not found.
func (s *ItemService) wrapLookupError(ctx context.Context, ownerID userdomain.ID, id domain.ID, action string, err error) error {
	if errors.Is(err, repository.ErrItemNotFound) {
		return commonerrors.ErrItemNotFound
	}
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(ownerID),
		"item_id": string(id),
		"action":  action,
	}).Errorf("item lookup failed: %v", err)
	return commonerrors.ErrInternalError.WithCause(err)
}
