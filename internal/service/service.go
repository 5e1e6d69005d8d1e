package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"coopcycle-service/internal/events"
	"coopcycle-service/internal/models"
	"coopcycle-service/internal/repository"
)

// Page is one page of a listing with the total number of matching rows.
type Page[D any] struct {
	Items []*D
	Total int64
}

// Service implements the REST operations of one entity on top of its store.
// Client errors come back as *AlertError.
type Service[E, D any] struct {
	def       Entity[E, D]
	store     repository.Store[E]
	validate  *Validator
	publisher events.Publisher
}

func New[E, D any](def Entity[E, D], store repository.Store[E], validate *Validator, publisher events.Publisher) *Service[E, D] {
	if validate == nil {
		validate = NewValidator()
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service[E, D]{def: def, store: store, validate: validate, publisher: publisher}
}

// Name is the entity name used in alerts and events.
func (s *Service[E, D]) Name() string {
	return s.def.Name
}

// ID returns the id carried by d, zero when absent.
func (s *Service[E, D]) ID(d *D) models.ID {
	if d == nil {
		return 0
	}
	return idOf(s.def.DTOID(d))
}

func (s *Service[E, D]) Create(ctx context.Context, d *D) (*D, error) {
	if d == nil {
		return nil, badRequest(s.def.Name, KeyValidation, "empty payload")
	}
	log.Printf("Request to create %s", s.def.Name)

	if s.def.DTOID(d) != nil {
		return nil, badRequest(s.def.Name, KeyIDExists, "A new "+s.def.Name+" cannot already have an ID")
	}
	if err := s.check(d); err != nil {
		return nil, err
	}

	saved, err := s.store.Save(ctx, s.def.ToEntity(d))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.def.Name, err)
	}

	out := s.def.ToDTO(saved)
	s.publish(ctx, events.ActionCreated, out)
	return out, nil
}

// Update replaces every scalar column and foreign key of the entity with id.
func (s *Service[E, D]) Update(ctx context.Context, id models.ID, d *D) (*D, error) {
	if err := s.checkID(id, d); err != nil {
		return nil, err
	}
	log.Printf("Request to update %s: id=%d", s.def.Name, id)

	if err := s.check(d); err != nil {
		return nil, err
	}
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}

	saved, err := s.store.Save(ctx, s.def.ToEntity(d))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound(s.def.Name)
		}
		return nil, fmt.Errorf("update %s %d: %w", s.def.Name, id, err)
	}

	out := s.def.ToDTO(saved)
	s.publish(ctx, events.ActionUpdated, out)
	return out, nil
}

// PartialUpdate merges the non-null scalar fields of d onto the stored
// entity. Only the values d carries are checked, against the patch rules.
func (s *Service[E, D]) PartialUpdate(ctx context.Context, id models.ID, d *D) (*D, error) {
	if err := s.checkID(id, d); err != nil {
		return nil, err
	}
	log.Printf("Request to partially update %s: id=%d", s.def.Name, id)

	if err := s.validate.Patch(d); err != nil {
		return nil, validationError(s.def.Name, err)
	}
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}

	stored, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound(s.def.Name)
		}
		return nil, fmt.Errorf("load %s %d: %w", s.def.Name, id, err)
	}

	s.def.Patch.Apply(stored, d)

	saved, err := s.store.Save(ctx, stored)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound(s.def.Name)
		}
		return nil, fmt.Errorf("patch %s %d: %w", s.def.Name, id, err)
	}

	out := s.def.ToDTO(saved)
	s.publish(ctx, events.ActionUpdated, out)
	return out, nil
}

func (s *Service[E, D]) FindAll(ctx context.Context, page *repository.Pageable, filter repository.Filter) (*Page[D], error) {
	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", s.def.Name, err)
	}

	list, err := s.store.FindAll(ctx, page, filter)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.def.Name, err)
	}

	return &Page[D]{Items: s.def.ToDTOs(list), Total: total}, nil
}

func (s *Service[E, D]) FindOne(ctx context.Context, id models.ID) (*D, error) {
	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", s.def.Name, id, err)
	}
	return s.def.ToDTO(e), nil
}

func (s *Service[E, D]) Delete(ctx context.Context, id models.ID) error {
	log.Printf("Request to delete %s: id=%d", s.def.Name, id)

	if err := s.store.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound(s.def.Name)
		}
		return fmt.Errorf("delete %s %d: %w", s.def.Name, id, err)
	}

	s.announce(ctx, events.New(s.def.Name, events.ActionDeleted, id, nil))
	return nil
}

func (s *Service[E, D]) checkID(id models.ID, d *D) error {
	if d == nil {
		return badRequest(s.def.Name, KeyValidation, "empty payload")
	}
	bodyID := s.def.DTOID(d)
	if bodyID == nil || !bodyID.IsSet() {
		return badRequest(s.def.Name, KeyIDNull, "Invalid id")
	}
	if *bodyID != id {
		return badRequest(s.def.Name, KeyIDInvalid, "Invalid ID")
	}
	return nil
}

func (s *Service[E, D]) check(d *D) error {
	if err := s.validate.Struct(d); err != nil {
		return validationError(s.def.Name, err)
	}
	return nil
}

func (s *Service[E, D]) mustExist(ctx context.Context, id models.ID) error {
	ok, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check %s %d: %w", s.def.Name, id, err)
	}
	if !ok {
		return NotFound(s.def.Name)
	}
	return nil
}

func (s *Service[E, D]) publish(ctx context.Context, action events.Action, d *D) {
	s.announce(ctx, events.New(s.def.Name, action, idOf(s.def.DTOID(d)), d))
}

// announce never fails the write that triggered it.
func (s *Service[E, D]) announce(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		log.Printf("Warning: failed to publish %s %s event for id=%d: %v, continuing", e.Entity, e.Action, e.ID, err)
	}
}
