package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"atelier-backend/internal/domain"

	"github.com/rs/zerolog"
)

type StoreRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]domain.Store, error)
	ListByCategory(ctx context.Context, categoryID int64, limit, offset int) ([]domain.Store, error)
	CountByCategory(ctx context.Context, categoryID int64) (int, error)
	ListAndCount(ctx context.Context, limit, offset int) ([]domain.Store, int, error)
	SearchByName(ctx context.Context, query string, limit, offset int) ([]domain.Store, int, error)
	Save(ctx context.Context, st *domain.Store) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepo interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Save(ctx context.Context, c *domain.Category) error
}

type CommissionRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Commission, error)
	ListByStore(ctx context.Context, storeID int64) ([]domain.Commission, error)
	Save(ctx context.Context, c *domain.Commission) error
	Delete(ctx context.Context, id int64) error
}

type StoreService struct {
	Stores      StoreRepo
	Categories  CategoryRepo
	Commissions CommissionRepo
	Log         zerolog.Logger
}

type CreateStoreInput struct {
	Name         string `json:"name"`
	CoverImg     string `json:"coverImg"`
	Description  string `json:"description,omitempty"`
	CategoryName string `json:"categoryName"`
}

func (s *StoreService) CreateStore(ctx context.Context, creator *domain.User, in CreateStoreInput) (int64, error) {
	category, err := s.getOrCreateCategory(ctx, in.CategoryName)
	if err != nil {
		s.Log.Error().Err(err).Msg("create store: category failed")
		return 0, ErrInternal("Could not create store")
	}
	now := time.Now().UTC()
	st := &domain.Store{
		Name:        in.Name,
		CoverImg:    in.CoverImg,
		Description: in.Description,
		CategoryID:  category.ID,
		CreatorID:   creator.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Stores.Save(ctx, st); err != nil {
		s.Log.Error().Err(err).Msg("create store: save failed")
		return 0, ErrInternal("Could not create store")
	}
	return st.ID, nil
}

func (s *StoreService) getOrCreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	slug := strings.ReplaceAll(trimmed, " ", "-")
	category, err := s.Categories.GetBySlug(ctx, slug)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, ErrNoRows) {
		return nil, err
	}
	category = &domain.Category{
		Name:      trimmed,
		Slug:      slug,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *StoreService) MyStores(ctx context.Context, creator *domain.User) ([]domain.Store, error) {
	stores, err := s.Stores.ListByCreator(ctx, creator.ID)
	if err != nil {
		s.Log.Error().Err(err).Msg("my stores: list failed")
		return nil, ErrInternal("Could not find Stores.")
	}
	return stores, nil
}

type EditStoreInput struct {
	StoreID      int64  `json:"storeId"`
	Name         string `json:"name,omitempty"`
	CoverImg     string `json:"coverImg,omitempty"`
	Description  string `json:"description,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
}

func (s *StoreService) EditStore(ctx context.Context, creator *domain.User, in EditStoreInput) error {
	st, err := s.Stores.GetByID(ctx, in.StoreID)
	if errors.Is(err, ErrNoRows) {
		return ErrNotFound("Store not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("edit store: lookup failed")
		return ErrInternal("Could not edit store")
	}
	if creator.ID != st.CreatorID {
		return ErrForbidden("You can not edit a store that you do not own")
	}

	if in.CategoryName != "" {
		category, err := s.getOrCreateCategory(ctx, in.CategoryName)
		if err != nil {
			s.Log.Error().Err(err).Msg("edit store: category failed")
			return ErrInternal("Could not edit store")
		}
		st.CategoryID = category.ID
	}
	if in.Name != "" {
		st.Name = in.Name
	}
	if in.CoverImg != "" {
		st.CoverImg = in.CoverImg
	}
	if in.Description != "" {
		st.Description = in.Description
	}
	st.UpdatedAt = time.Now().UTC()
	if err := s.Stores.Save(ctx, st); err != nil {
		s.Log.Error().Err(err).Msg("edit store: save failed")
		return ErrInternal("Could not edit store")
	}
	return nil
}

func (s *StoreService) DeleteStore(ctx context.Context, creator *domain.User, storeID int64) error {
	st, err := s.Stores.GetByID(ctx, storeID)
	if errors.Is(err, ErrNoRows) {
		return ErrNotFound("Store not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("delete store: lookup failed")
		return ErrInternal("Could not delete store")
	}
	if creator.ID != st.CreatorID {
		return ErrForbidden("You can not delete a store that you do not own")
	}
	if err := s.Stores.Delete(ctx, storeID); err != nil {
		s.Log.Error().Err(err).Msg("delete store: delete failed")
		return ErrInternal("Could not delete store")
	}
	return nil
}

type CategoryWithCount struct {
	domain.Category
	StoreCount int `json:"storeCount"`
}

func (s *StoreService) AllCategories(ctx context.Context) ([]CategoryWithCount, error) {
	categories, err := s.Categories.List(ctx)
	if err != nil {
		s.Log.Error().Err(err).Msg("all categories: list failed")
		return nil, ErrInternal("Could not load categories")
	}
	out := make([]CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		n, err := s.Stores.CountByCategory(ctx, c.ID)
		if err != nil {
			s.Log.Error().Err(err).Msg("all categories: count failed")
			return nil, ErrInternal("Could not load categories")
		}
		out = append(out, CategoryWithCount{Category: c, StoreCount: n})
	}
	return out, nil
}

type CategoryPage struct {
	Category     *domain.Category `json:"category"`
	Stores       []domain.Store   `json:"stores"`
	TotalPages   int              `json:"totalPages"`
	TotalResults int              `json:"totalResults"`
}

func (s *StoreService) FindCategoryBySlug(ctx context.Context, slug string, page int) (*CategoryPage, error) {
	category, err := s.Categories.GetBySlug(ctx, slug)
	if errors.Is(err, ErrNoRows) {
		return nil, ErrNotFound("Category not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("category: lookup failed")
		return nil, ErrInternal("Could not load category")
	}
	stores, err := s.Stores.ListByCategory(ctx, category.ID, PageItems, Offset(page))
	if err != nil {
		s.Log.Error().Err(err).Msg("category: stores failed")
		return nil, ErrInternal("Could not load category")
	}
	total, err := s.Stores.CountByCategory(ctx, category.ID)
	if err != nil {
		s.Log.Error().Err(err).Msg("category: count failed")
		return nil, ErrInternal("Could not load category")
	}
	return &CategoryPage{
		Category:     category,
		Stores:       stores,
		TotalPages:   TotalPages(total),
		TotalResults: total,
	}, nil
}

type StorePage struct {
	Stores       []domain.Store `json:"stores"`
	TotalPages   int            `json:"totalPages"`
	TotalResults int            `json:"totalResults"`
}

func (s *StoreService) AllStores(ctx context.Context, page int) (*StorePage, error) {
	stores, total, err := s.Stores.ListAndCount(ctx, PageItems, Offset(page))
	if err != nil {
		s.Log.Error().Err(err).Msg("all stores: list failed")
		return nil, ErrInternal("Could not load stores")
	}
	return &StorePage{Stores: stores, TotalPages: TotalPages(total), TotalResults: total}, nil
}

type StoreDetail struct {
	domain.Store
	Commissions []domain.Commission `json:"commissions"`
}

func (s *StoreService) FindStoreByID(ctx context.Context, storeID int64) (*StoreDetail, error) {
	st, err := s.Stores.GetByID(ctx, storeID)
	if errors.Is(err, ErrNoRows) {
		return nil, ErrNotFound("Store not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("store: lookup failed")
		return nil, ErrInternal("Could not load store")
	}
	commissions, err := s.Commissions.ListByStore(ctx, storeID)
	if err != nil {
		s.Log.Error().Err(err).Msg("store: commissions failed")
		return nil, ErrInternal("Could not load store")
	}
	return &StoreDetail{Store: *st, Commissions: commissions}, nil
}

func (s *StoreService) SearchStoreByName(ctx context.Context, query string, page int) (*StorePage, error) {
	stores, total, err := s.Stores.SearchByName(ctx, query, PageItems, Offset(page))
	if err != nil {
		s.Log.Error().Err(err).Msg("search stores: query failed")
		return nil, ErrInternal("Could not search for stores")
	}
	return &StorePage{Stores: stores, TotalPages: TotalPages(total), TotalResults: total}, nil
}

type CreateCommissionInput struct {
	StoreID     int64                     `json:"storeId"`
	Name        string                    `json:"name"`
	Price       float64                   `json:"price"`
	Description string                    `json:"description,omitempty"`
	Options     []domain.CommissionOption `json:"options,omitempty"`
}

func (s *StoreService) CreateCommission(ctx context.Context, creator *domain.User, in CreateCommissionInput) error {
	st, err := s.Stores.GetByID(ctx, in.StoreID)
	if errors.Is(err, ErrNoRows) {
		return ErrNotFound("Store not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("create commission: store lookup failed")
		return ErrInternal("Could not create commission")
	}
	if creator.ID != st.CreatorID {
		return ErrForbidden("You can not create a commission for a store that you do not own")
	}
	now := time.Now().UTC()
	c := &domain.Commission{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Options:     in.Options,
		StoreID:     st.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Commissions.Save(ctx, c); err != nil {
		s.Log.Error().Err(err).Msg("create commission: save failed")
		return ErrInternal("Could not create commission")
	}
	return nil
}

type EditCommissionInput struct {
	CommissionID int64                     `json:"commissionId"`
	Name         string                    `json:"name,omitempty"`
	Price        *float64                  `json:"price,omitempty"`
	Description  string                    `json:"description,omitempty"`
	Options      []domain.CommissionOption `json:"options,omitempty"`
}

// ownCommission resolves a commission and checks the caller owns its store.
func (s *StoreService) ownCommission(ctx context.Context, creator *domain.User, commissionID int64, verb string) (*domain.Commission, error) {
	c, err := s.Commissions.GetByID(ctx, commissionID)
	if errors.Is(err, ErrNoRows) {
		return nil, ErrNotFound("Commission not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("commission lookup failed")
		return nil, ErrInternal("Could not " + verb + " commission")
	}
	st, err := s.Stores.GetByID(ctx, c.StoreID)
	if err != nil {
		s.Log.Error().Err(err).Msg("commission store lookup failed")
		return nil, ErrInternal("Could not " + verb + " commission")
	}
	if creator.ID != st.CreatorID {
		return nil, ErrForbidden("You can not " + verb + " a commission for a store that you do not own")
	}
	return c, nil
}

func (s *StoreService) EditCommission(ctx context.Context, creator *domain.User, in EditCommissionInput) error {
	c, err := s.ownCommission(ctx, creator, in.CommissionID, "edit")
	if err != nil {
		return err
	}
	if in.Name != "" {
		c.Name = in.Name
	}
	if in.Price != nil {
		c.Price = *in.Price
	}
	if in.Description != "" {
		c.Description = in.Description
	}
	if in.Options != nil {
		c.Options = in.Options
	}
	c.UpdatedAt = time.Now().UTC()
	if err := s.Commissions.Save(ctx, c); err != nil {
		s.Log.Error().Err(err).Msg("edit commission: save failed")
		return ErrInternal("Could not edit commission")
	}
	return nil
}

func (s *StoreService) DeleteCommission(ctx context.Context, creator *domain.User, commissionID int64) error {
	if _, err := s.ownCommission(ctx, creator, commissionID, "delete"); err != nil {
		return err
	}
	if err := s.Commissions.Delete(ctx, commissionID); err != nil {
		s.Log.Error().Err(err).Msg("delete commission: delete failed")
		return ErrInternal("Could not delete commission")
	}
	return nil
}
