package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"antiquefinder/internal/dto"
	"antiquefinder/internal/events"
	"antiquefinder/internal/models"
	"antiquefinder/internal/repository"

	"gorm.io/gorm"
)

// Validation failures are reported as these sentinels, in the order the
// registration contract checks them. They never escalate past the handler.
var (
	ErrNameRequired     = errors.New("shop name is required")
	ErrAddressRequired  = errors.New("shop address is required")
	ErrDuplicateName    = errors.New("a shop with this name already exists")
	ErrCategoryRequired = errors.New("at least one category must be selected")
	ErrShopNotFound     = errors.New("shop not found")
)

type CatalogService interface {
	// Search filters the catalog and returns it ordered by rating
	// according to the given sort state. Every returned shop carries a
	// freshly computed rating.
	Search(ctx context.Context, filters dto.SearchFilters, order dto.SortOrder) ([]models.Shop, error)
	GetByID(ctx context.Context, id int64) (*models.Shop, error)
	Register(ctx context.Context, in dto.CreateShopDTO) (*models.Shop, error)
	Update(ctx context.Context, id int64, in dto.UpdateShopDTO) (*models.Shop, error)
	Delete(ctx context.Context, id int64) error
}

type catalogService struct {
	shopRepo     repository.ShopRepository
	categoryRepo *repository.CategoryRepo
	rating       RatingService
	producer     *events.Producer
	logger       *slog.Logger
}

func NewCatalogService(
	shopRepo repository.ShopRepository,
	categoryRepo *repository.CategoryRepo,
	rating RatingService,
	producer *events.Producer,
	logger *slog.Logger,
) CatalogService {
	return &catalogService{
		shopRepo:     shopRepo,
		categoryRepo: categoryRepo,
		rating:       rating,
		producer:     producer,
		logger:       logger,
	}
}

func (s *catalogService) Search(ctx context.Context, filters dto.SearchFilters, order dto.SortOrder) ([]models.Shop, error) {
	var (
		list []models.Shop
		err  error
	)
	query := strings.TrimSpace(filters.Query)
	if query == "" && isAllTypes(filters.ShopType) && len(filters.Categories) == 0 {
		// no active filters: plain catalog listing
		list, err = s.shopRepo.GetAll(ctx)
	} else {
		list, err = s.shopRepo.Search(ctx, query, filters.ShopType, filters.Categories)
	}
	if err != nil {
		return nil, err
	}

	for i := range list {
		list[i].Rating = s.rating.ComputeRating(ctx, list[i].ID)
	}

	SortByRating(list, order)
	return list, nil
}

func isAllTypes(shopType string) bool {
	return shopType == "" || shopType == models.ShopTypeAll
}

// SortByRating orders shops by rating per the two-state toggle. The sort
// is stable: equal ratings keep the relative order the search produced.
func SortByRating(shops []models.Shop, order dto.SortOrder) {
	sort.SliceStable(shops, func(i, j int) bool {
		if order == dto.SortAscending {
			return shops[i].Rating < shops[j].Rating
		}
		return shops[i].Rating > shops[j].Rating
	})
}

func (s *catalogService) GetByID(ctx context.Context, id int64) (*models.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	shop.Rating = s.rating.ComputeRating(ctx, id)
	return shop, nil
}

// Register runs the registration preconditions in contract order, first
// failure wins, then creates the shop and its category links in one
// transaction.
func (s *catalogService) Register(ctx context.Context, in dto.CreateShopDTO) (*models.Shop, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(in.Address) == "" {
		return nil, ErrAddressRequired
	}

	exists, err := s.shopRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	if len(in.Categories) == 0 {
		return nil, ErrCategoryRequired
	}

	categoryIDs, err := s.resolveCategoryIDs(ctx, in.Categories)
	if err != nil {
		return nil, err
	}

	shop := in.ToModel()
	shop.Name = name
	shop.Address = strings.TrimSpace(in.Address)
	normalizeOptionalFields(&shop)
	shop.Rating = 0 // new shop, no reviews yet

	if err := s.shopRepo.Create(ctx, &shop, categoryIDs); err != nil {
		return nil, err
	}

	created, err := s.shopRepo.GetByID(ctx, shop.ID)
	if err != nil {
		// row exists; fall back to what we already have
		created = &shop
	}

	s.producer.PublishAsync(events.CatalogEvent{
		Type:     events.TypeShopCreated,
		ShopID:   created.ID,
		ShopName: created.Name,
	})
	return created, nil
}

func (s *catalogService) Update(ctx context.Context, id int64, in dto.UpdateShopDTO) (*models.Shop, error) {
	existing, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}

	previousName := existing.Name
	in.ApplyTo(existing)
	existing.Name = strings.TrimSpace(existing.Name)
	existing.Address = strings.TrimSpace(existing.Address)

	if existing.Name == "" {
		return nil, ErrNameRequired
	}
	if existing.Address == "" {
		return nil, ErrAddressRequired
	}

	// re-check uniqueness only when the name actually changes
	if !strings.EqualFold(existing.Name, previousName) {
		exists, err := s.shopRepo.ExistsByName(ctx, existing.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateName
		}
	}

	if in.Categories != nil && len(in.Categories) == 0 {
		return nil, ErrCategoryRequired
	}

	normalizeOptionalFields(existing)
	existing.Categories = nil
	if err := s.shopRepo.Update(ctx, id, existing); err != nil {
		return nil, err
	}

	if in.Categories != nil {
		categoryIDs, err := s.resolveCategoryIDs(ctx, in.Categories)
		if err != nil {
			return nil, err
		}
		if err := s.shopRepo.ReplaceCategories(ctx, id, categoryIDs); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, id)
}

func (s *catalogService) Delete(ctx context.Context, id int64) error {
	if err := s.shopRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShopNotFound
		}
		return err
	}
	s.producer.PublishAsync(events.CatalogEvent{
		Type:   events.TypeShopDeleted,
		ShopID: id,
	})
	return nil
}

// resolveCategoryIDs maps requested category names to ids. Names with no
// matching category are skipped with a warning, mirroring the catalog's
// best-effort attach semantics.
func (s *catalogService) resolveCategoryIDs(ctx context.Context, names []string) ([]int64, error) {
	found, err := s.categoryRepo.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}

	known := make(map[string]int64, len(found))
	for _, c := range found {
		known[strings.ToLower(c.Name)] = c.ID
	}

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, ok := known[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			s.logger.Warn("skipping unknown category", "name", name)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// normalizeOptionalFields trims the optional contact fields and turns
// blank values into NULLs.
func normalizeOptionalFields(s *models.Shop) {
	s.Phone = trimToNil(s.Phone)
	s.Email = trimToNil(s.Email)
	s.Website = trimToNil(s.Website)
	s.Description = trimToNil(s.Description)
}

func trimToNil(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
