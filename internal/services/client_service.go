package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"jobbify/internal/caching"
	"jobbify/internal/models"
	"jobbify/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	clientPageSize   = 50
	leadStatusModule = "lead"
	statusCacheKey   = "statuses:lead"
	statusCacheTTL   = 5 * time.Minute
)

type ClientInput struct {
	FirstName     string
	LastName      string
	Email         string
	MobileNo      string
	StreetAddress string
	City          string
	Region        string
	PostalCode    string
	Status        int
	Note          *string
	Tags          []string
}

// ClientWithTags is a client row plus its current tag labels, the shape the
// API returns.
type ClientWithTags struct {
	*models.Client
	Tags []string `json:"tags"`
}

type ClientService interface {
	List(ctx context.Context, page int) ([]*ClientWithTags, int, error)
	Create(ctx context.Context, userID, teamID uuid.UUID, in *ClientInput) (*ClientWithTags, error)
	Update(ctx context.Context, id uuid.UUID, in *ClientInput) (*ClientWithTags, error)
	Delete(ctx context.Context, id uuid.UUID) error
	LeadStatuses(ctx context.Context) (map[int]string, error)
}

type clientService struct {
	db            DB
	clientRepo    repositories.ClientRepository
	clientTagRepo repositories.ClientTagRepository
	statusRepo    repositories.StatusRepository
	cache         caching.CacheService
}

func NewClientService(db DB, clientRepo repositories.ClientRepository,
	clientTagRepo repositories.ClientTagRepository, statusRepo repositories.StatusRepository,
	cache caching.CacheService) ClientService {
	return &clientService{
		db:            db,
		clientRepo:    clientRepo,
		clientTagRepo: clientTagRepo,
		statusRepo:    statusRepo,
		cache:         cache,
	}
}

func (s *clientService) withTags(ctx context.Context, client *models.Client) (*ClientWithTags, error) {
	tags, err := s.clientTagRepo.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(tags))
	for _, tag := range tags {
		labels = append(labels, tag.Tag)
	}
	return &ClientWithTags{Client: client, Tags: labels}, nil
}

func (s *clientService) List(ctx context.Context, page int) ([]*ClientWithTags, int, error) {
	if page < 1 {
		page = 1
	}
	clients, err := s.clientRepo.List(ctx, clientPageSize, (page-1)*clientPageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	total, err := s.clientRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	out := make([]*ClientWithTags, 0, len(clients))
	for _, client := range clients {
		withTags, err := s.withTags(ctx, client)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to load client tags: %w", err)
		}
		out = append(out, withTags)
	}
	return out, total, nil
}

func (s *clientService) Create(ctx context.Context, userID, teamID uuid.UUID, in *ClientInput) (*ClientWithTags, error) {
	taken, err := s.clientRepo.EmailExists(ctx, in.Email, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check client email uniqueness: %w", err)
	}
	if taken {
		return nil, ErrClientEmailTaken
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	client := &models.Client{
		ID:            uuid.New(),
		UserID:        userID,
		TeamID:        teamID,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		MobileNo:      in.MobileNo,
		StreetAddress: in.StreetAddress,
		City:          in.City,
		Region:        in.Region,
		PostalCode:    in.PostalCode,
		Status:        in.Status,
		Note:          in.Note,
	}
	if err := s.clientRepo.WithTx(tx).Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	if err := s.insertTags(ctx, tx, client.ID, in.Tags); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit client creation: %w", err)
	}
	return &ClientWithTags{Client: client, Tags: normalizeTags(in.Tags)}, nil
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, in *ClientInput) (*ClientWithTags, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	taken, err := s.clientRepo.EmailExists(ctx, in.Email, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check client email uniqueness: %w", err)
	}
	if taken {
		return nil, ErrClientEmailTaken
	}

	client.FirstName = in.FirstName
	client.LastName = in.LastName
	client.Email = in.Email
	client.MobileNo = in.MobileNo
	client.StreetAddress = in.StreetAddress
	client.City = in.City
	client.Region = in.Region
	client.PostalCode = in.PostalCode
	client.Status = in.Status
	if in.Note != nil {
		client.Note = in.Note
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.clientRepo.WithTx(tx).Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	// Tag sync is unconditional: drop everything, re-insert whatever came in.
	if err := s.clientTagRepo.WithTx(tx).DeleteByClient(ctx, client.ID); err != nil {
		return nil, fmt.Errorf("failed to clear client tags: %w", err)
	}
	if err := s.insertTags(ctx, tx, client.ID, in.Tags); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit client update: %w", err)
	}
	return &ClientWithTags{Client: client, Tags: normalizeTags(in.Tags)}, nil
}

func (s *clientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clientRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrClientNotFound
		}
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Tags go first so the FK never dangles.
	if err := s.clientTagRepo.WithTx(tx).DeleteByClient(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client tags: %w", err)
	}
	if err := s.clientRepo.WithTx(tx).Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit client deletion: %w", err)
	}
	return nil
}

// LeadStatuses returns the value->label directory for the lead module,
// cached in redis for a short window.
func (s *clientService) LeadStatuses(ctx context.Context) (map[int]string, error) {
	if cached, err := s.cache.GetString(ctx, statusCacheKey); err == nil && cached != "" {
		statuses := map[int]string{}
		if unmarshalErr := json.Unmarshal([]byte(cached), &statuses); unmarshalErr == nil {
			return statuses, nil
		} else {
			log.Printf("WARN: discarding unreadable cached status directory: %v", unmarshalErr)
		}
	}

	rows, err := s.statusRepo.ListByModule(ctx, leadStatusModule)
	if err != nil {
		return nil, fmt.Errorf("failed to load statuses: %w", err)
	}
	statuses := make(map[int]string, len(rows))
	for _, row := range rows {
		statuses[row.Value] = row.Key
	}

	if encoded, err := json.Marshal(statuses); err == nil {
		if err := s.cache.SetString(ctx, statusCacheKey, string(encoded), statusCacheTTL); err != nil {
			log.Printf("WARN: failed to cache status directory: %v", err)
		}
	}
	return statuses, nil
}

func (s *clientService) insertTags(ctx context.Context, tx repositories.DBTX, clientID uuid.UUID, tags []string) error {
	tagRepo := s.clientTagRepo.WithTx(tx)
	for _, tag := range normalizeTags(tags) {
		record := &models.ClientTag{ID: uuid.New(), ClientID: clientID, Tag: tag}
		if err := tagRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create client tag: %w", err)
		}
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}
