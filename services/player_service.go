package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/tilerack/scrabble-system/models"
	"github.com/tilerack/scrabble-system/repositories"
	"github.com/tilerack/scrabble-system/storage"
)

type CreatePlayerInput struct {
	Name   string  `json:"name"`
	Rating int     `json:"rating"`
	Team   *string `json:"team,omitempty"`
}

type PlayerService interface {
	Register(ctx context.Context, tournamentID int, input CreatePlayerInput) (*models.Player, error)
	Get(ctx context.Context, id int) (*models.Player, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error)
	Update(ctx context.Context, id int, input CreatePlayerInput) (*models.Player, error)
	Remove(ctx context.Context, id int) error
	UploadPhoto(ctx context.Context, id int, contentType string, body io.Reader) (*models.Player, error)
}

type playerService struct {
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	uploader       storage.FileUploader
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	uploader storage.FileUploader,
) PlayerService {
	return &playerService{
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		uploader:       uploader,
	}
}

func (s *playerService) Register(ctx context.Context, tournamentID int, input CreatePlayerInput) (*models.Player, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrPlayerNameRequired
	}
	if input.Team != nil {
		team := strings.TrimSpace(*input.Team)
		if team == "" {
			input.Team = nil
		} else {
			input.Team = &team
		}
	}

	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	player := &models.Player{
		TournamentID: tournamentID,
		Name:         input.Name,
		Rating:       input.Rating,
		Team:         input.Team,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, mapPlayerRepoError(err)
	}
	s.populatePhotoURL(player)
	return player, nil
}

func (s *playerService) Get(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}
	s.populatePhotoURL(player)
	return player, nil
}

func (s *playerService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	players, err := s.playerRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		s.populatePhotoURL(p)
	}
	return players, nil
}

func (s *playerService) Update(ctx context.Context, id int, input CreatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		player.Name = name
	}
	if input.Rating != 0 {
		player.Rating = input.Rating
	}
	player.Team = input.Team

	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, mapPlayerRepoError(err)
	}
	s.populatePhotoURL(player)
	return player, nil
}

func (s *playerService) Remove(ctx context.Context, id int) error {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return mapPlayerRepoError(err)
	}
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return mapPlayerRepoError(err)
	}
	if player.PhotoKey != nil && s.uploader != nil {
		// Best effort: the row is already gone.
		_ = s.uploader.Delete(ctx, *player.PhotoKey)
	}
	return nil
}

func (s *playerService) UploadPhoto(ctx context.Context, id int, contentType string, body io.Reader) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("file uploads are not configured")
	}

	ext, err := storage.ExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("players/%d/%s%s", player.ID, uuid.NewString(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("failed to upload player photo: %w", err)
	}

	oldKey := player.PhotoKey
	if err := s.playerRepo.UpdatePhotoKey(ctx, id, &key); err != nil {
		_ = s.uploader.Delete(ctx, key)
		return nil, mapPlayerRepoError(err)
	}
	if oldKey != nil {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	player.PhotoKey = &key
	s.populatePhotoURL(player)
	return player, nil
}

func (s *playerService) populatePhotoURL(player *models.Player) {
	if player == nil || player.PhotoKey == nil || *player.PhotoKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*player.PhotoKey); url != "" {
		player.PhotoURL = &url
	}
}

func mapPlayerRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrPlayerNameConflict):
		return ErrPlayerNameConflict
	case errors.Is(err, repositories.ErrPlayerTournamentInvalid):
		return ErrTournamentNotFound
	}
	return err
}
