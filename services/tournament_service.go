package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tilerack/scrabble-system/models"
	"github.com/tilerack/scrabble-system/repositories"
	"github.com/tilerack/scrabble-system/storage"
)

type CreateTournamentInput struct {
	Name           string               `json:"name"`
	Description    *string              `json:"description,omitempty"`
	Format         models.PairingFormat `json:"format"`
	AvoidRematches bool                 `json:"avoid_rematches"`
	TotalRounds    int                  `json:"total_rounds"`
	StartDate      time.Time            `json:"start_date"`
	EndDate        time.Time            `json:"end_date"`
}

type TournamentService interface {
	Create(ctx context.Context, directorID int, input CreateTournamentInput) (*models.Tournament, error)
	Get(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error)
	Update(ctx context.Context, id, currentUserID int, input CreateTournamentInput) (*models.Tournament, error)
	ChangeStatus(ctx context.Context, id, currentUserID int, status models.TournamentStatus) (*models.Tournament, error)
	Delete(ctx context.Context, id, currentUserID int) error
	UploadLogo(ctx context.Context, id, currentUserID int, contentType string, body io.Reader) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, directorID int, input CreateTournamentInput) (*models.Tournament, error) {
	if err := validateTournamentInput(&input); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:           input.Name,
		Description:    input.Description,
		DirectorID:     directorID,
		Status:         models.StatusSoon,
		Format:         input.Format,
		AvoidRematches: input.AvoidRematches,
		CurrentRound:   0,
		TotalRounds:    input.TotalRounds,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	return tournament, nil
}

func (s *tournamentService) Get(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	s.populateDetails(ctx, tournament)
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	for _, t := range tournaments {
		s.populateLogoURL(t)
	}
	return tournaments, nil
}

func (s *tournamentService) Update(ctx context.Context, id, currentUserID int, input CreateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.authorizeDirector(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if err := validateTournamentInput(&input); err != nil {
		return nil, err
	}

	tournament.Name = input.Name
	tournament.Description = input.Description
	tournament.Format = input.Format
	tournament.AvoidRematches = input.AvoidRematches
	tournament.TotalRounds = input.TotalRounds
	tournament.StartDate = input.StartDate
	tournament.EndDate = input.EndDate

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	return tournament, nil
}

func (s *tournamentService) ChangeStatus(ctx context.Context, id, currentUserID int, status models.TournamentStatus) (*models.Tournament, error) {
	tournament, err := s.authorizeDirector(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if !isValidStatusTransition(tournament.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTournamentInvalidStatus, tournament.Status, status)
	}
	if err := s.tournamentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	s.logger.InfoContext(ctx, "tournament status changed",
		slog.Int("tournament_id", id),
		slog.String("from", string(tournament.Status)),
		slog.String("to", string(status)),
	)
	tournament.Status = status
	return tournament, nil
}

func (s *tournamentService) Delete(ctx context.Context, id, currentUserID int) error {
	tournament, err := s.authorizeDirector(ctx, id, currentUserID)
	if err != nil {
		return err
	}
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		return mapTournamentRepoError(err)
	}
	if tournament.LogoKey != nil && s.uploader != nil {
		_ = s.uploader.Delete(ctx, *tournament.LogoKey)
	}
	return nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, id, currentUserID int, contentType string, body io.Reader) (*models.Tournament, error) {
	tournament, err := s.authorizeDirector(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("file uploads are not configured")
	}

	ext, err := storage.ExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("tournaments/%d/%s%s", tournament.ID, uuid.NewString(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}

	oldKey := tournament.LogoKey
	if err := s.tournamentRepo.UpdateLogoKey(ctx, id, &key); err != nil {
		_ = s.uploader.Delete(ctx, key)
		return nil, mapTournamentRepoError(err)
	}
	if oldKey != nil {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	tournament.LogoKey = &key
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) authorizeDirector(ctx context.Context, id, currentUserID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	if tournament.DirectorID != currentUserID {
		return nil, ErrDirectorOnly
	}
	return tournament, nil
}

func (s *tournamentService) populateDetails(ctx context.Context, tournament *models.Tournament) {
	s.populateLogoURL(tournament)
	players, err := s.playerRepo.ListByTournament(ctx, tournament.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to populate tournament players",
			slog.Int("tournament_id", tournament.ID), slog.Any("error", err))
		return
	}
	tournament.Players = make([]models.Player, 0, len(players))
	for _, p := range players {
		tournament.Players = append(tournament.Players, *p)
	}
}

func (s *tournamentService) populateLogoURL(tournament *models.Tournament) {
	if tournament == nil || tournament.LogoKey == nil || *tournament.LogoKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*tournament.LogoKey); url != "" {
		tournament.LogoURL = &url
	}
}

func validateTournamentInput(input *CreateTournamentInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return ErrTournamentNameRequired
	}
	if !models.ValidPairingFormat(input.Format) {
		return ErrInvalidPairingFormat
	}
	if input.TotalRounds <= 0 {
		return ErrInvalidRoundsCount
	}
	if !input.StartDate.Before(input.EndDate) {
		return ErrTournamentInvalidDates
	}
	return nil
}

func isValidStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowed := map[models.TournamentStatus][]models.TournamentStatus{
		models.StatusSoon:         {models.StatusRegistration, models.StatusCanceled},
		models.StatusRegistration: {models.StatusActive, models.StatusCanceled},
		models.StatusActive:       {models.StatusCompleted, models.StatusCanceled},
		models.StatusCompleted:    {},
		models.StatusCanceled:     {},
	}
	for _, status := range allowed[current] {
		if next == status {
			return true
		}
	}
	return false
}

func mapTournamentRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentNameConflict):
		return ErrTournamentNameConflict
	}
	return err
}
