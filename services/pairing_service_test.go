package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/tilerack/scrabble-system/live"
	"github.com/tilerack/scrabble-system/models"
	"github.com/tilerack/scrabble-system/pairing"
	"github.com/tilerack/scrabble-system/repositories"
)

type fakeTournamentRepo struct {
	tournament *models.Tournament
}

func (f *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error { return nil }
func (f *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	if f.tournament == nil || f.tournament.ID != id {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *f.tournament
	return &copied, nil
}
func (f *fakeTournamentRepo) List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	return nil, nil
}
func (f *fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error { return nil }
func (f *fakeTournamentRepo) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	return nil
}
func (f *fakeTournamentRepo) UpdateCurrentRound(ctx context.Context, exec repositories.SQLExecutor, id, round int) error {
	f.tournament.CurrentRound = round
	return nil
}
func (f *fakeTournamentRepo) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	return nil
}
func (f *fakeTournamentRepo) Delete(ctx context.Context, id int) error { return nil }

type fakePlayerRepo struct {
	players []*models.Player
}

func (f *fakePlayerRepo) Create(ctx context.Context, p *models.Player) error { return nil }
func (f *fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	for _, p := range f.players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}
func (f *fakePlayerRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	return f.players, nil
}
func (f *fakePlayerRepo) Update(ctx context.Context, p *models.Player) error { return nil }
func (f *fakePlayerRepo) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	return nil
}
func (f *fakePlayerRepo) Delete(ctx context.Context, id int) error { return nil }

type fakePairingRepo struct {
	pairings []*models.Pairing
}

func (f *fakePairingRepo) Create(ctx context.Context, exec repositories.SQLExecutor, p *models.Pairing) error {
	f.pairings = append(f.pairings, p)
	return nil
}
func (f *fakePairingRepo) GetByID(ctx context.Context, id int) (*models.Pairing, error) {
	for _, p := range f.pairings {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repositories.ErrPairingNotFound
}
func (f *fakePairingRepo) ListByTournament(ctx context.Context, tournamentID int, round *int) ([]*models.Pairing, error) {
	out := make([]*models.Pairing, 0)
	for _, p := range f.pairings {
		if round != nil && p.Round != *round {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
func (f *fakePairingRepo) DeleteBatch(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, batchID string) (int, error) {
	kept := f.pairings[:0]
	deleted := 0
	for _, p := range f.pairings {
		if p.BatchID == batchID {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	f.pairings = kept
	return deleted, nil
}

type fakeResultRepo struct {
	results []*models.Result
}

func (f *fakeResultRepo) Upsert(ctx context.Context, r *models.Result) error {
	for i, existing := range f.results {
		if existing.PairingID == r.PairingID {
			f.results[i] = r
			return nil
		}
	}
	f.results = append(f.results, r)
	return nil
}
func (f *fakeResultRepo) GetByPairing(ctx context.Context, pairingID int) (*models.Result, error) {
	for _, r := range f.results {
		if r.PairingID == pairingID {
			return r, nil
		}
	}
	return nil, repositories.ErrResultNotFound
}
func (f *fakeResultRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Result, error) {
	return f.results, nil
}
func (f *fakeResultRepo) Delete(ctx context.Context, id int) error { return nil }

func newTestPairingService(t *models.Tournament, players []*models.Player, pairings []*models.Pairing) (PairingService, *fakePairingRepo, *fakeResultRepo) {
	tournamentRepo := &fakeTournamentRepo{tournament: t}
	playerRepo := &fakePlayerRepo{players: players}
	pairingRepo := &fakePairingRepo{pairings: pairings}
	resultRepo := &fakeResultRepo{}
	standings := NewStandingsService(tournamentRepo, playerRepo, pairingRepo, resultRepo, pairing.ClinchConfig{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewPairingService(nil, tournamentRepo, playerRepo, pairingRepo, resultRepo, standings, live.NewHub(), pairing.ClinchConfig{}, logger)
	return svc, pairingRepo, resultRepo
}

func activeTournament(format models.PairingFormat) *models.Tournament {
	return &models.Tournament{
		ID:          1,
		DirectorID:  10,
		Status:      models.StatusActive,
		Format:      format,
		TotalRounds: 5,
	}
}

func TestGenerateRoundRejectsNonDirector(t *testing.T) {
	svc, _, _ := newTestPairingService(activeTournament(models.FormatSwiss), nil, nil)

	_, err := svc.GenerateRound(context.Background(), 1, 99)
	if !errors.Is(err, ErrDirectorOnly) {
		t.Fatalf("expected ErrDirectorOnly, got %v", err)
	}
}

func TestGenerateRoundRequiresActiveTournament(t *testing.T) {
	tournament := activeTournament(models.FormatSwiss)
	tournament.Status = models.StatusRegistration
	svc, _, _ := newTestPairingService(tournament, nil, nil)

	_, err := svc.GenerateRound(context.Background(), 1, 10)
	if !errors.Is(err, ErrTournamentNotActive) {
		t.Fatalf("expected ErrTournamentNotActive, got %v", err)
	}
}

func TestGenerateRoundRejectsManualFormat(t *testing.T) {
	svc, _, _ := newTestPairingService(activeTournament(models.FormatManual), nil, nil)

	_, err := svc.GenerateRound(context.Background(), 1, 10)
	if !errors.Is(err, ErrManualFormatNoGenerate) {
		t.Fatalf("expected ErrManualFormatNoGenerate, got %v", err)
	}
}

func TestGenerateRoundRejectsExhaustedSchedule(t *testing.T) {
	tournament := activeTournament(models.FormatSwiss)
	tournament.CurrentRound = 5
	svc, _, _ := newTestPairingService(tournament, nil, nil)

	_, err := svc.GenerateRound(context.Background(), 1, 10)
	if !errors.Is(err, ErrAllRoundsCompleted) {
		t.Fatalf("expected ErrAllRoundsCompleted, got %v", err)
	}
}

func TestGenerateRoundRequiresPlayers(t *testing.T) {
	svc, _, _ := newTestPairingService(activeTournament(models.FormatSwiss), nil, nil)

	_, err := svc.GenerateRound(context.Background(), 1, 10)
	if !errors.Is(err, ErrNoPlayersRegistered) {
		t.Fatalf("expected ErrNoPlayersRegistered, got %v", err)
	}
}

func TestGenerateRoundRejectsAlreadyPairedRound(t *testing.T) {
	players := []*models.Player{
		{ID: 1, TournamentID: 1, Name: "Ada", Rating: 1900},
		{ID: 2, TournamentID: 1, Name: "Ben", Rating: 1800},
	}
	existing := []*models.Pairing{
		{ID: 1, TournamentID: 1, Round: 1, BatchID: "b1", TableNumber: 1, Player1ID: 1, Player2ID: 2, FirstMovePlayerID: 1},
	}
	svc, _, _ := newTestPairingService(activeTournament(models.FormatSwiss), players, existing)

	_, err := svc.GenerateRound(context.Background(), 1, 10)
	if !errors.Is(err, ErrRoundAlreadyPaired) {
		t.Fatalf("expected ErrRoundAlreadyPaired, got %v", err)
	}
}

func TestGenerateRoundTeamFormatWithoutTeams(t *testing.T) {
	players := []*models.Player{
		{ID: 1, TournamentID: 1, Name: "Ada", Rating: 1900},
		{ID: 2, TournamentID: 1, Name: "Ben", Rating: 1800},
	}
	svc, _, _ := newTestPairingService(activeTournament(models.FormatTeamRoundRobin), players, nil)

	_, err := svc.GenerateRound(context.Background(), 1, 10)
	if !errors.Is(err, ErrInsufficientTeams) {
		t.Fatalf("expected ErrInsufficientTeams, got %v", err)
	}
}

func TestSubmitResultRejectsByePairing(t *testing.T) {
	players := []*models.Player{
		{ID: 1, TournamentID: 1, Name: "Ada", Rating: 1900},
	}
	pairings := []*models.Pairing{
		{ID: 7, TournamentID: 1, Round: 1, BatchID: "b1", TableNumber: 1, Player1ID: 1, Player2ID: models.ByePlayerID, FirstMovePlayerID: 1},
	}
	svc, _, _ := newTestPairingService(activeTournament(models.FormatSwiss), players, pairings)

	_, err := svc.SubmitResult(context.Background(), 1, 7, 10, SubmitResultInput{Score1: 400, Score2: 0})
	if !errors.Is(err, ErrScoreEntryForBye) {
		t.Fatalf("expected ErrScoreEntryForBye, got %v", err)
	}
}

func TestSubmitResultDerivesWinnerAndStoresResult(t *testing.T) {
	players := []*models.Player{
		{ID: 1, TournamentID: 1, Name: "Ada", Rating: 1900},
		{ID: 2, TournamentID: 1, Name: "Ben", Rating: 1800},
	}
	pairings := []*models.Pairing{
		{ID: 7, TournamentID: 1, Round: 1, BatchID: "b1", TableNumber: 1, Player1ID: 1, Player2ID: 2, FirstMovePlayerID: 1},
	}
	svc, _, resultRepo := newTestPairingService(activeTournament(models.FormatSwiss), players, pairings)

	result, err := svc.SubmitResult(context.Background(), 1, 7, 10, SubmitResultInput{Score1: 380, Score2: 415})
	if err != nil {
		t.Fatalf("SubmitResult failed: %v", err)
	}
	if result.WinnerID == nil || *result.WinnerID != 2 {
		t.Fatalf("expected winner 2, got %v", result.WinnerID)
	}
	if len(resultRepo.results) != 1 {
		t.Fatalf("expected 1 stored result, got %d", len(resultRepo.results))
	}

	// A correction replaces the stored result.
	corrected, err := svc.SubmitResult(context.Background(), 1, 7, 10, SubmitResultInput{Score1: 430, Score2: 415})
	if err != nil {
		t.Fatalf("corrected SubmitResult failed: %v", err)
	}
	if corrected.WinnerID == nil || *corrected.WinnerID != 1 {
		t.Fatalf("expected corrected winner 1, got %v", corrected.WinnerID)
	}
	if len(resultRepo.results) != 1 {
		t.Fatalf("expected correction to replace result, got %d rows", len(resultRepo.results))
	}
}

func TestSubmitResultRejectsWrongTournament(t *testing.T) {
	players := []*models.Player{
		{ID: 1, TournamentID: 1, Name: "Ada", Rating: 1900},
		{ID: 2, TournamentID: 1, Name: "Ben", Rating: 1800},
	}
	pairings := []*models.Pairing{
		{ID: 7, TournamentID: 2, Round: 1, BatchID: "b1", TableNumber: 1, Player1ID: 1, Player2ID: 2, FirstMovePlayerID: 1},
	}
	svc, _, _ := newTestPairingService(activeTournament(models.FormatSwiss), players, pairings)

	_, err := svc.SubmitResult(context.Background(), 1, 7, 10, SubmitResultInput{Score1: 400, Score2: 300})
	if !errors.Is(err, ErrPairingNotFound) {
		t.Fatalf("expected ErrPairingNotFound, got %v", err)
	}
}
