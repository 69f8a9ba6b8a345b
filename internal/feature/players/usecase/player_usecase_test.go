package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	gamesentity "gameshelf_backend/internal/feature/games/domain/entity"
	"gameshelf_backend/internal/feature/players/domain/entity"
)

// mockPlayerRepository is a mock implementation of the PlayerRepository interface.
// It simulates database operations during testing.
type mockPlayerRepository struct {
	CreateFunc         func(ctx context.Context, player *entity.Player) error
	ListFunc           func(ctx context.Context) ([]entity.Player, error)
	FindByIDFunc       func(ctx context.Context, id uint) (*entity.Player, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*entity.Player, error)
	UpdateFunc         func(ctx context.Context, player *entity.Player) error
	DeleteFunc         func(ctx context.Context, id uint) error
	DeleteByEmailFunc  func(ctx context.Context, email string) error
	AddFavoriteFunc    func(ctx context.Context, playerID, gameID uint) error
	RemoveFavoriteFunc func(ctx context.Context, playerID, gameID uint) error
	ListFavoritesFunc  func(ctx context.Context, playerID uint) ([]gamesentity.Game, error)
}

func (m *mockPlayerRepository) Create(ctx context.Context, player *entity.Player) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, player)
	}
	player.ID = 1
	return nil
}

func (m *mockPlayerRepository) List(ctx context.Context) ([]entity.Player, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockPlayerRepository) FindByID(ctx context.Context, id uint) (*entity.Player, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrPlayerNotFound
}

func (m *mockPlayerRepository) FindByUsername(ctx context.Context, username string) (*entity.Player, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, ErrPlayerNotFound
}

func (m *mockPlayerRepository) Update(ctx context.Context, player *entity.Player) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, player)
	}
	return nil
}

func (m *mockPlayerRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPlayerRepository) DeleteByEmail(ctx context.Context, email string) error {
	if m.DeleteByEmailFunc != nil {
		return m.DeleteByEmailFunc(ctx, email)
	}
	return nil
}

func (m *mockPlayerRepository) AddFavorite(ctx context.Context, playerID, gameID uint) error {
	if m.AddFavoriteFunc != nil {
		return m.AddFavoriteFunc(ctx, playerID, gameID)
	}
	return nil
}

func (m *mockPlayerRepository) RemoveFavorite(ctx context.Context, playerID, gameID uint) error {
	if m.RemoveFavoriteFunc != nil {
		return m.RemoveFavoriteFunc(ctx, playerID, gameID)
	}
	return nil
}

func (m *mockPlayerRepository) ListFavorites(ctx context.Context, playerID uint) ([]gamesentity.Game, error) {
	if m.ListFavoritesFunc != nil {
		return m.ListFavoritesFunc(ctx, playerID)
	}
	return nil, nil
}

// mockGameFinder is a mock implementation of the GameFinder interface.
type mockGameFinder struct {
	FindByIDFunc func(ctx context.Context, id uint) (*gamesentity.Game, error)
}

func (m *mockGameFinder) FindByID(ctx context.Context, id uint) (*gamesentity.Game, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &gamesentity.Game{ID: id}, nil
}

func existingPlayer() *entity.Player {
	return &entity.Player{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hashed",
	}
}

func strPtr(s string) *string { return &s }

func TestPlayerUsecase_Register(t *testing.T) {
	t.Run("successful registration hashes the password", func(t *testing.T) {
		mockRepo := &mockPlayerRepository{
			CreateFunc: func(ctx context.Context, player *entity.Player) error {
				// Verify that the password is hashed
				if player.Password == "secret1" {
					t.Errorf("password is not hashed")
				}
				if err := bcrypt.CompareHashAndPassword([]byte(player.Password), []byte("secret1")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				// Verify that the default avatar is assigned
				if player.AvatarURL != entity.DefaultAvatarURL {
					t.Errorf("expected default avatar, got: %s", player.AvatarURL)
				}
				player.ID = 1
				return nil
			},
		}

		uc := NewPlayerUsecase(mockRepo, &mockGameFinder{})
		player, err := uc.Register(context.Background(), "alice", "alice@example.com", "secret1")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if player.ID != 1 {
			t.Errorf("expected ID 1, got: %d", player.ID)
		}
	})

	t.Run("password shorter than six characters is rejected", func(t *testing.T) {
		uc := NewPlayerUsecase(&mockPlayerRepository{}, &mockGameFinder{})

		_, err := uc.Register(context.Background(), "alice", "alice@example.com", "five5")

		if !errors.Is(err, ErrInvalidPlayer) {
			t.Errorf("expected ErrInvalidPlayer, got: %v", err)
		}
	})

	t.Run("six character password is accepted", func(t *testing.T) {
		uc := NewPlayerUsecase(&mockPlayerRepository{}, &mockGameFinder{})

		_, err := uc.Register(context.Background(), "alice", "alice@example.com", "sixsix")

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing username is rejected", func(t *testing.T) {
		uc := NewPlayerUsecase(&mockPlayerRepository{}, &mockGameFinder{})

		_, err := uc.Register(context.Background(), "  ", "alice@example.com", "secret1")

		if !errors.Is(err, ErrInvalidPlayer) {
			t.Errorf("expected ErrInvalidPlayer, got: %v", err)
		}
	})

	t.Run("duplicate player error passes through", func(t *testing.T) {
		mockRepo := &mockPlayerRepository{
			CreateFunc: func(ctx context.Context, player *entity.Player) error {
				return ErrPlayerAlreadyExists
			},
		}

		uc := NewPlayerUsecase(mockRepo, &mockGameFinder{})
		_, err := uc.Register(context.Background(), "alice", "alice@example.com", "secret1")

		if !errors.Is(err, ErrPlayerAlreadyExists) {
			t.Errorf("expected ErrPlayerAlreadyExists, got: %v", err)
		}
	})
}

func TestPlayerUsecase_UpdatePlayer(t *testing.T) {
	t.Run("only provided fields change", func(t *testing.T) {
		var updated *entity.Player
		mockRepo := &mockPlayerRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Player, error) {
				return existingPlayer(), nil
			},
			UpdateFunc: func(ctx context.Context, player *entity.Player) error {
				updated = player
				return nil
			},
		}

		uc := NewPlayerUsecase(mockRepo, &mockGameFinder{})
		player, err := uc.UpdatePlayer(context.Background(), 1, PlayerUpdate{Email: strPtr("new@example.com")})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if player.Email != "new@example.com" {
			t.Errorf("email was not updated: %s", player.Email)
		}
		if player.Username != "alice" {
			t.Errorf("username should be unchanged: %s", player.Username)
		}
		if updated == nil {
			t.Error("Update was not called")
		}
	})

	t.Run("new password is rehashed", func(t *testing.T) {
		mockRepo := &mockPlayerRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Player, error) {
				return existingPlayer(), nil
			},
			UpdateFunc: func(ctx context.Context, player *entity.Player) error {
				if err := bcrypt.CompareHashAndPassword([]byte(player.Password), []byte("newsecret")); err != nil {
					t.Errorf("password was not rehashed: %v", err)
				}
				return nil
			},
		}

		uc := NewPlayerUsecase(mockRepo, &mockGameFinder{})
		_, err := uc.UpdatePlayer(context.Background(), 1, PlayerUpdate{Password: strPtr("newsecret")})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("short new password is rejected", func(t *testing.T) {
		mockRepo := &mockPlayerRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Player, error) {
				return existingPlayer(), nil
			},
			UpdateFunc: func(ctx context.Context, player *entity.Player) error {
				t.Error("Update should not be called for invalid input")
				return nil
			},
		}

		uc := NewPlayerUsecase(mockRepo, &mockGameFinder{})
		_, err := uc.UpdatePlayer(context.Background(), 1, PlayerUpdate{Password: strPtr("tiny")})

		if !errors.Is(err, ErrInvalidPlayer) {
			t.Errorf("expected ErrInvalidPlayer, got: %v", err)
		}
	})

	t.Run("unknown player returns ErrPlayerNotFound", func(t *testing.T) {
		uc := NewPlayerUsecase(&mockPlayerRepository{}, &mockGameFinder{})

		_, err := uc.UpdatePlayer(context.Background(), 999, PlayerUpdate{Email: strPtr("x@example.com")})

		if !errors.Is(err, ErrPlayerNotFound) {
			t.Errorf("expected ErrPlayerNotFound, got: %v", err)
		}
	})
}

func TestPlayerUsecase_AddFavorite(t *testing.T) {
	t.Run("successful favorite addition", func(t *testing.T) {
		addCalled := false
		mockRepo := &mockPlayerRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Player, error) {
				p := existingPlayer()
				if addCalled {
					p.FavoriteGames = []gamesentity.Game{{ID: 5, Title: "Celeste", Genre: "Platformer"}}
				}
				return p, nil
			},
			AddFavoriteFunc: func(ctx context.Context, playerID, gameID uint) error {
				if playerID != 1 || gameID != 5 {
					t.Errorf("unexpected ids: player=%d game=%d", playerID, gameID)
				}
				addCalled = true
				return nil
			},
		}
		mockGames := &mockGameFinder{
			FindByIDFunc: func(ctx context.Context, id uint) (*gamesentity.Game, error) {
				return &gamesentity.Game{ID: id, Title: "Celeste", Genre: "Platformer"}, nil
			},
		}

		uc := NewPlayerUsecase(mockRepo, mockGames)
		player, err := uc.AddFavorite(context.Background(), 1, 5)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !addCalled {
			t.Error("AddFavorite was not called")
		}
		if len(player.FavoriteGames) != 1 {
			t.Errorf("expected 1 favorite, got: %d", len(player.FavoriteGames))
		}
	})

	t.Run("missing game is rejected", func(t *testing.T) {
		gameErr := errors.New("game not found")
		mockRepo := &mockPlayerRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Player, error) {
				return existingPlayer(), nil
			},
			AddFavoriteFunc: func(ctx context.Context, playerID, gameID uint) error {
				t.Error("AddFavorite should not be called for a missing game")
				return nil
			},
		}
		mockGames := &mockGameFinder{
			FindByIDFunc: func(ctx context.Context, id uint) (*gamesentity.Game, error) {
				return nil, gameErr
			},
		}

		uc := NewPlayerUsecase(mockRepo, mockGames)
		_, err := uc.AddFavorite(context.Background(), 1, 999)

		if !errors.Is(err, gameErr) {
			t.Errorf("expected game lookup error, got: %v", err)
		}
	})

	t.Run("missing player is rejected", func(t *testing.T) {
		uc := NewPlayerUsecase(&mockPlayerRepository{}, &mockGameFinder{})

		_, err := uc.AddFavorite(context.Background(), 999, 5)

		if !errors.Is(err, ErrPlayerNotFound) {
			t.Errorf("expected ErrPlayerNotFound, got: %v", err)
		}
	})
}

func TestPlayerUsecase_RemoveFavorite(t *testing.T) {
	t.Run("removal does not check game existence", func(t *testing.T) {
		removeCalled := false
		mockRepo := &mockPlayerRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Player, error) {
				return existingPlayer(), nil
			},
			RemoveFavoriteFunc: func(ctx context.Context, playerID, gameID uint) error {
				removeCalled = true
				return nil
			},
		}
		mockGames := &mockGameFinder{
			FindByIDFunc: func(ctx context.Context, id uint) (*gamesentity.Game, error) {
				t.Error("game lookup should not happen on removal")
				return nil, nil
			},
		}

		uc := NewPlayerUsecase(mockRepo, mockGames)
		_, err := uc.RemoveFavorite(context.Background(), 1, 999)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !removeCalled {
			t.Error("RemoveFavorite was not called")
		}
	})
}

func TestPlayerUsecase_DeletePlayerByEmail(t *testing.T) {
	t.Run("delegates to repository", func(t *testing.T) {
		var gotEmail string
		mockRepo := &mockPlayerRepository{
			DeleteByEmailFunc: func(ctx context.Context, email string) error {
				gotEmail = email
				return nil
			},
		}

		uc := NewPlayerUsecase(mockRepo, &mockGameFinder{})
		err := uc.DeletePlayerByEmail(context.Background(), " alice@example.com ")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotEmail != "alice@example.com" {
			t.Errorf("expected trimmed email, got: '%s'", gotEmail)
		}
	})

	t.Run("empty email is rejected", func(t *testing.T) {
		uc := NewPlayerUsecase(&mockPlayerRepository{}, &mockGameFinder{})

		err := uc.DeletePlayerByEmail(context.Background(), "  ")

		if !errors.Is(err, ErrInvalidPlayer) {
			t.Errorf("expected ErrInvalidPlayer, got: %v", err)
		}
	})
}

func TestPlayerUsecase_ListFavorites(t *testing.T) {
	t.Run("returns the player's favorites", func(t *testing.T) {
		mockRepo := &mockPlayerRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Player, error) {
				return existingPlayer(), nil
			},
			ListFavoritesFunc: func(ctx context.Context, playerID uint) ([]gamesentity.Game, error) {
				return []gamesentity.Game{{ID: 5, Title: "Celeste"}}, nil
			},
		}

		uc := NewPlayerUsecase(mockRepo, &mockGameFinder{})
		games, err := uc.ListFavorites(context.Background(), 1)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(games) != 1 {
			t.Errorf("expected 1 game, got: %d", len(games))
		}
	})

	t.Run("missing player is rejected", func(t *testing.T) {
		uc := NewPlayerUsecase(&mockPlayerRepository{}, &mockGameFinder{})

		_, err := uc.ListFavorites(context.Background(), 999)

		if !errors.Is(err, ErrPlayerNotFound) {
			t.Errorf("expected ErrPlayerNotFound, got: %v", err)
		}
	})
}
