package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"gameshelf_backend/internal/feature/games/domain/entity"
	"gameshelf_backend/internal/feature/games/usecase"
)

// mockGameUsecase はGameUsecaseインターフェースのモック実装です。
type mockGameUsecase struct {
	AddGameFunc           func(ctx context.Context, in usecase.GameInput) (*entity.Game, error)
	ListGamesFunc         func(ctx context.Context, f usecase.Filter) ([]entity.Game, error)
	GetGameFunc           func(ctx context.Context, id uint) (*entity.Game, error)
	UpdateGameFunc        func(ctx context.Context, id uint, in usecase.GameInput) (*entity.Game, error)
	DeleteGameFunc        func(ctx context.Context, id uint) error
	DeleteGameByTitleFunc func(ctx context.Context, title string) error
}

func (m *mockGameUsecase) AddGame(ctx context.Context, in usecase.GameInput) (*entity.Game, error) {
	if m.AddGameFunc != nil {
		return m.AddGameFunc(ctx, in)
	}
	return &entity.Game{ID: 1}, nil
}

func (m *mockGameUsecase) ListGames(ctx context.Context, f usecase.Filter) ([]entity.Game, error) {
	if m.ListGamesFunc != nil {
		return m.ListGamesFunc(ctx, f)
	}
	return nil, nil
}

func (m *mockGameUsecase) GetGame(ctx context.Context, id uint) (*entity.Game, error) {
	if m.GetGameFunc != nil {
		return m.GetGameFunc(ctx, id)
	}
	return nil, usecase.ErrGameNotFound
}

func (m *mockGameUsecase) UpdateGame(ctx context.Context, id uint, in usecase.GameInput) (*entity.Game, error) {
	if m.UpdateGameFunc != nil {
		return m.UpdateGameFunc(ctx, id, in)
	}
	return nil, usecase.ErrGameNotFound
}

func (m *mockGameUsecase) DeleteGame(ctx context.Context, id uint) error {
	if m.DeleteGameFunc != nil {
		return m.DeleteGameFunc(ctx, id)
	}
	return nil
}

func (m *mockGameUsecase) DeleteGameByTitle(ctx context.Context, title string) error {
	if m.DeleteGameByTitleFunc != nil {
		return m.DeleteGameByTitleFunc(ctx, title)
	}
	return nil
}

// setupRouter はテスト用のルーターとハンドラーを生成します。
func setupRouter(mockUC *mockGameUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewGameHandler(mockUC)

	r := gin.New()
	r.POST("/api/games", h.Create)
	r.GET("/api/games", h.List)
	r.GET("/api/games/:gameId", h.Read)
	r.PUT("/api/games/:gameId", h.Update)
	r.DELETE("/api/games/:gameId", h.Delete)
	r.DELETE("/api/games", h.DeleteByTitle)
	return r
}

// TestGameHandler_Create はゲーム登録エンドポイントの各種シナリオを検証します。
func TestGameHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockAddFunc    func(ctx context.Context, in usecase.GameInput) (*entity.Game, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: game is created",
			body: `{"title":"Chrono Trigger","genre":"RPG","rating":9.8}`,
			mockAddFunc: func(ctx context.Context, in usecase.GameInput) (*entity.Game, error) {
				return &entity.Game{ID: 1, Title: *in.Title, Genre: *in.Genre, Rating: *in.Rating}, nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"title":"Chrono Trigger"`,
		},
		{
			name:           "failure: missing title is rejected by binding",
			body:           `{"genre":"RPG"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error"`,
		},
		{
			name:           "failure: malformed JSON",
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error"`,
		},
		{
			name: "failure: invalid rating maps to 400",
			body: `{"title":"Bad","genre":"RPG","rating":11}`,
			mockAddFunc: func(ctx context.Context, in usecase.GameInput) (*entity.Game, error) {
				return nil, usecase.ErrInvalidGame
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error"`,
		},
		{
			name: "failure: repository error maps to 500",
			body: `{"title":"Chrono Trigger","genre":"RPG"}`,
			mockAddFunc: func(ctx context.Context, in usecase.GameInput) (*entity.Game, error) {
				return nil, errors.New("database connection failed")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"could not process game"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&mockGameUsecase{AddGameFunc: tt.mockAddFunc})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/api/games", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

// TestGameHandler_List はカタログ一覧エンドポイントのクエリパラメータ解釈を検証します。
func TestGameHandler_List(t *testing.T) {
	t.Run("query parameters are passed as filter", func(t *testing.T) {
		var gotFilter usecase.Filter
		router := setupRouter(&mockGameUsecase{
			ListGamesFunc: func(ctx context.Context, f usecase.Filter) ([]entity.Game, error) {
				gotFilter = f
				return []entity.Game{{ID: 1, Title: "Zelda", Genre: "Adventure"}}, nil
			},
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/games?genre=Adventure&platform=Switch&year=2017&search=zel", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Adventure", gotFilter.Genre)
		assert.Equal(t, "Switch", gotFilter.Platform)
		assert.Equal(t, 2017, gotFilter.ReleaseYear)
		assert.Equal(t, "zel", gotFilter.Search)
		assert.Contains(t, w.Body.String(), `"title":"Zelda"`)
	})

	t.Run("non-numeric year returns 400", func(t *testing.T) {
		router := setupRouter(&mockGameUsecase{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/games?year=notayear", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid year"}`, w.Body.String())
	})
}

// TestGameHandler_Read は単一ゲーム取得エンドポイントを検証します。
func TestGameHandler_Read(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockGetFunc    func(ctx context.Context, id uint) (*entity.Game, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: returns the game",
			path: "/api/games/7",
			mockGetFunc: func(ctx context.Context, id uint) (*entity.Game, error) {
				return &entity.Game{ID: id, Title: "Hades", Genre: "Roguelike"}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Hades"`,
		},
		{
			name:           "failure: unknown game returns 404",
			path:           "/api/games/999",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"game not found"}`,
		},
		{
			name:           "failure: non-numeric id returns 400",
			path:           "/api/games/abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid game id"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&mockGameUsecase{GetGameFunc: tt.mockGetFunc})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

// TestGameHandler_Update はゲーム更新エンドポイントを検証します。
func TestGameHandler_Update(t *testing.T) {
	t.Run("partial update passes only provided fields", func(t *testing.T) {
		var gotInput usecase.GameInput
		router := setupRouter(&mockGameUsecase{
			UpdateGameFunc: func(ctx context.Context, id uint, in usecase.GameInput) (*entity.Game, error) {
				gotInput = in
				return &entity.Game{ID: id, Title: "Hollow Knight", Genre: "Metroidvania", Rating: 9.5}, nil
			},
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/api/games/7", strings.NewReader(`{"rating":9.5}`))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, gotInput.Title, "title should not be set")
		assert.NotNil(t, gotInput.Rating, "rating should be set")
		assert.Equal(t, 9.5, *gotInput.Rating)
	})

	t.Run("unknown game returns 404", func(t *testing.T) {
		router := setupRouter(&mockGameUsecase{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/api/games/999", strings.NewReader(`{"rating":5}`))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"game not found"}`, w.Body.String())
	})
}

// TestGameHandler_Delete はゲーム削除エンドポイントを検証します。
func TestGameHandler_Delete(t *testing.T) {
	t.Run("success: game is deleted", func(t *testing.T) {
		var gotID uint
		router := setupRouter(&mockGameUsecase{
			DeleteGameFunc: func(ctx context.Context, id uint) error {
				gotID = id
				return nil
			},
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/games/7", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(7), gotID)
		assert.JSONEq(t, `{"message":"game deleted"}`, w.Body.String())
	})

	t.Run("unknown game returns 404", func(t *testing.T) {
		router := setupRouter(&mockGameUsecase{
			DeleteGameFunc: func(ctx context.Context, id uint) error {
				return usecase.ErrGameNotFound
			},
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/games/999", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// TestGameHandler_DeleteByTitle はタイトル指定削除エンドポイントを検証します。
func TestGameHandler_DeleteByTitle(t *testing.T) {
	t.Run("success: game is deleted by title", func(t *testing.T) {
		var gotTitle string
		router := setupRouter(&mockGameUsecase{
			DeleteGameByTitleFunc: func(ctx context.Context, title string) error {
				gotTitle = title
				return nil
			},
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/games", strings.NewReader(`{"title":"Celeste"}`))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Celeste", gotTitle)
		assert.JSONEq(t, `{"message":"game deleted"}`, w.Body.String())
	})

	t.Run("missing title returns 400", func(t *testing.T) {
		router := setupRouter(&mockGameUsecase{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/games", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
