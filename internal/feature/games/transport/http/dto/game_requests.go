// Package dto はgamesフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// AddGameReq は POST /api/games のリクエストボディを表します。
// タイトルとジャンル以外は任意項目です。レーティングの範囲チェックは
// フィールド名を含むエラーメッセージを返すため、usecase側で行います。
type AddGameReq struct {
	Title       string   `json:"title" binding:"required"`
	Genre       string   `json:"genre" binding:"required"`
	Platform    *string  `json:"platform"`
	ReleaseYear *int     `json:"releaseYear"`
	Developer   *string  `json:"developer"`
	Rating      *float64 `json:"rating"`
	Description *string  `json:"description"`
}

// UpdateGameReq は PUT /api/games/:gameId のリクエストボディを表します。
// nilのフィールドは「変更なし」を意味します。
type UpdateGameReq struct {
	Title       *string  `json:"title"`
	Genre       *string  `json:"genre"`
	Platform    *string  `json:"platform"`
	ReleaseYear *int     `json:"releaseYear"`
	Developer   *string  `json:"developer"`
	Rating      *float64 `json:"rating"`
	Description *string  `json:"description"`
}

// DeleteGameByTitleReq は DELETE /api/games のリクエストボディを表します。
type DeleteGameByTitleReq struct {
	Title string `json:"title" binding:"required"`
}
