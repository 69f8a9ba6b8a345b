// Package dto はplayersフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterReq は POST /api/users のリクエストボディを表します。
// 必須フィールドとメール形式、パスワード最低文字数のバリデーションを含みます。
type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdatePlayerReq は PUT /api/users/:userId のリクエストボディを表します。
// nilのフィールドは「変更なし」を意味します。
type UpdatePlayerReq struct {
	Username  *string `json:"username"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=6"`
	AvatarURL *string `json:"avatarUrl"`
}

// CollectionReq は PUT /api/users/:userId/collection/{add,remove} のリクエストボディを表します。
type CollectionReq struct {
	GameID uint `json:"gameId" binding:"required"`
}

// DeletePlayerByEmailReq は DELETE /api/users のリクエストボディを表します。
type DeletePlayerByEmailReq struct {
	Email string `json:"email" binding:"required,email"`
}
