// Package auth は認証機能（パスワードハッシュとセッション）を提供します。
package auth

import "golang.org/x/crypto/bcrypt"

// Credentials はパスワードのハッシュ化と検証を提供します。
type Credentials struct {
	cost int
}

// NewCredentials は指定コストの Credentials を作成します。
// コストが範囲外の場合は bcrypt のデフォルトコストを使用します。
func NewCredentials(cost int) *Credentials {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{cost: cost}
}

// Hash は平文パスワードからソルト付きハッシュを生成します。
// ソルトは呼び出しごとにランダムなので、同じ平文でも結果は毎回異なります。
func (c *Credentials) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify は平文パスワードとハッシュを定数時間で比較します。
func (c *Credentials) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
