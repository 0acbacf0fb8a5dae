package voting

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptPrefixes はbcryptハッシュの先頭に付くバージョン識別子。
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// HashPassword はパスワードのbcryptハッシュを生成する。
// 72バイトを超えるパスワードはエラーになる。
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}
	return string(hash), nil
}

// passwordMatches は保存済みのパスワードと入力されたパスワードが一致するかを返す。
// 保存値がbcryptハッシュであればハッシュで比較し、それ以外は平文として比較する。
func passwordMatches(stored, supplied string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// isBcryptHash は値がbcryptハッシュの形式かを返す。
func isBcryptHash(s string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
