package voting

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	t.Run("ハッシュは元のパスワードと照合できる", func(t *testing.T) {
		t.Parallel()

		hash, err := HashPassword("pw1")
		if err != nil {
			t.Fatalf("HashPassword()でエラーが発生: %v", err)
		}
		if !isBcryptHash(hash) {
			t.Errorf("bcrypt形式ではない: %q", hash)
		}
		if !passwordMatches(hash, "pw1") {
			t.Error("正しいパスワードが一致しない")
		}
		if passwordMatches(hash, "pw2") {
			t.Error("異なるパスワードが一致した")
		}
	})

	t.Run("72バイトを超えるパスワードはエラー", func(t *testing.T) {
		t.Parallel()

		if _, err := HashPassword(strings.Repeat("a", 73)); err == nil {
			t.Error("エラーが返るべき")
		}
	})
}

func TestPasswordMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stored   string
		supplied string
		want     bool
	}{
		{name: "平文が一致", stored: "pw1", supplied: "pw1", want: true},
		{name: "平文が不一致", stored: "pw1", supplied: "pw2", want: false},
		{name: "長さ違い", stored: "pw1", supplied: "pw10", want: false},
		{name: "空文字同士", stored: "", supplied: "", want: true},
		{name: "壊れたbcryptハッシュ", stored: "$2a$10$broken", supplied: "$2a$10$broken", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := passwordMatches(tt.stored, tt.supplied); got != tt.want {
				t.Errorf("passwordMatches(%q, %q) = %v, want %v", tt.stored, tt.supplied, got, tt.want)
			}
		})
	}
}
