package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "обычный пароль",
			password: "matrimony2025",
		},
		{
			name:     "пароль со спецсимволами",
			password: "k@lyanam!#2025$",
		},
		{
			name:     "длинный пароль",
			password: "a-very-long-passphrase-chosen-during-profile-registration",
		},
		{
			name:     "короткий пароль",
			password: "short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := GetHash(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			// Хэш не хранит пароль открытым текстом.
			assert.NotEqual(t, tt.password, hash)
			assert.NoError(t, CompareHash(hash, tt.password))
		})
	}
}

func TestCompareHash(t *testing.T) {
	correctHash, err := GetHash("correct_password")
	require.NoError(t, err)

	anotherHash, err := GetHash("another_password")
	require.NoError(t, err)

	tests := []struct {
		name        string
		hash        string
		password    string
		shouldMatch bool
	}{
		{
			name:        "пароль совпадает",
			hash:        correctHash,
			password:    "correct_password",
			shouldMatch: true,
		},
		{
			name:        "неверный пароль",
			hash:        correctHash,
			password:    "wrong_password",
			shouldMatch: false,
		},
		{
			name:        "чужой хэш",
			hash:        anotherHash,
			password:    "correct_password",
			shouldMatch: false,
		},
		{
			name:        "пустой пароль",
			hash:        correctHash,
			password:    "",
			shouldMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CompareHash(tt.hash, tt.password)
			if tt.shouldMatch {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGetHash_SamePasswordProducesDifferentHashes(t *testing.T) {
	hash1, err := GetHash("matrimony2025")
	require.NoError(t, err)

	hash2, err := GetHash("matrimony2025")
	require.NoError(t, err)

	// bcrypt солит каждый хэш отдельно.
	assert.NotEqual(t, hash1, hash2)
}
