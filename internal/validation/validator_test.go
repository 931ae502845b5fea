package validation

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct_DiaryEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   *models.DiaryEntry
		wantErr []string
	}{
		{
			name:  "valid",
			entry: models.NewDiaryEntry("", "dear diary", 1, models.MoodHappy),
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: []string{"value is required"},
		},
		{
			name:    "blank content",
			entry:   models.NewDiaryEntry("t", "  \n\t", 1, models.MoodHappy),
			wantErr: []string{"content must not be blank"},
		},
		{
			name:    "missing user",
			entry:   models.NewDiaryEntry("t", "c", 0, models.MoodHappy),
			wantErr: []string{"userID is required"},
		},
		{
			name:    "missing mood",
			entry:   models.NewDiaryEntry("t", "c", 1, ""),
			wantErr: []string{"mood is required"},
		},
		{
			name:    "unknown mood",
			entry:   models.NewDiaryEntry("t", "c", 1, "GRUMPY"),
			wantErr: []string{"mood must be one of HAPPY"},
		},
		{
			name:    "title too long",
			entry:   models.NewDiaryEntry(strings.Repeat("t", 256), "c", 1, models.MoodHappy),
			wantErr: []string{"title must be at most 255 characters"},
		},
		{
			name:    "several at once",
			entry:   models.NewDiaryEntry("t", "", 0, ""),
			wantErr: []string{"content must not be blank", "mood is required", "userID is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.entry)
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, common.ErrorValidation)
			for _, s := range tt.wantErr {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestStruct_RegisterInput(t *testing.T) {
	require.NoError(t, Struct(RegisterInput{Username: "alice", Password: "pw", Email: "alice@example.com"}))

	err := Struct(RegisterInput{Username: " ", Password: "", Email: "not-an-email"})
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, err.Error(), "username must not be blank")
	assert.Contains(t, err.Error(), "password must not be blank")
	assert.Contains(t, err.Error(), "email must be a valid email")

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	err = Struct(RegisterInput{Username: string(long), Password: "pw", Email: "a@example.com"})
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, err.Error(), "username must be at most 255 characters")
}

func TestStruct_RegisterInputPasswordBytes(t *testing.T) {
	// 36 two-byte runes fit bcrypt's 72 bytes, 37 do not.
	require.NoError(t, Struct(RegisterInput{Username: "a", Password: strings.Repeat("é", 36), Email: "a@example.com"}))

	err := Struct(RegisterInput{Username: "a", Password: strings.Repeat("é", 37), Email: "a@example.com"})
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, err.Error(), "password must be at most 72 bytes")

	err = Struct(RegisterInput{Username: "a", Password: strings.Repeat("x", 73), Email: "a@example.com"})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestRoleTag(t *testing.T) {
	type roleChange struct {
		Role models.Role `validate:"role"`
	}
	require.NoError(t, Struct(roleChange{Role: models.RoleAdmin}))
	err := Struct(roleChange{Role: "ROOT"})
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, err.Error(), "role must be USER or ADMIN")
}

func TestToDetails_NonValidatorError(t *testing.T) {
	assert.Nil(t, ToDetails(common.ErrorStorage))
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "userID", lowerFirst("UserID"))
	assert.Equal(t, "", lowerFirst(""))
}
