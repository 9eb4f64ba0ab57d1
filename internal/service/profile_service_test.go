package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	files := newTestStorage(t)

	users := repository.NewUserRepository(db)
	svc := NewProfileService(users, files, "default.jpg")

	user, _ := seedEmployee(t, db, "selfservice", decimal.NewFromInt(1000), model.ContractEmployment)

	firstName := "Janina"
	city := "Krakow"
	updated, err := svc.Update(ctx, user.ID.String(), UpdateProfileInput{
		FirstName: &firstName,
		City:      &city,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Janina", updated.Profile.BasicInformation.FirstName)
	assert.Equal(t, "Kowalski", updated.Profile.BasicInformation.LastName)
	assert.Equal(t, "Krakow", updated.Profile.ContactInformation.City)
	assert.Empty(t, updated.PasswordHash)
}

func TestProfileImageNormalized(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	files := newTestStorage(t)

	users := repository.NewUserRepository(db)
	svc := NewProfileService(users, files, "default.jpg")

	user, _ := seedEmployee(t, db, "portrait", decimal.NewFromInt(1000), model.ContractEmployment)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 800, 800))))

	updated, err := svc.Update(ctx, user.ID.String(), UpdateProfileInput{}, &ImageFile{
		Reader:   &buf,
		FileName: "portrait.png",
	})
	require.NoError(t, err)

	img := updated.Profile.Image
	require.NotNil(t, img)
	assert.True(t, strings.HasPrefix(img.FilePath, "profiles/"))
	assert.False(t, strings.HasSuffix(img.FilePath, "default.jpg"))
	assert.LessOrEqual(t, img.Width, 300)
	assert.LessOrEqual(t, img.Height, 300)
	assert.Equal(t, "png", img.Format)
	assert.Positive(t, img.Size)
}
