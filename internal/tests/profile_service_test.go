package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bravonest/internal/domain"
	"bravonest/internal/mocks"
	"bravonest/internal/service"
)

func TestProfileService_RequiresAuth(t *testing.T) {
	mockRepo := new(mocks.ProfileRepository)
	svc := service.NewProfileService(mockRepo, &mocks.Identity{})
	ctx := context.Background()

	_, err := svc.GetProfile(ctx)
	assert.True(t, domain.IsKind(err, domain.KindUnauthenticated))

	_, err = svc.UpsertProfile(ctx, domain.UserProfile{Name: "Sam"})
	assert.True(t, domain.IsKind(err, domain.KindUnauthenticated))

	_, err = svc.ListFavorites(ctx)
	assert.True(t, domain.IsKind(err, domain.KindUnauthenticated))

	_, err = svc.ToggleFavorite(ctx, "rest-1")
	assert.True(t, domain.IsKind(err, domain.KindUnauthenticated))

	_, err = svc.ListAddresses(ctx)
	assert.True(t, domain.IsKind(err, domain.KindUnauthenticated))

	_, err = svc.CreateAddress(ctx, domain.AddressInput{})
	assert.True(t, domain.IsKind(err, domain.KindUnauthenticated))

	mockRepo.AssertExpectations(t)
}

func TestProfileService_GetProfileMissingIsNotError(t *testing.T) {
	mockRepo := new(mocks.ProfileRepository)
	svc := service.NewProfileService(mockRepo, &mocks.Identity{UserID: "user-1"})

	mockRepo.On("GetProfile", mock.Anything, "user-1").Return(nil, nil).Once()

	profile, err := svc.GetProfile(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, profile)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_UpsertStampsIdentityAndTime(t *testing.T) {
	mockRepo := new(mocks.ProfileRepository)
	svc := service.NewProfileService(mockRepo, &mocks.Identity{UserID: "user-1"})

	stamped := mock.MatchedBy(func(p domain.UserProfile) bool {
		if p.ID != "user-1" || p.Name != "Sam" {
			return false
		}
		ts, err := time.Parse(time.RFC3339, p.UpdatedAt)
		return err == nil && time.Since(ts) < time.Minute
	})
	mockRepo.On("UpsertProfile", mock.Anything, stamped).
		Return(&domain.UserProfile{ID: "user-1", Name: "Sam"}, nil).Once()

	profile, err := svc.UpsertProfile(context.Background(), domain.UserProfile{Name: "Sam"})

	assert.NoError(t, err)
	assert.Equal(t, "user-1", profile.ID)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_ToggleFavorite(t *testing.T) {
	tests := []struct {
		name     string
		existing *domain.Favorite
		want     bool
	}{
		{
			name:     "not favorited yet inserts",
			existing: nil,
			want:     true,
		},
		{
			name:     "already favorited deletes",
			existing: &domain.Favorite{ID: "fav-1", UserID: "user-1", RestaurantID: "rest-1"},
			want:     false,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.ProfileRepository)
			svc := service.NewProfileService(mockRepo, &mocks.Identity{UserID: "user-1"})

			mockRepo.On("GetFavorite", mock.Anything, "user-1", "rest-1").Return(testCase.existing, nil).Once()
			if testCase.existing != nil {
				mockRepo.On("DeleteFavorite", mock.Anything, "fav-1").Return(nil).Once()
			} else {
				mockRepo.On("InsertFavorite", mock.Anything, "user-1", "rest-1").Return(nil).Once()
			}

			favorited, err := svc.ToggleFavorite(context.Background(), "rest-1")

			assert.NoError(t, err)
			assert.Equal(t, testCase.want, favorited)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProfileService_ToggleFavoriteRoundTrip(t *testing.T) {
	mockRepo := new(mocks.ProfileRepository)
	svc := service.NewProfileService(mockRepo, &mocks.Identity{UserID: "user-1"})

	fav := &domain.Favorite{ID: "fav-1", UserID: "user-1", RestaurantID: "rest-1"}
	mockRepo.On("GetFavorite", mock.Anything, "user-1", "rest-1").Return(nil, nil).Once()
	mockRepo.On("InsertFavorite", mock.Anything, "user-1", "rest-1").Return(nil).Once()
	mockRepo.On("GetFavorite", mock.Anything, "user-1", "rest-1").Return(fav, nil).Once()
	mockRepo.On("DeleteFavorite", mock.Anything, "fav-1").Return(nil).Once()

	on, err := svc.ToggleFavorite(context.Background(), "rest-1")
	assert.NoError(t, err)
	assert.True(t, on)

	off, err := svc.ToggleFavorite(context.Background(), "rest-1")
	assert.NoError(t, err)
	assert.False(t, off)

	mockRepo.AssertExpectations(t)
}

func TestProfileService_ToggleFavoriteRequiresRestaurant(t *testing.T) {
	mockRepo := new(mocks.ProfileRepository)
	svc := service.NewProfileService(mockRepo, &mocks.Identity{UserID: "user-1"})

	_, err := svc.ToggleFavorite(context.Background(), "")

	assert.True(t, domain.IsKind(err, domain.KindValidation))
	mockRepo.AssertExpectations(t)
}

func validAddressInput() domain.AddressInput {
	return domain.AddressInput{
		Label:        "Home",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62704",
	}
}

func TestProfileService_CreateAddress(t *testing.T) {
	tests := []struct {
		name      string
		input     domain.AddressInput
		isDefault bool
		wantErr   bool
	}{
		{name: "plain address", input: validAddressInput()},
		{name: "default clears others first", input: validAddressInput(), isDefault: true},
		{name: "missing city", input: domain.AddressInput{Label: "Home", AddressLine1: "1 Main St", State: "IL", ZipCode: "62704"}, wantErr: true},
		{name: "missing label", input: domain.AddressInput{AddressLine1: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62704"}, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.ProfileRepository)
			svc := service.NewProfileService(mockRepo, &mocks.Identity{UserID: "user-1"})

			input := testCase.input
			input.IsDefault = testCase.isDefault

			if !testCase.wantErr {
				if testCase.isDefault {
					mockRepo.On("ClearDefaultAddresses", mock.Anything, "user-1").Return(nil).Once()
				}
				created := &domain.DeliveryAddress{ID: "addr-1", UserID: "user-1", Label: input.Label, IsDefault: input.IsDefault}
				mockRepo.On("InsertAddress", mock.Anything, "user-1", input).Return(created, nil).Once()
			}

			address, err := svc.CreateAddress(context.Background(), input)

			if testCase.wantErr {
				assert.True(t, domain.IsKind(err, domain.KindValidation))
				assert.Nil(t, address)
				mockRepo.AssertNotCalled(t, "InsertAddress", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "addr-1", address.ID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProfileService_CreateAddressAbortsWhenClearFails(t *testing.T) {
	mockRepo := new(mocks.ProfileRepository)
	svc := service.NewProfileService(mockRepo, &mocks.Identity{UserID: "user-1"})

	input := validAddressInput()
	input.IsDefault = true
	mockRepo.On("ClearDefaultAddresses", mock.Anything, "user-1").Return(assert.AnError).Once()

	address, err := svc.CreateAddress(context.Background(), input)

	assert.Nil(t, address)
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "InsertAddress", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}
