package storage

import (
	"context"
	"sort"

	"github.com/tdex-network/keyvault/internal/core/domain"
	"github.com/tdex-network/keyvault/pkg/versionedstore"
)

type profileBook map[string]domain.Profile

type profileRepository struct {
	store *versionedstore.Store
}

func newProfileRepository(store *versionedstore.Store) domain.ProfileRepository {
	return &profileRepository{store}
}

func (r *profileRepository) AddProfile(
	_ context.Context, profile domain.Profile,
) error {
	book := profileBook{}
	return r.store.Update(&book, func(bool) error {
		if book == nil {
			book = profileBook{}
		}
		if _, ok := book[profile.Name]; ok {
			return domain.ErrProfileAlreadyExists
		}
		book[profile.Name] = profile
		return nil
	})
}

func (r *profileRepository) GetProfile(
	_ context.Context, name string,
) (*domain.Profile, error) {
	book, err := r.read()
	if err != nil {
		return nil, err
	}
	profile, ok := book[name]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &profile, nil
}

func (r *profileRepository) GetAllProfiles(
	_ context.Context,
) ([]domain.Profile, error) {
	book, err := r.read()
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(book))
	for _, p := range book {
		profiles = append(profiles, p)
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		if profiles[i].CreatedAt == profiles[j].CreatedAt {
			return profiles[i].Name < profiles[j].Name
		}
		return profiles[i].CreatedAt < profiles[j].CreatedAt
	})
	return profiles, nil
}

func (r *profileRepository) UpdateProfile(
	_ context.Context,
	name string,
	updateFn func(p *domain.Profile) (*domain.Profile, error),
) error {
	book := profileBook{}
	return r.store.Update(&book, func(bool) error {
		profile, ok := book[name]
		if !ok {
			return domain.ErrProfileNotFound
		}

		updated, err := updateFn(&profile)
		if err != nil {
			return err
		}
		if updated == nil {
			return ErrNullUpdateResult
		}
		// Profiles are indexed by name, which cannot change.
		updated.Name = name
		book[name] = *updated
		return nil
	})
}

func (r *profileRepository) DeleteProfile(
	_ context.Context, name string,
) error {
	book := profileBook{}
	return r.store.Update(&book, func(bool) error {
		if _, ok := book[name]; !ok {
			return domain.ErrProfileNotFound
		}
		delete(book, name)
		return nil
	})
}

func (r *profileRepository) read() (profileBook, error) {
	book := profileBook{}
	if _, err := r.store.Get(&book); err != nil {
		return nil, err
	}
	return book, nil
}
