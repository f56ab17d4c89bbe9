package storage

import (
	"context"
	"sort"

	"github.com/tdex-network/keyvault/internal/core/domain"
	"github.com/tdex-network/keyvault/pkg/versionedstore"
)

type accountBook map[string]domain.Account

// isNameTaken returns whether another account of the profile already uses
// name.
func (b accountBook) isNameTaken(profileName, name, excludeID string) bool {
	for id, a := range b {
		if id != excludeID && a.ProfileName == profileName && a.Name == name {
			return true
		}
	}
	return false
}

type accountRepository struct {
	store *versionedstore.Store
}

func newAccountRepository(store *versionedstore.Store) domain.AccountRepository {
	return &accountRepository{store}
}

func (r *accountRepository) AddAccount(
	_ context.Context, account domain.Account,
) error {
	book := accountBook{}
	return r.store.Update(&book, func(bool) error {
		if book == nil {
			book = accountBook{}
		}
		if _, ok := book[account.ID]; ok {
			return domain.ErrAccountAlreadyExists
		}
		if book.isNameTaken(account.ProfileName, account.Name, "") {
			return domain.ErrAccountNameTaken
		}
		book[account.ID] = account
		return nil
	})
}

func (r *accountRepository) GetAccount(
	_ context.Context, id string,
) (*domain.Account, error) {
	book, err := r.read()
	if err != nil {
		return nil, err
	}
	account, ok := book[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}

func (r *accountRepository) GetAccountsByProfile(
	_ context.Context, profileName string,
) ([]domain.Account, error) {
	book, err := r.read()
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0)
	for _, a := range book {
		if a.ProfileName == profileName {
			accounts = append(accounts, a)
		}
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt == accounts[j].CreatedAt {
			return accounts[i].Name < accounts[j].Name
		}
		return accounts[i].CreatedAt < accounts[j].CreatedAt
	})
	return accounts, nil
}

func (r *accountRepository) UpdateAccount(
	_ context.Context,
	id string,
	updateFn func(a *domain.Account) (*domain.Account, error),
) error {
	book := accountBook{}
	return r.store.Update(&book, func(bool) error {
		account, ok := book[id]
		if !ok {
			return domain.ErrAccountNotFound
		}

		updated, err := updateFn(&account)
		if err != nil {
			return err
		}
		if updated == nil {
			return ErrNullUpdateResult
		}
		updated.ID = id
		updated.ProfileName = account.ProfileName
		if book.isNameTaken(updated.ProfileName, updated.Name, id) {
			return domain.ErrAccountNameTaken
		}
		book[id] = *updated
		return nil
	})
}

func (r *accountRepository) UpdateAccountsByProfile(
	_ context.Context,
	profileName string,
	updateFn func(a *domain.Account) (*domain.Account, error),
) error {
	book := accountBook{}
	return r.store.Update(&book, func(bool) error {
		for id, account := range book {
			if account.ProfileName != profileName {
				continue
			}
			account := account
			updated, err := updateFn(&account)
			if err != nil {
				return err
			}
			if updated == nil {
				return ErrNullUpdateResult
			}
			updated.ID = id
			updated.ProfileName = profileName
			book[id] = *updated
		}
		return nil
	})
}

func (r *accountRepository) DeleteAccount(_ context.Context, id string) error {
	book := accountBook{}
	return r.store.Update(&book, func(bool) error {
		if _, ok := book[id]; !ok {
			return domain.ErrAccountNotFound
		}
		delete(book, id)
		return nil
	})
}

func (r *accountRepository) DeleteAccountsByProfile(
	_ context.Context, profileName string,
) error {
	book := accountBook{}
	return r.store.Update(&book, func(bool) error {
		for id, account := range book {
			if account.ProfileName == profileName {
				delete(book, id)
			}
		}
		return nil
	})
}

func (r *accountRepository) read() (accountBook, error) {
	book := accountBook{}
	if _, err := r.store.Get(&book); err != nil {
		return nil, err
	}
	return book, nil
}
