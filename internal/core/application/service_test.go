package application_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/keyvault/internal/core/application"
	"github.com/tdex-network/keyvault/internal/core/domain"
	"github.com/tdex-network/keyvault/internal/core/ports"
	"github.com/tdex-network/keyvault/internal/infrastructure/storage"
	inmemorystore "github.com/tdex-network/keyvault/pkg/kvstore/inmemory"
)

const (
	password       = "password"
	generationHash = "57F7DA205008026C776CB6AED843393F04CD458E0AA2D9F1D5F31A402072B2D6"
	privateKey     = "0000000000000000000000000000000000000000000000000000000000000001"
)

var (
	ctx       = context.Background()
	startTime = time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	mnemonic  = strings.Fields(
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
	)
)

type testServices struct {
	repoManager ports.RepoManager
	clock       *clock.TestClock
	profiles    application.ProfileService
	accounts    application.AccountService
	settings    application.SettingsService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	testClock := clock.NewTestClock(startTime)
	repoManager, err := storage.NewRepoManager(inmemorystore.NewStore(), testClock)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)

	return testServices{
		repoManager: repoManager,
		clock:       testClock,
		profiles:    application.NewProfileService(repoManager, testClock),
		accounts:    application.NewAccountService(repoManager, testClock),
		settings:    application.NewSettingsService(repoManager),
	}
}

func createTestProfile(t *testing.T, svc testServices, name string) *domain.Profile {
	t.Helper()

	profile, err := svc.profiles.CreateProfile(ctx, application.CreateProfileArgs{
		Name:           name,
		NetworkType:    domain.NetworkMainnet,
		GenerationHash: generationHash,
		Mnemonic:       mnemonic,
		Password:       password,
	})
	require.NoError(t, err)
	return profile
}
