package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkup/internal/discovery"
)

func createGitRepository(testInstance *testing.T, root string, relativePath string) string {
	testInstance.Helper()
	repositoryPath := filepath.Join(root, relativePath)
	require.NoError(testInstance, os.MkdirAll(filepath.Join(repositoryPath, ".git"), 0o755))
	return repositoryPath
}

func TestDiscoverRepositories(testInstance *testing.T) {
	temporaryRoot := testInstance.TempDir()

	projectPath := createGitRepository(testInstance, temporaryRoot, "projects/alpha")
	nestedPath := createGitRepository(testInstance, temporaryRoot, "projects/alpha/vendor/beta")
	visiblePath := createGitRepository(testInstance, temporaryRoot, "venvisible/gamma")
	createGitRepository(testInstance, temporaryRoot, "venv/ignored")
	createGitRepository(testInstance, temporaryRoot, "tools/.cargo/registry/ignored")

	discoverer := discovery.NewFilesystemRepositoryDiscoverer(discovery.DefaultExcludedSegments)
	repositories, discoveryError := discoverer.DiscoverRepositories([]string{temporaryRoot})
	require.NoError(testInstance, discoveryError)

	require.ElementsMatch(testInstance, []string{projectPath, nestedPath, visiblePath}, repositories)
	require.IsIncreasing(testInstance, repositories)
}

func TestDiscoverRepositoriesDoesNotDescendIntoMetadata(testInstance *testing.T) {
	temporaryRoot := testInstance.TempDir()

	repositoryPath := createGitRepository(testInstance, temporaryRoot, "alpha")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(repositoryPath, ".git", "modules", "inner", ".git"), 0o755))

	discoverer := discovery.NewFilesystemRepositoryDiscoverer(nil)
	repositories, discoveryError := discoverer.DiscoverRepositories([]string{temporaryRoot})
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, []string{repositoryPath}, repositories)
}

func TestDiscoverRepositoriesValidatesRoots(testInstance *testing.T) {
	temporaryRoot := testInstance.TempDir()

	testCases := []struct {
		name string
		root string
	}{
		{name: "missing_root", root: filepath.Join(temporaryRoot, "absent")},
		{name: "file_root", root: func() string {
			filePath := filepath.Join(temporaryRoot, "plain.txt")
			require.NoError(testInstance, os.WriteFile(filePath, []byte("data"), 0o600))
			return filePath
		}()},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			discoverer := discovery.NewFilesystemRepositoryDiscoverer(nil)
			repositories, discoveryError := discoverer.DiscoverRepositories([]string{testCase.root})
			require.Error(testInstance, discoveryError)
			require.Nil(testInstance, repositories)
		})
	}
}
