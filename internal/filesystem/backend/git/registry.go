package git

import (
	"net/url"
	"time"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/filesystem/backend"
	"github.com/pkg/errors"
)

func init() {
	backend.RegisterBackendFactory("git", FromDSN)
}

const (
	paramGitScheme       = "gitScheme"
	paramGitBranch       = "gitBranch"
	paramGitPullInterval = "gitPullInterval"

	defaultGitScheme    = "https"
	defaultPullInterval = 30 * time.Minute
)

// FromDSN creates a backend serving the worktree of a git repository, ie:
//
//	git://github.com/owner/repo.git?gitBranch=main&gitPullInterval=10m
//
// The remaining query parameters are forwarded to the repository url.
func FromDSN(dsn *url.URL) (filesystem.Backend, error) {
	params := backend.NewParams(dsn)

	pullInterval, err := params.Duration(paramGitPullInterval, defaultPullInterval)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if pullInterval <= 0 {
		return nil, errors.Wrapf(backend.ErrInvalidParameter, "url parameter '%s' must be positive", paramGitPullInterval)
	}

	branch := params.String(paramGitBranch, "")

	repoURL := dsn.JoinPath()
	repoURL.Scheme = params.String(paramGitScheme, defaultGitScheme)
	repoURL.RawQuery = params.Remaining().Encode()

	return New(repoURL.String(), branch, pullInterval), nil
}
