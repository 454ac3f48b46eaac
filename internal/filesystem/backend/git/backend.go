package git

import (
	"context"
	"log/slog"
	"os"
	"path"
	"sync"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/pkg/errors"
)

type Session struct {
	repo *git.Repository
	ref  plumbing.ReferenceName
	fs   billy.Filesystem

	mu     sync.RWMutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Stat implements filesystem.Session.
func (s *Session) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	name = path.Clean("/" + name)

	if name == "/" {
		return filesystem.DirInfo("/", time.Time{}), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	fileInfo, err := s.fs.Stat(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return fileInfo, nil
}

// Close implements filesystem.Session.
func (s *Session) Close() error {
	s.cancel()
	<-s.done
	return nil
}

func (s *Session) watch(ctx context.Context, interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			slog.DebugContext(ctx, "refreshing repository")

			if err := s.refresh(ctx); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
				slog.ErrorContext(ctx, "could not pull from remote repository", slog.Any("error", errors.WithStack(err)))
			}

		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) refresh(ctx context.Context) error {
	err := s.repo.FetchContext(ctx, &git.FetchOptions{
		Force: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	remoteRefName := plumbing.NewRemoteReferenceName("origin", s.ref.Short())
	remoteRef, err := s.repo.Reference(remoteRefName, true)
	if err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wt, err := s.repo.Worktree()
	if err != nil {
		return errors.WithStack(err)
	}

	err = wt.Reset(&git.ResetOptions{
		Mode:   git.HardReset,
		Commit: remoteRef.Hash(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

var _ filesystem.Session = &Session{}

// New returns a backend serving the worktree of the repository at repoURL.
// The repository is cloned in memory on first mount and refreshed every
// pullInterval until the last mount is released.
func New(repoURL string, branch string, pullInterval time.Duration) *filesystem.SessionBackend {
	dial := func(ctx context.Context) (filesystem.Session, error) {
		ref := plumbing.HEAD
		if branch != "" {
			ref = plumbing.NewBranchReferenceName(branch)
		}

		ctx = slogx.WithAttrs(ctx, slog.String("repository", repoURL), slog.String("ref", ref.String()))

		slog.DebugContext(ctx, "cloning repository")

		worktree := memfs.New()

		repo, err := git.CloneContext(ctx, memory.NewStorage(), worktree, &git.CloneOptions{
			URL:           repoURL,
			SingleBranch:  true,
			ReferenceName: ref,
			Depth:         1,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "could not clone repository '%s'", repoURL)
		}

		if ref == plumbing.HEAD {
			head, err := repo.Head()
			if err != nil {
				return nil, errors.WithStack(err)
			}

			ref = head.Name()
		}

		watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

		session := &Session{
			repo:   repo,
			ref:    ref,
			fs:     worktree,
			cancel: cancel,
			done:   make(chan struct{}),
		}

		go session.watch(watchCtx, pullInterval)

		return session, nil
	}

	return filesystem.NewSessionBackend(repoURL, dial)
}
