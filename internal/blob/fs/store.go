// Package fs implements a blob Store on the local filesystem. Keys map to
// relative paths under the root, so an image stored as "F0001/P00001.jpg"
// lands exactly there and the tree can be browsed without the tool.
package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	iofs "io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentstation/fiwdb/internal/blob/core"
	"github.com/agentstation/fiwdb/pkg/constants"
	"github.com/agentstation/fiwdb/pkg/errors"
)

// Store implements core.Store using plain files.
type Store struct {
	root string
}

// New returns a filesystem store rooted at root, creating it if needed.
func New(root string) (*Store, error) {
	if root == "" {
		root = constants.DefaultImageDir
	}
	if err := os.MkdirAll(root, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("mkdir", root, err)
	}
	return &Store{root: root}, nil
}

// Driver returns core.DriverFilesystem.
func (s *Store) Driver() core.Driver { return core.DriverFilesystem }

// Root returns the store's directory.
func (s *Store) Root() string { return s.root }

func (s *Store) pathFor(key string) (string, string, error) {
	k, err := core.CleanKey(key)
	if err != nil {
		return "", "", err
	}
	return k, filepath.Join(s.root, filepath.FromSlash(k)), nil
}

// Put streams r into a temp file next to the target and renames it into
// place, so a partially written blob is never visible under its key.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, opts core.PutOptions) (core.Info, error) {
	k, dataPath, err := s.pathFor(key)
	if err != nil {
		return core.Info{}, err
	}
	if _, err := os.Stat(dataPath); err == nil {
		return core.Info{}, core.ExistsError(k)
	}
	if err := os.MkdirAll(filepath.Dir(dataPath), constants.DirPermissions); err != nil {
		return core.Info{}, errors.WrapIO("mkdir", filepath.Dir(dataPath), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dataPath), ".tmp-*")
	if err != nil {
		return core.Info{}, errors.WrapIO("create", dataPath, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, h), r); err != nil {
		_ = tmp.Close()
		return core.Info{}, errors.WrapIO("write", dataPath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return core.Info{}, errors.WrapIO("sync", dataPath, err)
	}
	if err := tmp.Close(); err != nil {
		return core.Info{}, errors.WrapIO("close", dataPath, err)
	}
	if err := os.Chmod(tmp.Name(), constants.FilePermissions); err != nil {
		return core.Info{}, errors.WrapIO("chmod", dataPath, err)
	}
	if err := os.Rename(tmp.Name(), dataPath); err != nil {
		return core.Info{}, errors.WrapIO("rename", dataPath, err)
	}

	info, err := s.stat(k, dataPath)
	if err != nil {
		return core.Info{}, err
	}
	info.ETag = hex.EncodeToString(h.Sum(nil))
	if opts.ContentType != "" {
		info.ContentType = opts.ContentType
	}
	info.Metadata = core.CloneMetadata(opts.Metadata)
	return info, nil
}

// Get opens the blob for reading.
func (s *Store) Get(_ context.Context, key string) (core.Info, io.ReadCloser, error) {
	k, dataPath, err := s.pathFor(key)
	if err != nil {
		return core.Info{}, nil, err
	}
	info, err := s.stat(k, dataPath)
	if err != nil {
		return core.Info{}, nil, err
	}
	f, err := os.Open(dataPath)
	if err != nil {
		return core.Info{}, nil, errors.WrapIO("open", dataPath, err)
	}
	return info, f, nil
}

// Head stats the blob without reading it.
func (s *Store) Head(_ context.Context, key string) (core.Info, error) {
	k, dataPath, err := s.pathFor(key)
	if err != nil {
		return core.Info{}, err
	}
	return s.stat(k, dataPath)
}

// Delete removes the blob and reports whether it existed.
func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	_, dataPath, err := s.pathFor(key)
	if err != nil {
		return false, err
	}
	if err := os.Remove(dataPath); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, errors.WrapIO("remove", dataPath, err)
	}
	return true, nil
}

// List walks the root and returns every blob whose key starts with prefix,
// ordered by key. In-flight temp files are skipped.
func (s *Store) List(_ context.Context, prefix string) ([]core.Info, error) {
	var infos []core.Info
	err := filepath.WalkDir(s.root, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := s.stat(key, p)
		if err != nil {
			return err
		}
		infos = append(infos, info)
		return nil
	})
	if err != nil {
		return nil, errors.WrapIO("walk", s.root, err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (s *Store) stat(key, dataPath string) (core.Info, error) {
	fi, err := os.Stat(dataPath)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return core.Info{}, errors.NewNotFoundError("blob", key)
		}
		return core.Info{}, errors.WrapIO("stat", dataPath, err)
	}
	if fi.IsDir() {
		return core.Info{}, errors.NewNotFoundError("blob", key)
	}
	return core.Info{
		Key:          key,
		Size:         fi.Size(),
		ContentType:  mime.TypeByExtension(filepath.Ext(dataPath)),
		LastModified: fi.ModTime().UTC(),
	}, nil
}
