package project

import (
	"crypto/sha256"

	"mmfront/internal/source"
)

// Digest is a sha256 sum, the same shape as source.File.Hash.
type Digest [32]byte

// Combine returns H(content || deps[0] || deps[1] ...); dep order matters.
func Combine(content Digest, deps ...Digest) Digest {
	buf := make([]byte, 0, len(content)*(1+len(deps)))
	buf = append(buf, content[:]...)
	for _, d := range deps {
		buf = append(buf, d[:]...)
	}
	return sha256.Sum256(buf)
}

// DatabaseDigest identifies a parsed database: the root file's hash followed
// by the hash of every other file in load order. A re-included file counts
// once per inclusion, so the digest follows the inclusion structure too.
func DatabaseDigest(fs *source.FileSet, root source.FileID) Digest {
	rootFile := fs.Get(root)
	if rootFile == nil {
		return Digest{}
	}
	deps := make([]Digest, 0, fs.Len())
	for id := source.FileID(0); fs.Get(id) != nil; id++ {
		if id != root {
			deps = append(deps, fs.Get(id).Hash)
		}
	}
	return Combine(rootFile.Hash, deps...)
}
